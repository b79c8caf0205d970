package client

import (
	"context"
	"fmt"

	"github.com/securevault/vaultcore/internal/adapter"
	"github.com/securevault/vaultcore/internal/clipboard"
	"github.com/securevault/vaultcore/internal/config"
	"github.com/securevault/vaultcore/internal/crypto"
	"github.com/securevault/vaultcore/internal/logger"
	"github.com/securevault/vaultcore/internal/service"
	"github.com/securevault/vaultcore/internal/store"
)

// App owns the assembled vault session and the resources behind it.
type App struct {
	Vault service.Vault

	// Clipboard is the platform capability the presentation layer uses
	// after CopySecret returns plaintext. The vault itself never touches
	// it.
	Clipboard clipboard.Writer

	log   *logger.Logger
	cache *store.SnapshotCache
}

// NewApp loads configuration from environment variables, flags and the
// optional JSON file, then assembles the vault.
func NewApp() (*App, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig assembles the vault from an already-populated config.
func NewAppWithConfig(cfg *config.StructuredConfig) (*App, error) {
	log := newAppLogger(cfg)

	codec, err := crypto.NewAESCodec(cfg.App.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("create codec: %w", err)
	}

	provider, err := adapter.NewFirebaseIdentityProvider(adapter.FirebaseAuthConfig{
		APIKey:         cfg.Firebase.APIKey,
		BaseURL:        cfg.Firebase.AuthBaseURL,
		TokenURL:       cfg.Firebase.TokenURL,
		RequestTimeout: cfg.Firebase.RequestTimeout,
	}, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("create identity provider: %w", err)
	}

	var cache *store.SnapshotCache
	if !cfg.Cache.Disabled {
		cache, err = store.NewSnapshotCache(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot cache: %w", err)
		}
	}

	credStore, err := store.NewFirestoreStore(store.FirestoreConfig{
		ProjectID:      cfg.Firebase.ProjectID,
		Collection:     cfg.Firebase.Collection,
		BaseURL:        cfg.Firebase.FirestoreBaseURL,
		RequestTimeout: cfg.Firebase.RequestTimeout,
		PollInterval:   cfg.Firebase.PollInterval,
	}, provider, cache, log.GetChildLogger())
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, fmt.Errorf("create credential store: %w", err)
	}

	vault := service.NewVault(provider, credStore, codec, log)

	return &App{
		Vault:     vault,
		Clipboard: clipboard.NewSystemWriter(),
		log:       log,
		cache:     cache,
	}, nil
}

// Run starts the vault's event loop. It returns immediately; the loop runs
// until ctx is cancelled or Close is called.
func (a *App) Run(ctx context.Context) {
	a.Vault.Start(ctx)
	a.log.Info().Msg("vault started")
}

// Close stops the vault and releases the offline cache.
func (a *App) Close() error {
	a.Vault.Stop()
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

func newAppLogger(cfg *config.StructuredConfig) *logger.Logger {
	if cfg.App.LogPath != "" {
		return logger.NewFileLogger("client", cfg.App.LogPath)
	}
	return logger.NewLogger("client")
}
