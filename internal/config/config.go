// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the vault
// library. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the encryption
	// passphrase and the log destination.
	App App `envPrefix:"APP_"`

	// Firebase holds the identity and document store endpoint settings.
	Firebase Firebase `envPrefix:"FIREBASE_"`

	// Cache holds the offline snapshot cache settings.
	Cache Cache `envPrefix:"CACHE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// EncryptionKey is the passphrase the record cipher key is derived
	// from. Must be kept confidential.
	// Env: APP_ENCRYPTION_KEY
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	// LogPath is an optional file path for JSON log output. When empty,
	// logs go to stdout.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Firebase holds connection settings for the identity provider and the
// document store. The URL overrides exist for tests and self-hosted
// emulators; production leaves them empty and gets the Google endpoints.
type Firebase struct {
	// APIKey is the web API key of the Firebase project.
	// Env: FIREBASE_API_KEY
	APIKey string `env:"API_KEY"`

	// ProjectID is the Firebase project identifier that scopes the
	// document database.
	// Env: FIREBASE_PROJECT_ID
	ProjectID string `env:"PROJECT_ID"`

	// Collection is the document collection credentials live in.
	// Defaults to "passwords".
	// Env: FIREBASE_COLLECTION
	Collection string `env:"COLLECTION"`

	// AuthBaseURL overrides the Identity Toolkit endpoint.
	// Env: FIREBASE_AUTH_BASE_URL
	AuthBaseURL string `env:"AUTH_BASE_URL"`

	// TokenURL overrides the secure-token refresh endpoint.
	// Env: FIREBASE_TOKEN_URL
	TokenURL string `env:"TOKEN_URL"`

	// FirestoreBaseURL overrides the Firestore REST endpoint.
	// Env: FIREBASE_FIRESTORE_BASE_URL
	FirestoreBaseURL string `env:"FIRESTORE_BASE_URL"`

	// RequestTimeout bounds individual REST calls (e.g. "15s").
	// Env: FIREBASE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PollInterval is how often live subscriptions refresh when no local
	// mutation nudges them (e.g. "3s").
	// Env: FIREBASE_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Cache holds settings for the local snapshot cache that backs offline
// reads.
type Cache struct {
	// Path is the SQLite file the last snapshot per owner is persisted
	// to. Empty selects an in-memory database, which disables persistence
	// across restarts but keeps replay within a session.
	// Env: CACHE_PATH
	Path string `env:"PATH"`

	// Disabled switches the offline cache off entirely.
	// Env: CACHE_DISABLED
	Disabled bool `env:"DISABLED"`
}

// Defaults applied by [GetConfig] when the merged sources leave a field
// empty.
const (
	DefaultCollection     = "passwords"
	DefaultRequestTimeout = 15 * time.Second
	DefaultPollInterval   = 3 * time.Second
)

// GetConfig loads, merges, and validates the library configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Firebase.Collection == "" {
		cfg.Firebase.Collection = DefaultCollection
	}
	if cfg.Firebase.RequestTimeout <= 0 {
		cfg.Firebase.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Firebase.PollInterval <= 0 {
		cfg.Firebase.PollInterval = DefaultPollInterval
	}
}
