package config

import (
	"flag"
	"time"
)

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-api-key Firebase web API key
//	-project-id Firebase project ID
//	-collection document collection name
//	-encryption-key encryption passphrase
//	-cache-path offline cache SQLite file path
//	-log-path log file path
//	-request-timeout request timeout (e.g., "15s", "1m")
//	-poll-interval subscription poll interval (e.g., "3s")
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vaultcore", flag.ContinueOnError)

	var apiKey string
	var projectID string
	var collection string
	var encryptionKey string
	var cachePath string
	var logPath string
	var requestTimeout time.Duration
	var pollInterval time.Duration
	var jsonConfigPath string

	fs.StringVar(&apiKey, "api-key", "", "Firebase web API key")
	fs.StringVar(&projectID, "project-id", "", "Firebase project ID")
	fs.StringVar(&collection, "collection", "", "Document collection name")
	fs.StringVar(&encryptionKey, "encryption-key", "", "Encryption passphrase")
	fs.StringVar(&cachePath, "cache-path", "", "Offline cache SQLite file path")
	fs.StringVar(&logPath, "log-path", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Subscription poll interval (e.g., 3s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			EncryptionKey: encryptionKey,
			LogPath:       logPath,
		},
		Firebase: Firebase{
			APIKey:         apiKey,
			ProjectID:      projectID,
			Collection:     collection,
			RequestTimeout: requestTimeout,
			PollInterval:   pollInterval,
		},
		Cache: Cache{
			Path: cachePath,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
