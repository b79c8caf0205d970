package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing encryption passphrase).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidFirebaseConfigs indicates invalid identity or document
	// store settings (for example, a missing API key or project ID).
	ErrInvalidFirebaseConfigs = errors.New("invalid firebase configuration")
)
