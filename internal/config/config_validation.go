// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// library's startup invariants.
//
// Returns nil if the configuration is valid, or a sentinel error naming the
// invalid group otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.EncryptionKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Firebase.APIKey == "" || cfg.Firebase.ProjectID == "" {
		return ErrInvalidFirebaseConfigs
	}

	return nil
}
