// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

// Package client assembles the vault runtime.
//
// It wires configuration, logging, the cipher, the identity provider, the
// document store and the offline cache into a single [App] whose Vault the
// embedding UI drives.
package client
