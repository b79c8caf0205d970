// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package models

// Identity is the authenticated user as reported by the identity provider.
// It is created on sign-in or registration, held for the duration of the
// session, and discarded on sign-out.
type Identity struct {
	// UID is the stable, provider-issued opaque user identifier. All
	// credential records are scoped to this value via Credential.OwnerID.
	UID string `json:"uid"`

	// Email is the address the user signed in with. Display only; it is
	// never used for record matching.
	Email string `json:"email"`
}
