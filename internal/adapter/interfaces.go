// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package adapter

import (
	"context"

	"github.com/securevault/vaultcore/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_provider_mock.go -package=mock

// IdentityProvider is the contract over the external identity service. It
// supplies sign-up/sign-in/sign-out, the current identity, a change stream,
// and the bearer token the document store authenticates with.
//
// The change stream replaces callback registration: consumers receive the
// new identity on sign-in and nil on sign-out, in order, on a single
// channel.
type IdentityProvider interface {
	// SignUp creates a new account. The session stays signed out; the user
	// signs in as a separate step. Failures are *AuthError values carrying
	// the provider code.
	SignUp(ctx context.Context, email, password string) (models.Identity, error)

	// SignIn authenticates and makes the identity current. On success the
	// change stream emits the identity. Failures are *AuthError values.
	SignIn(ctx context.Context, email, password string) (models.Identity, error)

	// SignOut discards the session. The change stream emits nil. Signing
	// out while signed out is a no-op.
	SignOut(ctx context.Context) error

	// Identity returns the current identity, or nil when signed out.
	Identity() *models.Identity

	// Changes yields identity transitions: a non-nil identity after
	// sign-in, nil after sign-out.
	Changes() <-chan *models.Identity

	// IDToken returns a currently valid bearer token for the signed-in
	// identity, refreshing it if it is about to expire. Returns an error
	// when signed out.
	IDToken(ctx context.Context) (string, error)
}
