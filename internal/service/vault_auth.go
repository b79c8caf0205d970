package service

import (
	"context"

	"github.com/securevault/vaultcore/models"
)

// SignUp implements Vault. Account creation deliberately does not open a
// session; the user confirms their password by signing in afterwards.
func (s *vaultService) SignUp(ctx context.Context, email, password string) error {
	if _, err := s.provider.SignUp(ctx, email, password); err != nil {
		s.log.Warn().Err(err).Msg("sign-up rejected")
		return err
	}
	s.log.Info().Str("email", email).Msg("account created")
	return nil
}

// SignIn implements Vault. The subscription is established asynchronously
// by the event loop once the provider emits the identity transition.
func (s *vaultService) SignIn(ctx context.Context, email, password string) error {
	if s.provider.Identity() != nil {
		return ErrAlreadySignedIn
	}

	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.log.Warn().Err(err).Msg("sign-in rejected")
		return err
	}
	s.log.Info().Str("uid", identity.UID).Msg("session opened")
	return nil
}

// SignOut implements Vault. Signing out while signed out is a no-op.
func (s *vaultService) SignOut(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

// Identity implements Vault.
func (s *vaultService) Identity() *models.Identity {
	return s.provider.Identity()
}
