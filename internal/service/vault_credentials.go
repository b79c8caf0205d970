package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/securevault/vaultcore/internal/store"
	"github.com/securevault/vaultcore/models"
)

// AddCredential implements Vault. The secret is encrypted before it leaves
// the process; the store only ever sees the envelope.
func (s *vaultService) AddCredential(ctx context.Context, fields models.CredentialFields) (string, error) {
	identity := s.provider.Identity()
	if identity == nil {
		return "", ErrNotAuthenticated
	}

	if err := s.validator.Validate(ctx, fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	envelope, err := s.codec.Encrypt(fields.Secret)
	if err != nil {
		return "", fmt.Errorf("encrypt secret: %w", err)
	}
	fields.Secret = envelope

	recordID, err := s.store.Create(ctx, identity.UID, fields)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("record_id", recordID).Msg("credential added")
	return recordID, nil
}

// EditCredential implements Vault. The write overwrites the full writable
// field set, so callers pass every field, not just the changed ones.
func (s *vaultService) EditCredential(ctx context.Context, recordID string, fields models.CredentialFields) error {
	if s.provider.Identity() == nil {
		return ErrNotAuthenticated
	}

	if err := s.validator.Validate(ctx, fields); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	envelope, err := s.codec.Encrypt(fields.Secret)
	if err != nil {
		return fmt.Errorf("encrypt secret: %w", err)
	}
	fields.Secret = envelope

	if err = s.store.Update(ctx, recordID, fields); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
		}
		return err
	}
	s.log.Info().Str("record_id", recordID).Msg("credential updated")
	return nil
}

// DeleteCredential implements Vault. Deleting an already-gone record
// succeeds, which makes retries after a lost ack safe.
func (s *vaultService) DeleteCredential(ctx context.Context, recordID string) error {
	if s.provider.Identity() == nil {
		return ErrNotAuthenticated
	}

	if err := s.store.Delete(ctx, recordID); err != nil {
		return err
	}
	s.log.Info().Str("record_id", recordID).Msg("credential deleted")
	return nil
}

// ViewCredential implements Vault. Lookup goes against the in-memory
// snapshot, so a record is viewable as soon as a snapshot carrying it has
// been delivered.
func (s *vaultService) ViewCredential(recordID string) (models.DecryptedCredential, error) {
	if s.provider.Identity() == nil {
		return models.DecryptedCredential{}, ErrNotAuthenticated
	}

	record, ok := s.findRecord(recordID)
	if !ok {
		return models.DecryptedCredential{}, fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
	}

	secret, err := s.codec.Decrypt(record.Secret)
	if err != nil {
		return models.DecryptedCredential{}, fmt.Errorf("decrypt secret of %s: %w", recordID, err)
	}

	return models.DecryptedCredential{
		ID:         record.ID,
		Website:    record.Website,
		WebsiteURL: record.WebsiteURL,
		Username:   record.Username,
		Secret:     secret,
		Notes:      record.Notes,
	}, nil
}

// CopySecret implements Vault. The SignedIn check lives in ViewCredential,
// which this delegates to.
func (s *vaultService) CopySecret(recordID string) (string, error) {
	view, err := s.ViewCredential(recordID)
	if err != nil {
		return "", err
	}
	return view.Secret, nil
}

func (s *vaultService) findRecord(recordID string) (models.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.ID == recordID {
			return record, true
		}
	}
	return models.Credential{}, false
}
