package service

import (
	"strings"

	"github.com/securevault/vaultcore/internal/crypto"
	"github.com/securevault/vaultcore/models"
)

// Credentials implements Vault. Signed out, the listing is empty even if
// the event loop has not yet cleared the previous session's snapshot.
func (s *vaultService) Credentials() []models.Credential {
	if s.provider.Identity() == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.records)
}

// Search implements Vault. Matching is a case-insensitive substring scan
// over the plaintext display fields; the encrypted secret is never
// searched.
func (s *vaultService) Search(query string) []models.Credential {
	if s.provider.Identity() == nil {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if needle == "" {
		return copyRecords(s.records)
	}

	var matches []models.Credential
	for _, record := range s.records {
		if matchesQuery(record, needle) {
			matches = append(matches, record)
		}
	}
	return matches
}

func matchesQuery(record models.Credential, needle string) bool {
	for _, haystack := range []string{record.Website, record.Username, record.WebsiteURL, record.Notes} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// Strength implements Vault.
func (s *vaultService) Strength(secret string) models.Strength {
	return crypto.Strength(secret)
}

// GenerateSecret implements Vault.
func (s *vaultService) GenerateSecret() (string, error) {
	return crypto.GenerateSecret()
}
