package models

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

// Credential is a single stored credential record as persisted in the
// document store. The Secret field always holds the ciphertext envelope
// produced by the encryption codec; plaintext never appears in this type.
type Credential struct {
	// ID is the store-assigned opaque identifier. Unique and immutable
	// once created.
	ID string `json:"id"`

	// OwnerID is the UID of the identity this record belongs to. Set at
	// creation, never mutated. The store is authoritative for enforcing
	// that only the owner can read or write the record.
	OwnerID string `json:"ownerId"`

	// Website is the display label, required.
	Website string `json:"website"`

	// WebsiteURL is optional and used only for domain extraction.
	WebsiteURL string `json:"websiteUrl"`

	// Username is required.
	Username string `json:"username"`

	// Secret is the ciphertext envelope. It is stored and transmitted
	// exclusively in this form.
	Secret string `json:"secret"`

	// Notes is optional free text.
	Notes string `json:"notes"`

	// CreatedAt and UpdatedAt are server-assigned. CreatedAt is immutable,
	// UpdatedAt is refreshed on every edit. Nil when the server timestamp
	// has not yet been resolved (e.g. a pending local write).
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// CredentialFields is the writable field set accepted by the store adapter
// for Create and Update. OwnerID and timestamps are stamped by the adapter
// and are deliberately absent here.
type CredentialFields struct {
	Website    string `json:"website"`
	WebsiteURL string `json:"websiteUrl"`
	Username   string `json:"username"`
	Secret     string `json:"secret"`
	Notes      string `json:"notes"`
}

// DecryptedCredential is the view-time shape of a record: the same fields as
// Credential but with the secret reconstituted to plaintext. Values of this
// type must never be persisted or logged.
type DecryptedCredential struct {
	ID         string
	Website    string
	WebsiteURL string
	Username   string
	Secret     string
	Notes      string
}

// SortByNewest orders records descending by CreatedAt, newest first.
// Records with a missing CreatedAt sort as oldest. Sorting happens on the
// client because the backing query must not assume a composite index exists.
func SortByNewest(records []Credential) {
	sort.SliceStable(records, func(i, j int) bool {
		return createdAtOrZero(records[i]).After(createdAtOrZero(records[j]))
	})
}

func createdAtOrZero(c Credential) time.Time {
	if c.CreatedAt == nil {
		return time.Time{}
	}
	return *c.CreatedAt
}

// Domain extracts the host name from a website URL for display. A bare host
// without a scheme is accepted. If raw cannot be parsed it is returned as-is.
func Domain(raw string) string {
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Hostname()
}
