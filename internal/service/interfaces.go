// Package service wires the identity provider, document store and cipher
// into the vault controller the embedding UI talks to. The controller owns
// session state: it reacts to identity transitions, maintains exactly one
// live snapshot subscription for the signed-in owner, and fans fresh record
// sets out to registered listeners.
package service

import (
	"context"

	"github.com/securevault/vaultcore/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_mock.go -package=mock

// Vault is the single entry point for a password vault session. All methods
// are safe for concurrent use. Start must be called before listeners fire;
// credential operations additionally require a signed-in session.
type Vault interface {
	// Start launches the controller's event loop: it begins consuming
	// identity transitions and, when a session is already active,
	// subscribes to the owner's records. Any previously running loop is
	// stopped first.
	Start(ctx context.Context)

	// Stop tears down the event loop and the live subscription and blocks
	// until both have fully terminated. Safe to call when not running.
	Stop()

	// SignUp creates a new account. The session stays signed out; the
	// user signs in as a separate step.
	SignUp(ctx context.Context, email, password string) error

	// SignIn authenticates and opens a session. The record listeners then
	// receive the owner's snapshot once the subscription is live. Returns
	// ErrAlreadySignedIn when a session is active.
	SignIn(ctx context.Context, email, password string) error

	// SignOut closes the session. Listeners receive an empty record set
	// and no further snapshots until the next sign-in.
	SignOut(ctx context.Context) error

	// Identity returns the signed-in identity, or nil when signed out.
	Identity() *models.Identity

	// AddCredential validates fields, encrypts the secret and persists a
	// new record owned by the session. Returns the new record's ID.
	AddCredential(ctx context.Context, fields models.CredentialFields) (string, error)

	// EditCredential validates fields, encrypts the secret and overwrites
	// the writable field set of an existing record.
	EditCredential(ctx context.Context, recordID string, fields models.CredentialFields) error

	// DeleteCredential removes a record. Deleting an ID that is already
	// gone is a no-op success.
	DeleteCredential(ctx context.Context, recordID string) error

	// ViewCredential returns the record with its secret decrypted. The
	// result must never be persisted or logged.
	ViewCredential(recordID string) (models.DecryptedCredential, error)

	// CopySecret decrypts and returns the record's secret for a
	// copy-to-clipboard flow. The clipboard itself is a presentation
	// concern; the returned value must never be logged or persisted.
	CopySecret(recordID string) (string, error)

	// Credentials returns the current snapshot, newest first. Secrets
	// stay encrypted.
	Credentials() []models.Credential

	// Search filters the current snapshot by case-insensitive substring
	// match over website, username, website URL and notes. An empty query
	// returns everything.
	Search(query string) []models.Credential

	// Strength scores a candidate password.
	Strength(secret string) models.Strength

	// GenerateSecret produces a random 16-character password drawing from
	// all four character classes.
	GenerateSecret() (string, error)

	// OnChange registers a listener for record snapshots. Listeners run
	// on the event loop goroutine and must not block.
	OnChange(fn func(records []models.Credential))

	// OnError registers a listener for background failures (subscription
	// transport errors, resubscribe failures).
	OnError(fn func(err error))
}
