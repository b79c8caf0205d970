package store

import (
	"context"

	"github.com/securevault/vaultcore/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_store_mock.go -package=mock

// SnapshotFunc receives the full, owner-filtered, client-sorted result set
// every time any client mutates the owner's records. Snapshots replace the
// previous set entirely; they are never deltas.
type SnapshotFunc func(records []models.Credential)

// ErrorFunc receives transport failures from a live subscription. The store
// surfaces the error and leaves retry policy to the caller.
type ErrorFunc func(err error)

// CredentialStore is the adapter over the external document store. It
// translates credential lifecycle operations into owner-scoped persistence
// calls and exposes a push-based snapshot stream per owner.
type CredentialStore interface {
	// Create persists a new record owned by ownerID. The store stamps
	// OwnerID and the server-assigned CreatedAt/UpdatedAt timestamps and
	// returns the new record's ID. An active subscription for the owner
	// will echo the change as a fresh snapshot. Failures wrap
	// ErrPersistence; callers must not assume the write succeeded.
	Create(ctx context.Context, ownerID string, fields models.CredentialFields) (string, error)

	// Update overwrites the writable field set of an existing record and
	// refreshes UpdatedAt. OwnerID and CreatedAt are never touched. The
	// write is a full overwrite, so an idempotent retry after a lost ack
	// is safe. Failures wrap ErrPersistence.
	Update(ctx context.Context, recordID string, fields models.CredentialFields) error

	// Delete removes the record. Deleting an ID that does not exist is a
	// no-op success. Failures wrap ErrPersistence.
	Delete(ctx context.Context, recordID string) error

	// FetchByOwner returns the current record set for ownerID, sorted
	// newest first. One-shot; no live updates.
	FetchByOwner(ctx context.Context, ownerID string) ([]models.Credential, error)

	// SubscribeByOwner establishes a live subscription filtered to
	// ownerID. onSnapshot fires with the full current result set at least
	// once after every mutation, including an initial delivery shortly
	// after subscribing. onError fires on transport failure without
	// terminating the subscription. The returned handle must be stopped
	// exactly once per sign-out or identity change; Stop is idempotent.
	SubscribeByOwner(ctx context.Context, ownerID string, onSnapshot SnapshotFunc, onError ErrorFunc) (Subscription, error)
}

// Subscription is the cancellable handle for a live snapshot stream.
type Subscription interface {
	// Stop tears the subscription down and waits for in-flight deliveries
	// to finish. Calling Stop again is a no-op.
	Stop()
}

// TokenSource supplies the bearer token the document store authenticates
// with. Implemented by the identity provider adapter.
type TokenSource interface {
	IDToken(ctx context.Context) (string, error)
}
