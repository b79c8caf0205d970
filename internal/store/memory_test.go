package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securevault/vaultcore/models"
)

func collectSnapshots(t *testing.T) (SnapshotFunc, chan []models.Credential) {
	t.Helper()
	ch := make(chan []models.Credential, 16)
	return func(records []models.Credential) { ch <- records }, ch
}

func waitSnapshot(t *testing.T, ch chan []models.Credential) []models.Credential {
	t.Helper()
	select {
	case records := <-ch:
		return records
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func waitSnapshotWhere(t *testing.T, ch chan []models.Credential, ok func([]models.Credential) bool) []models.Credential {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case records := <-ch:
			if ok(records) {
				return records
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching snapshot")
			return nil
		}
	}
}

func TestMemoryStore_CreateEchoesSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	onSnapshot, snapshots := collectSnapshots(t)
	sub, err := m.SubscribeByOwner(ctx, "owner-a", onSnapshot, nil)
	require.NoError(t, err)
	defer sub.Stop()

	assert.Empty(t, waitSnapshot(t, snapshots))

	fields := models.CredentialFields{Website: "Example.com", Username: "alice", Secret: "envelope-1"}
	id, err := m.Create(ctx, "owner-a", fields)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got := waitSnapshotWhere(t, snapshots, func(r []models.Credential) bool { return len(r) == 1 })
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "owner-a", got[0].OwnerID)
	assert.Equal(t, "Example.com", got[0].Website)
	assert.Equal(t, "envelope-1", got[0].Secret)
	require.NotNil(t, got[0].CreatedAt)
	require.NotNil(t, got[0].UpdatedAt)
}

func TestMemoryStore_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	for _, owner := range []string{"owner-a", "owner-b", "owner-c"} {
		_, err := m.Create(ctx, owner, models.CredentialFields{Website: "site-" + owner, Username: "u", Secret: "s"})
		require.NoError(t, err)
	}
	_, err := m.Create(ctx, "owner-b", models.CredentialFields{Website: "second", Username: "u", Secret: "s"})
	require.NoError(t, err)

	onSnapshot, snapshots := collectSnapshots(t)
	sub, err := m.SubscribeByOwner(ctx, "owner-a", onSnapshot, nil)
	require.NoError(t, err)
	defer sub.Stop()

	got := waitSnapshot(t, snapshots)
	require.Len(t, got, 1)
	for _, record := range got {
		assert.Equal(t, "owner-a", record.OwnerID)
	}

	fetched, err := m.FetchByOwner(ctx, "owner-b")
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	for _, record := range fetched {
		assert.Equal(t, "owner-b", record.OwnerID)
	}
}

func TestMemoryStore_SortNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := newMemoryStore()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	current := base
	m.clock = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}

	first, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "oldest", Username: "u", Secret: "s"})
	require.NoError(t, err)
	second, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "middle", Username: "u", Secret: "s"})
	require.NoError(t, err)
	third, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "newest", Username: "u", Secret: "s"})
	require.NoError(t, err)

	got, err := m.FetchByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{third, second, first}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestMemoryStore_UpdatePreservesOwnerAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	m := newMemoryStore()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.clock = func() time.Time { return created }

	id, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "Example.com", Username: "alice", Secret: "s1"})
	require.NoError(t, err)

	m.clock = func() time.Time { return created.Add(time.Hour) }
	err = m.Update(ctx, id, models.CredentialFields{Website: "Example.org", Username: "alice2", Secret: "s2"})
	require.NoError(t, err)

	got, err := m.FetchByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "owner-a", got[0].OwnerID)
	assert.Equal(t, "Example.org", got[0].Website)
	assert.Equal(t, "s2", got[0].Secret)
	assert.Equal(t, created, *got[0].CreatedAt)
	assert.Equal(t, created.Add(time.Hour), *got[0].UpdatedAt)
}

func TestMemoryStore_UpdateMissingRecord(t *testing.T) {
	m := NewMemoryStore()

	err := m.Update(context.Background(), "no-such-id", models.CredentialFields{Website: "w", Username: "u", Secret: "s"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	id, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "w", Username: "u", Secret: "s"})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, id))
	require.NoError(t, m.Delete(ctx, id), "second delete of the same id must succeed")
	require.NoError(t, m.Delete(ctx, "never-existed"))
}

func TestMemoryStore_DeleteRemovesExactlyOneRecord(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	keep, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "keep", Username: "u", Secret: "s"})
	require.NoError(t, err)
	drop, err := m.Create(ctx, "owner-a", models.CredentialFields{Website: "drop", Username: "u", Secret: "s"})
	require.NoError(t, err)

	onSnapshot, snapshots := collectSnapshots(t)
	sub, err := m.SubscribeByOwner(ctx, "owner-a", onSnapshot, nil)
	require.NoError(t, err)
	defer sub.Stop()

	waitSnapshotWhere(t, snapshots, func(r []models.Credential) bool { return len(r) == 2 })

	require.NoError(t, m.Delete(ctx, drop))

	got := waitSnapshotWhere(t, snapshots, func(r []models.Credential) bool { return len(r) == 1 })
	assert.Equal(t, keep, got[0].ID)
}

func TestMemorySubscription_StopIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	onSnapshot, snapshots := collectSnapshots(t)
	sub, err := m.SubscribeByOwner(ctx, "owner-a", onSnapshot, nil)
	require.NoError(t, err)

	waitSnapshot(t, snapshots)

	sub.Stop()
	sub.Stop()

	// No deliveries after Stop.
	_, err = m.Create(ctx, "owner-a", models.CredentialFields{Website: "w", Username: "u", Secret: "s"})
	require.NoError(t, err)

	select {
	case records := <-snapshots:
		t.Fatalf("received snapshot after Stop: %v", records)
	case <-time.After(100 * time.Millisecond):
	}
}
