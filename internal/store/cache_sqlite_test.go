// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securevault/vaultcore/models"
)

func TestSnapshotCache_SaveLoadRoundTrip(t *testing.T) {
	cache, err := NewSnapshotCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	records := []models.Credential{
		{ID: "r1", OwnerID: "owner-a", Website: "old", Username: "u", Secret: "e1", CreatedAt: &t1, UpdatedAt: &t1},
		{ID: "r2", OwnerID: "owner-a", Website: "new", WebsiteURL: "https://new.example", Username: "u", Secret: "e2", Notes: "n", CreatedAt: &t2, UpdatedAt: &t2},
	}
	require.NoError(t, cache.Save(ctx, "owner-a", records))

	got, err := cache.Load(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID, "newest first")
	assert.Equal(t, "https://new.example", got[0].WebsiteURL)
	assert.Equal(t, t2, *got[0].CreatedAt)
	assert.Equal(t, "r1", got[1].ID)
}

func TestSnapshotCache_SaveReplacesPreviousSnapshot(t *testing.T) {
	cache, err := NewSnapshotCache(":memory:")
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, "owner-a", []models.Credential{
		{ID: "stale", OwnerID: "owner-a", Website: "w", Username: "u", Secret: "s"},
	}))
	require.NoError(t, cache.Save(ctx, "owner-a", []models.Credential{
		{ID: "fresh", OwnerID: "owner-a", Website: "w", Username: "u", Secret: "s"},
	}))

	got, err := cache.Load(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestSnapshotCache_OwnersAreIsolated(t *testing.T) {
	cache, err := NewSnapshotCache(":memory:")
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, "owner-a", []models.Credential{
		{ID: "a1", OwnerID: "owner-a", Website: "w", Username: "u", Secret: "s"},
	}))
	require.NoError(t, cache.Save(ctx, "owner-b", []models.Credential{
		{ID: "b1", OwnerID: "owner-b", Website: "w", Username: "u", Secret: "s"},
	}))

	gotA, err := cache.Load(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, gotA, 1)
	assert.Equal(t, "a1", gotA[0].ID)

	// Clearing one owner leaves the other untouched.
	require.NoError(t, cache.Save(ctx, "owner-a", nil))
	gotA, err = cache.Load(ctx, "owner-a")
	require.NoError(t, err)
	assert.Empty(t, gotA)

	gotB, err := cache.Load(ctx, "owner-b")
	require.NoError(t, err)
	require.Len(t, gotB, 1)
}

func TestSnapshotCache_MissingTimestampsSurviveRoundTrip(t *testing.T) {
	cache, err := NewSnapshotCache(":memory:")
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, "owner-a", []models.Credential{
		{ID: "pending", OwnerID: "owner-a", Website: "w", Username: "u", Secret: "s"},
	}))

	got, err := cache.Load(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].CreatedAt)
	assert.Nil(t, got[0].UpdatedAt)
}
