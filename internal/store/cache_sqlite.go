package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/securevault/vaultcore/models"
)

const createCacheTable = `
	CREATE TABLE IF NOT EXISTS credentials (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		website     TEXT NOT NULL,
		website_url TEXT NOT NULL DEFAULT '',
		username    TEXT NOT NULL,
		secret      TEXT NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT,
		updated_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_credentials_owner ON credentials(owner_id);`

// SnapshotCache persists the last delivered snapshot per owner in a local
// SQLite database. It is the store's built-in offline caching: a read-only
// fallback replayed on subscribe, never merged back into the remote store.
// Secrets are cached in envelope form only.
type SnapshotCache struct {
	db *sql.DB
	qb sq.StatementBuilderType
}

// NewSnapshotCache opens (or creates) the cache database at path. Pass
// ":memory:" for an ephemeral cache.
func NewSnapshotCache(path string) (*SnapshotCache, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	if _, err = db.Exec(createCacheTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init snapshot cache schema: %w", err)
	}

	return &SnapshotCache{db: db, qb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}, nil
}

// Save replaces the cached snapshot for ownerID with records.
func (c *SnapshotCache) Save(ctx context.Context, ownerID string, records []models.Credential) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	delQuery, delArgs, err := c.qb.Delete("credentials").Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return fmt.Errorf("build cache delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("clear cached snapshot: %w", err)
	}

	for _, r := range records {
		insert := c.qb.Insert("credentials").
			Columns("id", "owner_id", "website", "website_url", "username", "secret", "notes", "created_at", "updated_at").
			Values(r.ID, r.OwnerID, r.Website, r.WebsiteURL, r.Username, r.Secret, r.Notes, formatTime(r.CreatedAt), formatTime(r.UpdatedAt))

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build cache insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("cache record %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit cache tx: %w", err)
	}
	return nil
}

// Load returns the cached snapshot for ownerID, newest first. An owner with
// no cached rows yields an empty slice.
func (c *SnapshotCache) Load(ctx context.Context, ownerID string) ([]models.Credential, error) {
	query, args, err := c.qb.
		Select("id", "owner_id", "website", "website_url", "username", "secret", "notes", "created_at", "updated_at").
		From("credentials").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cache select: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load cached snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.Credential
	for rows.Next() {
		var r models.Credential
		var createdAt, updatedAt sql.NullString
		if err = rows.Scan(&r.ID, &r.OwnerID, &r.Website, &r.WebsiteURL, &r.Username, &r.Secret, &r.Notes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan cached record: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached records: %w", err)
	}

	models.SortByNewest(records)
	return records, nil
}

// Close releases the underlying database handle.
func (c *SnapshotCache) Close() error {
	return c.db.Close()
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
