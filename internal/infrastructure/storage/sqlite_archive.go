package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"BulletinScanner/internal/domain"
	"BulletinScanner/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS bulletins (
    id           TEXT NOT NULL,
    html_url     TEXT NOT NULL,
    html_sha256  TEXT NOT NULL,
    extracted_at TEXT NOT NULL,
    payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bulletins_id ON bulletins (id, extracted_at);
`

// SQLiteArchive records every extraction run. The table is append-only:
// reprocessing a page inserts a fresh row, prior rows are never touched.
type SQLiteArchive struct {
	db *sql.DB
}

var _ ports.BulletinArchive = (*SQLiteArchive)(nil)

// Open creates or opens the archive database at path and ensures the schema.
func Open(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &SQLiteArchive{db: db}, nil
}

// Close releases the underlying database handle.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// SaveBulletin appends one extracted bulletin, stored whole as JSON next to
// the columns used for lookups.
func (a *SQLiteArchive) SaveBulletin(ctx context.Context, bulletin domain.Bulletin) error {
	payload, err := json.Marshal(bulletin)
	if err != nil {
		return fmt.Errorf("encode bulletin %s: %w", bulletin.ID, err)
	}

	query, args, err := sq.Insert("bulletins").
		Columns("id", "html_url", "html_sha256", "extracted_at", "payload").
		Values(bulletin.ID, bulletin.Sources.HTMLURL, bulletin.Raw.HTMLSHA256, bulletin.Raw.ExtractedAt, string(payload)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert bulletin %s: %w", bulletin.ID, err)
	}
	return nil
}

// LatestDigest returns the content hash of the most recent archived
// extraction for id, or "" when the id has never been archived.
func (a *SQLiteArchive) LatestDigest(ctx context.Context, id string) (string, error) {
	query, args, err := sq.Select("html_sha256").
		From("bulletins").
		Where(sq.Eq{"id": id}).
		OrderBy("extracted_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var digest string
	if err := a.db.QueryRowContext(ctx, query, args...).Scan(&digest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("query digest for %s: %w", id, err)
	}
	return digest, nil
}
