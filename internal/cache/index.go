package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// indexFileName is the SQLite index inside the cache directory. The index
// and its WAL sidecars are never treated as cache entries.
const indexFileName = "index.db"

const indexSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
    cache_key  TEXT PRIMARY KEY,
    filename   TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);`

// index persists the key-to-filename association for the cache directory.
type index struct {
	db *sql.DB
}

func openIndex(dir string) (*index, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(indexSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache index schema: %w", err)
	}

	return &index{db: db}, nil
}

func (ix *index) Close() error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

// Lookup returns the filename recorded for key, if any.
func (ix *index) Lookup(ctx context.Context, key string) (string, bool, error) {
	var filename string
	err := ix.db.QueryRowContext(ctx,
		`SELECT filename FROM cache_entries WHERE cache_key = ?`, key,
	).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup cache index: %w", err)
	}
	return filename, true, nil
}

// Put records or replaces the filename association for key.
func (ix *index) Put(ctx context.Context, key, filename string) error {
	_, err := ix.db.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_key, filename, fetched_at)
         VALUES (?, ?, ?)
         ON CONFLICT(cache_key) DO UPDATE SET filename = excluded.filename, fetched_at = excluded.fetched_at`,
		key, filename, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record cache index entry: %w", err)
	}
	return nil
}

// Remove drops the association for key.
func (ix *index) Remove(ctx context.Context, key string) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("remove cache index entry: %w", err)
	}
	return nil
}

// RemoveFilename drops any association pointing at filename.
func (ix *index) RemoveFilename(ctx context.Context, filename string) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE filename = ?`, filename); err != nil {
		return fmt.Errorf("remove cache index entry: %w", err)
	}
	return nil
}

// Clear drops every association.
func (ix *index) Clear(ctx context.Context) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("clear cache index: %w", err)
	}
	return nil
}
