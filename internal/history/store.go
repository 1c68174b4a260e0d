// Package history records completed generations in a local SQLite
// database so the tooling can answer "what did I generate, with which
// model, and where did it go" after the fact. The pipeline queue itself is
// never persisted; only finished results land here.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the generations table.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS generations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_id TEXT NOT NULL,
    prompt TEXT NOT NULL,
    model_used TEXT NOT NULL,
    generation_seconds REAL NOT NULL,
    storage_key TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Entry is one recorded generation.
type Entry struct {
	AssetID           string
	Prompt            string
	ModelUsed         string
	GenerationSeconds float64
	StorageKey        string
	CreatedAt         time.Time
}

// Record inserts one completed generation. A zero CreatedAt is stamped
// with the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO generations (asset_id, prompt, model_used, generation_seconds, storage_key, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		e.AssetID,
		e.Prompt,
		e.ModelUsed,
		e.GenerationSeconds,
		e.StorageKey,
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: record generation: %w", err)
	}
	return nil
}

// Recent returns the newest entries first, up to limit (default 10).
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT asset_id, prompt, model_used, generation_seconds, storage_key, created_at
         FROM generations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdRaw string
		if err := rows.Scan(&e.AssetID, &e.Prompt, &e.ModelUsed, &e.GenerationSeconds, &e.StorageKey, &createdRaw); err != nil {
			return nil, fmt.Errorf("history: scan entry: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdRaw); parseErr == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate entries: %w", err)
	}
	return entries, nil
}
