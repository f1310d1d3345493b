// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only SQLite log of applied renames so an
// operator can see what a run changed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

const (
	dbFile = "history.db"

	defaultListLimit = 50
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates dir/history.db and its schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS renames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dir TEXT NOT NULL,
			old_name TEXT NOT NULL,
			new_name TEXT NOT NULL,
			model TEXT,
			renamed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_renames_renamed_at ON renames(renamed_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e and returns its ID. A zero RenamedAt is set to now.
func (s *Store) Record(ctx context.Context, e types.HistoryEntry) (int64, error) {
	if e.RenamedAt.IsZero() {
		e.RenamedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO renames (dir, old_name, new_name, model, renamed_at) VALUES (?, ?, ?, ?, ?)`,
		e.Dir, e.OldName, e.NewName, e.Model, e.RenamedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording rename of %s: %w", e.OldName, err)
	}
	return res.LastInsertId()
}

// List returns up to limit entries, newest first. A limit of zero or less
// uses the default of 50.
func (s *Store) List(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dir, old_name, new_name, COALESCE(model, ''), renamed_at
		FROM renames ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.Dir, &e.OldName, &e.NewName, &e.Model, &ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.RenamedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
