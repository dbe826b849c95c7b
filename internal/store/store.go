// Package store provides the SQLite-backed key-value record store for
// PocketScore. Each top-level record (active game, history, roster, settings)
// is a single keyed row written back whole; writes to a key are serialized by
// the database, so last-write-wins per key.
package store

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// TimeFormat is the fixed-width RFC3339 format used for timestamps.
// Using fixed width ensures lexicographic ordering matches chronological ordering.
const TimeFormat = "2006-01-02T15:04:05.000000000Z"

// Well-known record keys. Concurrent writers to different keys never
// conflict; read-modify-write sequences across keys are the caller's problem.
const (
	KeyActiveGame       = "active_game"
	KeyHistory          = "game_history"
	KeyRoster           = "roster"
	KeySettings         = "settings"
	KeyLastAutoSnapshot = "last_auto_snapshot"
)

// Store wraps a SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the records database at path and applies the
// schema. WAL lets record reads proceed while a merge or archive is writing;
// busy_timeout covers the brief overlap when two writes land together.
func Open(path string) (*Store, error) {
	// The path rides inside a file: URI, so ?, # and spaces must be escaped.
	escapedPath := url.PathEscape(path)

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", escapedPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// A few readers alongside the single writer is all the record store needs.
	db.SetMaxOpenConns(4)

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// journalMode reports the active journal mode so tests can pin WAL.
func (s *Store) journalMode() (string, error) {
	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return "", err
	}
	return mode, nil
}
