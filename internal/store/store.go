// Package store persists the review and flagged word collections in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrUnavailable marks a store that failed to open or upgrade. Callers
// degrade to an empty in-memory store instead of crashing the quiz flow.
var ErrUnavailable = errors.New("record store unavailable")

// schemaVersion is the current PRAGMA user_version. Upgrades are additive:
// each step may only create collections, never drop one.
const schemaVersion = 2

// Store holds the SQLite handle backing the record collections.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ RecordStore = (*Store)(nil)

// Open connects to the SQLite database at dsn, applies pragmas and runs
// migrations. Any failure is reported as ErrUnavailable.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrUnavailable, err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pragmas: %v", ErrUnavailable, err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrUnavailable, err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrations holds one additive step per schema version, applied in order.
// Version 1 created the review collection; version 2 added flagged.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS review (
		id TEXT PRIMARY KEY,
		front TEXT NOT NULL,
		back TEXT NOT NULL,
		added_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS flagged (
		id TEXT PRIMARY KEY,
		front TEXT NOT NULL,
		back TEXT NOT NULL,
		flagged_at INTEGER NOT NULL
	);`,
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, schemaVersion)
	}

	for v := version; v < schemaVersion; v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("migration to version %d: %w", v+1, err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	// An upgrade that leaves a collection missing is a fatal configuration
	// error, not something to paper over.
	for _, table := range []string{"review", "flagged"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			return fmt.Errorf("collection %q missing after migration: %w", table, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VOCAB_APP_DB environment variable
// 2. $XDG_DATA_HOME/vocab-app/vocab.db
// 3. ~/.local/share/vocab-app/vocab.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VOCAB_APP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "vocab-app", "vocab.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
