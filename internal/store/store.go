// Package store implements the QuickNote storage engine: a SQLite-backed
// document store holding the Profile → Folder → Document entity graph.
//
// Each entity collection is persisted as one JSON snapshot under a stable
// key, mirroring the layout the rest of the application expects. Every write
// is a read-modify-write of the affected collections inside a single SQL
// transaction, and a store-wide mutex serializes writers so cascading
// deletes are never observed half-done.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Collection keys. The names match the original browser-storage layout so
// exported data round-trips.
const (
	keyProfiles       = "quicknote_profiles"
	keyFolders        = "quicknote_folders"
	keyDocuments      = "quicknote_documents"
	keyCurrentProfile = "quicknote_current_profile"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store wraps a sql.DB with collection-level operations.
type Store struct {
	mu   sync.RWMutex
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// loadSlice reads and decodes the collection stored under key.
// A missing row decodes as an empty collection.
func loadSlice[T any](conn *sql.DB, key string) ([]T, error) {
	var raw string
	err := conn.QueryRow(`SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return items, nil
}

// storeSlice encodes items and upserts the snapshot under key within tx.
func storeSlice[T any](tx *sql.Tx, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	_, err = tx.Exec(`
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// inTx runs fn inside a transaction, committing on success.
func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
