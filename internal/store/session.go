package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/happy-code-vector/QuickNote/internal/models"
)

// CurrentProfile returns the profile marked as current, or nil when no
// profile is selected. The pointer is a convenience cursor for callers; it
// plays no part in the store's integrity rules.
func (s *Store) CurrentProfile() (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.conn.QueryRow(`SELECT value FROM collections WHERE key = ?`, keyCurrentProfile).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", keyCurrentProfile, err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", keyCurrentProfile, err)
	}
	return &p, nil
}

// SetCurrentProfile records p as the current profile. Passing nil clears the
// selection (logout / profile switch).
func (s *Store) SetCurrentProfile(p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(func(tx *sql.Tx) error {
		if p == nil {
			if _, err := tx.Exec(`DELETE FROM collections WHERE key = ?`, keyCurrentProfile); err != nil {
				return fmt.Errorf("store: clear %s: %w", keyCurrentProfile, err)
			}
			return nil
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", keyCurrentProfile, err)
		}
		_, err = tx.Exec(`
			INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, keyCurrentProfile, string(raw))
		if err != nil {
			return fmt.Errorf("store: write %s: %w", keyCurrentProfile, err)
		}
		return nil
	})
}
