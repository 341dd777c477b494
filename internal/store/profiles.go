package store

import (
	"database/sql"
	"fmt"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
	"github.com/happy-code-vector/QuickNote/internal/models"
)

// ListProfiles returns every profile in insertion order.
func (s *Store) ListProfiles() ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadSlice[models.Profile](s.conn, keyProfiles)
}

// GetProfile returns the profile with the given id, or apperr.ErrNotFound.
func (s *Store) GetProfile(id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles, err := loadSlice[models.Profile](s.conn, keyProfiles)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			p := profiles[i]
			return &p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// SaveProfile inserts the profile, or fully replaces the stored record when
// the id is already present. There is no field-level merge.
func (s *Store) SaveProfile(p models.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("store: save profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := loadSlice[models.Profile](s.conn, keyProfiles)
	if err != nil {
		return err
	}
	profiles = upsertByID(profiles, p, func(e models.Profile) string { return e.ID })

	return s.inTx(func(tx *sql.Tx) error {
		return storeSlice(tx, keyProfiles, profiles)
	})
}

// DeleteProfile removes the profile and cascades to every folder it owns and
// every document under those folders. The whole subtree disappears in one
// transaction; a missing id is a no-op.
func (s *Store) DeleteProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := loadSlice[models.Profile](s.conn, keyProfiles)
	if err != nil {
		return err
	}
	folders, err := loadSlice[models.Folder](s.conn, keyFolders)
	if err != nil {
		return err
	}
	documents, err := loadSlice[models.Document](s.conn, keyDocuments)
	if err != nil {
		return err
	}

	kept := profiles[:0:0]
	for _, p := range profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	doomed := make(map[string]struct{})
	keptFolders := folders[:0:0]
	for _, f := range folders {
		if f.ProfileID == id {
			doomed[f.ID] = struct{}{}
			continue
		}
		keptFolders = append(keptFolders, f)
	}

	keptDocs := documents[:0:0]
	for _, d := range documents {
		if _, gone := doomed[d.FolderID]; !gone {
			keptDocs = append(keptDocs, d)
		}
	}

	return s.inTx(func(tx *sql.Tx) error {
		if err := storeSlice(tx, keyProfiles, kept); err != nil {
			return err
		}
		if err := storeSlice(tx, keyFolders, keptFolders); err != nil {
			return err
		}
		return storeSlice(tx, keyDocuments, keptDocs)
	})
}

// upsertByID replaces the element with a matching id, or appends.
func upsertByID[T any](items []T, item T, id func(T) string) []T {
	want := id(item)
	for i := range items {
		if id(items[i]) == want {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}
