package store

import (
	"database/sql"
	"fmt"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
	"github.com/happy-code-vector/QuickNote/internal/models"
)

// ListFolders returns folders in insertion order. A non-empty profileID
// narrows the listing to that profile.
func (s *Store) ListFolders(profileID string) ([]models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders, err := loadSlice[models.Folder](s.conn, keyFolders)
	if err != nil {
		return nil, err
	}
	if profileID == "" {
		return folders, nil
	}
	var out []models.Folder
	for _, f := range folders {
		if f.ProfileID == profileID {
			out = append(out, f)
		}
	}
	return out, nil
}

// SaveFolder upserts the folder. The referenced profile must exist; saving
// an orphan fails with apperr.ErrDanglingReference before anything is written.
func (s *Store) SaveFolder(f models.Folder) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("store: save folder: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := loadSlice[models.Profile](s.conn, keyProfiles)
	if err != nil {
		return err
	}
	if !containsID(profiles, f.ProfileID, func(p models.Profile) string { return p.ID }) {
		return fmt.Errorf("store: save folder %s: profile %s: %w", f.ID, f.ProfileID, apperr.ErrDanglingReference)
	}

	folders, err := loadSlice[models.Folder](s.conn, keyFolders)
	if err != nil {
		return err
	}
	folders = upsertByID(folders, f, func(e models.Folder) string { return e.ID })

	return s.inTx(func(tx *sql.Tx) error {
		return storeSlice(tx, keyFolders, folders)
	})
}

// DeleteFolder removes the folder and every document filed under it in one
// transaction. A missing id is a no-op.
func (s *Store) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := loadSlice[models.Folder](s.conn, keyFolders)
	if err != nil {
		return err
	}
	documents, err := loadSlice[models.Document](s.conn, keyDocuments)
	if err != nil {
		return err
	}

	kept := folders[:0:0]
	for _, f := range folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}

	keptDocs := documents[:0:0]
	for _, d := range documents {
		if d.FolderID != id {
			keptDocs = append(keptDocs, d)
		}
	}

	return s.inTx(func(tx *sql.Tx) error {
		if err := storeSlice(tx, keyFolders, kept); err != nil {
			return err
		}
		return storeSlice(tx, keyDocuments, keptDocs)
	})
}

// containsID reports whether any element's id matches want.
func containsID[T any](items []T, want string, id func(T) string) bool {
	for i := range items {
		if id(items[i]) == want {
			return true
		}
	}
	return false
}
