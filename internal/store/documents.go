package store

import (
	"database/sql"
	"fmt"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
	"github.com/happy-code-vector/QuickNote/internal/models"
)

// ListDocuments returns documents in insertion order. A non-empty folderID
// narrows the listing to that folder.
func (s *Store) ListDocuments(folderID string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	documents, err := loadSlice[models.Document](s.conn, keyDocuments)
	if err != nil {
		return nil, err
	}
	if folderID == "" {
		return documents, nil
	}
	var out []models.Document
	for _, d := range documents {
		if d.FolderID == folderID {
			out = append(out, d)
		}
	}
	return out, nil
}

// GetDocument returns the document with the given id, or apperr.ErrNotFound.
func (s *Store) GetDocument(id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	documents, err := loadSlice[models.Document](s.conn, keyDocuments)
	if err != nil {
		return nil, err
	}
	for i := range documents {
		if documents[i].ID == id {
			d := documents[i]
			return &d, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// SaveDocument upserts the document. The referenced folder must exist;
// saving an orphan fails with apperr.ErrDanglingReference.
func (s *Store) SaveDocument(d models.Document) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("store: save document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := loadSlice[models.Folder](s.conn, keyFolders)
	if err != nil {
		return err
	}
	if !containsID(folders, d.FolderID, func(f models.Folder) string { return f.ID }) {
		return fmt.Errorf("store: save document %s: folder %s: %w", d.ID, d.FolderID, apperr.ErrDanglingReference)
	}

	documents, err := loadSlice[models.Document](s.conn, keyDocuments)
	if err != nil {
		return err
	}
	documents = upsertByID(documents, d, func(e models.Document) string { return e.ID })

	return s.inTx(func(tx *sql.Tx) error {
		return storeSlice(tx, keyDocuments, documents)
	})
}

// DeleteDocument removes the document. Documents are leaves, so there is
// nothing to cascade; a missing id is a no-op.
func (s *Store) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	documents, err := loadSlice[models.Document](s.conn, keyDocuments)
	if err != nil {
		return err
	}

	kept := documents[:0:0]
	for _, d := range documents {
		if d.ID != id {
			kept = append(kept, d)
		}
	}

	return s.inTx(func(tx *sql.Tx) error {
		return storeSlice(tx, keyDocuments, kept)
	})
}
