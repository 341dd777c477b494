// Package docservice coordinates the storage engine, the search engine, and
// the content producer behind one application-facing service.
package docservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/happy-code-vector/QuickNote/internal/models"
	"github.com/happy-code-vector/QuickNote/internal/producer"
	"github.com/happy-code-vector/QuickNote/internal/search"
	"github.com/happy-code-vector/QuickNote/internal/store"
)

// Generator is the producer boundary the service depends on.
type Generator interface {
	Generate(ctx context.Context, content string) (*producer.Result, error)
}

// Events receives entity change notifications. May be nil.
type Events interface {
	PublishChange(entity, kind, id string)
}

// Service is the application service over the QuickNote core.
type Service struct {
	store     *store.Store
	engine    *search.Engine
	generator Generator
	events    Events
}

// NewService creates a Service. generator and events may be nil; document
// generation is then unavailable and changes are not broadcast.
func NewService(st *store.Store, engine *search.Engine, generator Generator, events Events) *Service {
	return &Service{store: st, engine: engine, generator: generator, events: events}
}

func (s *Service) notify(entity, kind, id string) {
	if s.events != nil {
		s.events.PublishChange(entity, kind, id)
	}
}

// ListProfiles returns all profiles.
func (s *Service) ListProfiles(_ context.Context) ([]models.Profile, error) {
	return s.store.ListProfiles()
}

// GetProfile returns one profile by id.
func (s *Service) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	return s.store.GetProfile(id)
}

// SaveProfile upserts a profile. A missing id is filled in.
func (s *Service) SaveProfile(_ context.Context, p models.Profile) (*models.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.store.SaveProfile(p); err != nil {
		return nil, err
	}
	s.notify("profile", "saved", p.ID)
	return &p, nil
}

// DeleteProfile removes a profile and its whole folder/document subtree.
func (s *Service) DeleteProfile(_ context.Context, id string) error {
	if err := s.store.DeleteProfile(id); err != nil {
		return err
	}
	s.notify("profile", "deleted", id)
	return nil
}

// CurrentProfile returns the selected profile, or nil when none is selected.
func (s *Service) CurrentProfile(_ context.Context) (*models.Profile, error) {
	return s.store.CurrentProfile()
}

// SetCurrentProfile selects p as the session profile; nil clears it.
func (s *Service) SetCurrentProfile(_ context.Context, p *models.Profile) error {
	return s.store.SetCurrentProfile(p)
}

// ListFolders returns folders, optionally narrowed to one profile.
func (s *Service) ListFolders(_ context.Context, profileID string) ([]models.Folder, error) {
	return s.store.ListFolders(profileID)
}

// SaveFolder upserts a folder, filling in id and creation time when absent.
func (s *Service) SaveFolder(_ context.Context, f models.Folder) (*models.Folder, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if err := s.store.SaveFolder(f); err != nil {
		return nil, err
	}
	s.notify("folder", "saved", f.ID)
	return &f, nil
}

// DeleteFolder removes a folder and every document under it.
func (s *Service) DeleteFolder(_ context.Context, id string) error {
	if err := s.store.DeleteFolder(id); err != nil {
		return err
	}
	s.notify("folder", "deleted", id)
	return nil
}

// ListDocuments returns documents, optionally narrowed to one folder.
func (s *Service) ListDocuments(_ context.Context, folderID string) ([]models.Document, error) {
	return s.store.ListDocuments(folderID)
}

// GetDocument returns one document by id.
func (s *Service) GetDocument(_ context.Context, id string) (*models.Document, error) {
	return s.store.GetDocument(id)
}

// SaveDocument upserts a fully-formed document.
func (s *Service) SaveDocument(_ context.Context, d models.Document) (*models.Document, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if err := s.store.SaveDocument(d); err != nil {
		return nil, err
	}
	s.notify("document", "saved", d.ID)
	return &d, nil
}

// DeleteDocument removes a document.
func (s *Service) DeleteDocument(_ context.Context, id string) error {
	if err := s.store.DeleteDocument(id); err != nil {
		return err
	}
	s.notify("document", "deleted", id)
	return nil
}

// CreateDocumentInput is the raw material for a generated document.
type CreateDocumentInput struct {
	FolderID   string
	Title      string
	SourceKind models.SourceKind
	SourcePath string
	Content    string
}

// CreateDocument runs the producer over the raw content and persists the
// assembled document. Producer failures surface before anything is written,
// so no partially-built document ever reaches the store.
func (s *Service) CreateDocument(ctx context.Context, in CreateDocumentInput) (*models.Document, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("docservice: no content producer configured")
	}

	res, err := s.generator.Generate(ctx, in.Content)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:         uuid.NewString(),
		FolderID:   in.FolderID,
		Title:      in.Title,
		SourceKind: in.SourceKind,
		SourcePath: in.SourcePath,
		NoteBody:   res.Note.Body(),
		Flashcards: res.Flashcards,
		QuizItems:  res.QuizItems,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}
	s.notify("document", "saved", doc.ID)
	return &doc, nil
}

// Search delegates to the search engine.
func (s *Service) Search(_ context.Context, query string) ([]models.SearchResult, error) {
	return s.engine.Search(query)
}
