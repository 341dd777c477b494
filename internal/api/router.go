package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/happy-code-vector/QuickNote/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Profiles.
	r.Get("/profiles", h.ListProfiles)
	r.Post("/profiles", h.SaveProfile)
	r.Get("/profiles/current", h.CurrentProfile)
	r.Put("/profiles/current", h.SetCurrentProfile)
	r.Delete("/profiles/current", h.ClearCurrentProfile)
	r.Get("/profiles/{id}", h.GetProfile)
	r.Delete("/profiles/{id}", h.DeleteProfile)

	// Folders.
	r.Get("/folders", h.ListFolders)
	r.Post("/folders", h.SaveFolder)
	r.Delete("/folders/{id}", h.DeleteFolder)

	// Documents.
	r.Get("/documents", h.ListDocuments)
	r.Post("/documents", h.SaveDocument)
	r.Post("/documents/generate", h.GenerateDocument)
	r.Get("/documents/{id}", h.GetDocument)
	r.Delete("/documents/{id}", h.DeleteDocument)

	// Search.
	r.Get("/search", h.Search)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
