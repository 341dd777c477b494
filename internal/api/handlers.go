package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
	"github.com/happy-code-vector/QuickNote/internal/docservice"
	"github.com/happy-code-vector/QuickNote/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *docservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service) *Handler {
	return &Handler{svc: svc}
}

// respondError maps core errors onto HTTP statuses.
func respondError(w http.ResponseWriter, op string, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrDanglingReference):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("referenced parent does not exist"))
	case errors.Is(err, apperr.ErrMalformedProducerOutput):
		writeJSON(w, http.StatusBadGateway, errorBody("content producer returned malformed output"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListProfiles handles GET /api/profiles.
//
//	@Summary		List all learner profiles
//	@Tags			profiles
//	@Produce		json
//	@Success		200	{object}	ProfileListResponse
//	@Security		BearerAuth
//	@Router			/profiles [get]
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.ListProfiles(r.Context())
	if err != nil {
		respondError(w, "list profiles", err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	writeJSON(w, http.StatusOK, ProfileListResponse{Profiles: profiles})
}

// GetProfile handles GET /api/profiles/{id}.
//
//	@Summary		Get a single profile by id
//	@Tags			profiles
//	@Produce		json
//	@Param			id	path		string	true	"Profile id"
//	@Success		200	{object}	models.Profile
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profiles/{id} [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveProfile handles POST /api/profiles.
//
//	@Summary		Create or fully replace a profile
//	@Tags			profiles
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Profile	true	"Profile to save"
//	@Success		200		{object}	models.Profile
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profiles [post]
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	saved, err := h.svc.SaveProfile(r.Context(), p)
	if err != nil {
		respondError(w, "save profile", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteProfile handles DELETE /api/profiles/{id}. Deletion cascades to the
// profile's folders and their documents; absent ids are a successful no-op.
//
//	@Summary		Delete a profile and its folders and documents
//	@Tags			profiles
//	@Param			id	path	string	true	"Profile id"
//	@Success		204	"Profile deleted"
//	@Security		BearerAuth
//	@Router			/profiles/{id} [delete]
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, "delete profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentProfile handles GET /api/profiles/current.
//
//	@Summary		Get the currently selected profile
//	@Tags			profiles
//	@Produce		json
//	@Success		200	{object}	models.Profile
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profiles/current [get]
func (h *Handler) CurrentProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.CurrentProfile(r.Context())
	if err != nil {
		respondError(w, "current profile", err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, errorBody("no profile selected"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SetCurrentProfile handles PUT /api/profiles/current.
//
//	@Summary		Select the session profile
//	@Tags			profiles
//	@Accept			json
//	@Param			body	body	models.Profile	true	"Profile to select"
//	@Success		204		"Profile selected"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profiles/current [put]
func (h *Handler) SetCurrentProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.SetCurrentProfile(r.Context(), &p); err != nil {
		respondError(w, "set current profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCurrentProfile handles DELETE /api/profiles/current.
//
//	@Summary		Clear the session profile (logout)
//	@Tags			profiles
//	@Success		204	"Selection cleared"
//	@Security		BearerAuth
//	@Router			/profiles/current [delete]
func (h *Handler) ClearCurrentProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SetCurrentProfile(r.Context(), nil); err != nil {
		respondError(w, "clear current profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFolders handles GET /api/folders.
//
//	@Summary		List folders, optionally filtered by profile
//	@Tags			folders
//	@Produce		json
//	@Param			profileId	query		string	false	"Filter by owning profile"
//	@Success		200			{object}	FolderListResponse
//	@Security		BearerAuth
//	@Router			/folders [get]
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.svc.ListFolders(r.Context(), r.URL.Query().Get("profileId"))
	if err != nil {
		respondError(w, "list folders", err)
		return
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	writeJSON(w, http.StatusOK, FolderListResponse{Folders: folders})
}

// SaveFolder handles POST /api/folders.
//
//	@Summary		Create or fully replace a folder
//	@Tags			folders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Folder	true	"Folder to save"
//	@Success		200		{object}	models.Folder
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/folders [post]
func (h *Handler) SaveFolder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var f models.Folder
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	saved, err := h.svc.SaveFolder(r.Context(), f)
	if err != nil {
		respondError(w, "save folder", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteFolder handles DELETE /api/folders/{id}. Deletion cascades to the
// folder's documents; absent ids are a successful no-op.
//
//	@Summary		Delete a folder and its documents
//	@Tags			folders
//	@Param			id	path	string	true	"Folder id"
//	@Success		204	"Folder deleted"
//	@Security		BearerAuth
//	@Router			/folders/{id} [delete]
func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, "delete folder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List documents, optionally filtered by folder
//	@Tags			documents
//	@Produce		json
//	@Param			folderId	query		string	false	"Filter by owning folder"
//	@Success		200			{object}	DocumentListResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.svc.ListDocuments(r.Context(), r.URL.Query().Get("folderId"))
	if err != nil {
		respondError(w, "list documents", err)
		return
	}
	if documents == nil {
		documents = []models.Document{}
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: documents})
}

// GetDocument handles GET /api/documents/{id}.
//
//	@Summary		Get a single document by id
//	@Tags			documents
//	@Produce		json
//	@Param			id	path		string	true	"Document id"
//	@Success		200	{object}	models.Document
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{id} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "get document", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// SaveDocument handles POST /api/documents. The body must be a fully-formed
// document; the store replaces any record with the same id wholesale.
//
//	@Summary		Create or fully replace a document
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Document	true	"Document to save"
//	@Success		200		{object}	models.Document
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents [post]
func (h *Handler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var d models.Document
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	saved, err := h.svc.SaveDocument(r.Context(), d)
	if err != nil {
		respondError(w, "save document", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// GenerateDocument handles POST /api/documents/generate: runs the content
// producer over raw input and persists the assembled document.
//
//	@Summary		Generate and save a document from raw content
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		GenerateDocumentRequest	true	"Raw study content"
//	@Success		201		{object}	models.Document
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/generate [post]
func (h *Handler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req GenerateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.FolderID == "" || req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("folderId, title and content are required"))
		return
	}

	doc, err := h.svc.CreateDocument(r.Context(), docservice.CreateDocumentInput{
		FolderID:   req.FolderID,
		Title:      req.Title,
		SourceKind: req.SourceKind,
		SourcePath: req.SourcePath,
		Content:    req.Content,
	})
	if err != nil {
		respondError(w, "generate document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// DeleteDocument handles DELETE /api/documents/{id}. Documents are leaves;
// absent ids are a successful no-op.
//
//	@Summary		Delete a document
//	@Tags			documents
//	@Param			id	path	string	true	"Document id"
//	@Success		204	"Document deleted"
//	@Security		BearerAuth
//	@Router			/documents/{id} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, "delete document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/search.
//
//	@Summary		Relevance search across stored documents
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	true	"Search query"
//	@Success		200	{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := h.svc.Search(r.Context(), q)
	if err != nil {
		respondError(w, "search", err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
