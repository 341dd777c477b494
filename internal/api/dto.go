package api

import (
	"github.com/happy-code-vector/QuickNote/internal/models"
)

// GenerateDocumentRequest is the request body for producing a new document
// from raw study content.
type GenerateDocumentRequest struct {
	FolderID   string            `json:"folderId" example:"f1" validate:"required"`
	Title      string            `json:"title" example:"Mitosis Basics" validate:"required"`
	SourceKind models.SourceKind `json:"contentType" example:"text" validate:"required"`
	SourcePath string            `json:"contentPath" example:"pasted text"`
	Content    string            `json:"content" example:"Mitosis is..." validate:"required"`
}

// ProfileListResponse wraps profile listings.
type ProfileListResponse struct {
	Profiles []models.Profile `json:"profiles" validate:"required"`
}

// FolderListResponse wraps folder listings.
type FolderListResponse struct {
	Folders []models.Folder `json:"folders" validate:"required"`
}

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []models.Document `json:"documents" validate:"required"`
}

// SearchResponse wraps ranked search results.
type SearchResponse struct {
	Results []models.SearchResult `json:"results" validate:"required"`
}
