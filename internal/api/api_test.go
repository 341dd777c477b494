package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/happy-code-vector/QuickNote/internal/apperr"
	"github.com/happy-code-vector/QuickNote/internal/docservice"
	"github.com/happy-code-vector/QuickNote/internal/models"
	"github.com/happy-code-vector/QuickNote/internal/producer"
	"github.com/happy-code-vector/QuickNote/internal/search"
	"github.com/happy-code-vector/QuickNote/internal/store"
	"github.com/happy-code-vector/QuickNote/internal/testutil"
)

// stubGenerator stands in for the content producer.
type stubGenerator struct {
	result *producer.Result
	err    error
}

func (g *stubGenerator) Generate(context.Context, string) (*producer.Result, error) {
	return g.result, g.err
}

// testEnv builds a store-backed service and router. An empty authToken means
// disabled auth mode.
func testEnv(t *testing.T, authToken string, gen docservice.Generator) http.Handler {
	t.Helper()
	router, _ := testEnvWithStore(t, authToken, gen)
	return router
}

func testEnvWithStore(t *testing.T, authToken string, gen docservice.Generator) (http.Handler, *store.Store) {
	t.Helper()
	st := testutil.TestStore(t)
	svc := docservice.NewService(st, search.New(st), gen, nil)
	return NewRouter(svc, authToken != "", authToken, nil), st
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %s: %v", w.Body.String(), err)
	}
	return v
}

func TestDocumentLifecycle(t *testing.T) {
	gen := &stubGenerator{result: &producer.Result{
		Note: producer.NotePayload{Summary: "Mitosis is how cells divide."},
		Flashcards: []models.Flashcard{
			{Question: "What is cell division called?", Answer: "Nuclear division"},
		},
	}}
	router := testEnv(t, "", gen)

	// Profile, then a folder under it.
	w := doJSON(t, router, http.MethodPost, "/profiles", models.Profile{Name: "Ada", Age: 34, ProfileType: models.ProfileAdult})
	if w.Code != http.StatusOK {
		t.Fatalf("save profile = %d, body = %s", w.Code, w.Body.String())
	}
	profile := decode[models.Profile](t, w)

	w = doJSON(t, router, http.MethodPost, "/folders", models.Folder{ProfileID: profile.ID, Name: "Biology"})
	if w.Code != http.StatusOK {
		t.Fatalf("save folder = %d, body = %s", w.Code, w.Body.String())
	}
	folder := decode[models.Folder](t, w)

	// Generate a document from raw content.
	w = doJSON(t, router, http.MethodPost, "/documents/generate", GenerateDocumentRequest{
		FolderID:   folder.ID,
		Title:      "Mitosis Basics",
		SourceKind: models.SourceText,
		Content:    "pasted study text",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("generate = %d, body = %s", w.Code, w.Body.String())
	}
	doc := decode[models.Document](t, w)
	if doc.NoteBody == "" {
		t.Error("expected generated note body")
	}

	// Search finds it. Title substring (+50) plus one note occurrence (+5).
	w = doJSON(t, router, http.MethodGet, "/search?q=mitosis", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search = %d", w.Code)
	}
	sr := decode[SearchResponse](t, w)
	if len(sr.Results) != 1 {
		t.Fatalf("results = %+v", sr.Results)
	}
	if sr.Results[0].DocumentID != doc.ID {
		t.Errorf("result id = %q, want %q", sr.Results[0].DocumentID, doc.ID)
	}
	if sr.Results[0].RelevanceScore != 55 {
		t.Errorf("score = %d, want 55", sr.Results[0].RelevanceScore)
	}

	// Deleting the folder cascades to the document.
	w = doJSON(t, router, http.MethodDelete, "/folders/"+folder.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete folder = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/documents/"+doc.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted document = %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/search?q=mitosis", nil)
	sr = decode[SearchResponse](t, w)
	if len(sr.Results) != 0 {
		t.Errorf("search after cascade = %+v", sr.Results)
	}
}

func TestSaveFolder_MissingProfile(t *testing.T) {
	router := testEnv(t, "", nil)

	w := doJSON(t, router, http.MethodPost, "/folders", models.Folder{ProfileID: "ghost", Name: "Biology"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body = %s", w.Code, w.Body.String())
	}
}

func TestSaveDocument_MissingFolder(t *testing.T) {
	router := testEnv(t, "", nil)

	w := doJSON(t, router, http.MethodPost, "/documents", models.Document{
		FolderID:   "ghost",
		Title:      "Orphan",
		SourceKind: models.SourceText,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body = %s", w.Code, w.Body.String())
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	router := testEnv(t, "", nil)

	w := doJSON(t, router, http.MethodGet, "/profiles/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSaveProfile_Invalid(t *testing.T) {
	router := testEnv(t, "", nil)

	// Missing name and profile type.
	w := doJSON(t, router, http.MethodPost, "/profiles", models.Profile{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	router := testEnv(t, "", nil)

	w := doJSON(t, router, http.MethodGet, "/search?q=", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	sr := decode[SearchResponse](t, w)
	if len(sr.Results) != 0 {
		t.Errorf("results = %+v", sr.Results)
	}
}

func TestSearch_StoreFailure(t *testing.T) {
	router, st := testEnvWithStore(t, "", nil)
	st.Close()

	w := doJSON(t, router, http.MethodGet, "/search?q=mitosis", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decode[errResponse](t, w)
	if body.Error != "internal error" {
		t.Errorf("error body = %q", body.Error)
	}
}

func TestCurrentProfile(t *testing.T) {
	router := testEnv(t, "", nil)

	w := doJSON(t, router, http.MethodGet, "/profiles/current", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("initial current = %d, want 404", w.Code)
	}

	p := models.Profile{ID: "p1", Name: "Ada", Age: 34, ProfileType: models.ProfileAdult}
	if w = doJSON(t, router, http.MethodPost, "/profiles", p); w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	if w = doJSON(t, router, http.MethodPut, "/profiles/current", p); w.Code != http.StatusNoContent {
		t.Fatalf("select = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/profiles/current", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("current = %d", w.Code)
	}
	if got := decode[models.Profile](t, w); got.ID != "p1" {
		t.Errorf("current id = %q", got.ID)
	}

	if w = doJSON(t, router, http.MethodDelete, "/profiles/current", nil); w.Code != http.StatusNoContent {
		t.Fatalf("clear = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/profiles/current", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cleared current = %d, want 404", w.Code)
	}
}

func TestGenerateDocument_ProducerFailure(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("producer: decode note: %w", apperr.ErrMalformedProducerOutput)}
	router := testEnv(t, "", gen)

	w := doJSON(t, router, http.MethodPost, "/profiles", models.Profile{ID: "p1", Name: "Ada", Age: 34, ProfileType: models.ProfileAdult})
	if w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	w = doJSON(t, router, http.MethodPost, "/folders", models.Folder{ID: "f1", ProfileID: "p1", Name: "Biology"})
	if w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/documents/generate", GenerateDocumentRequest{
		FolderID: "f1", Title: "T", SourceKind: models.SourceText, Content: "c",
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body = %s", w.Code, w.Body.String())
	}

	// Nothing was persisted.
	w = doJSON(t, router, http.MethodGet, "/documents?folderId=f1", nil)
	dl := decode[DocumentListResponse](t, w)
	if len(dl.Documents) != 0 {
		t.Errorf("documents = %+v", dl.Documents)
	}
}

func TestGenerateDocument_MissingFields(t *testing.T) {
	router := testEnv(t, "", &stubGenerator{result: &producer.Result{}})

	w := doJSON(t, router, http.MethodPost, "/documents/generate", GenerateDocumentRequest{Title: "T"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := testEnv(t, "secret", nil)

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/profiles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}

	// Wrong token.
	req = httptest.NewRequest(http.MethodGet, "/profiles", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}

	// Correct token.
	req = httptest.NewRequest(http.MethodGet, "/profiles", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", w.Code)
	}
}
