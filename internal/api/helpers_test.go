package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/api/middleware"
	"github.com/phrazzld/scry-study/internal/catalog"
	"github.com/phrazzld/scry-study/internal/loader"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/session"
)

const threeCardDocument = `{
  "flashcards": [
    {"question": "Q1", "answer": "A", "question_number": 1, "format": "multiple_choice", "all_options": {"A": "yes", "B": "no"}},
    {"question": "Q2", "answer": "True", "question_number": 2, "format": "true_false"},
    {"question": "Q3", "answer": "False", "question_number": 3, "format": "true_false"}
  ],
  "metadata": {"source_pdf": "exam.pdf", "valid_flashcards": 3}
}`

const testCatalog = `{
  "flashcard_sets": [
    {"id": "exam", "filename": "exam.json", "title": "Exam", "description": "Three cards",
     "category": "Science", "difficulty": "Beginner", "card_count": 3, "created_date": "2025-01-01",
     "tags": ["science", "beginner"]},
    {"id": "missing", "filename": "missing.json", "title": "Missing", "description": "Gone",
     "category": "Other", "difficulty": "Advanced", "card_count": 1, "created_date": "2025-01-01",
     "tags": ["other", "advanced"]}
  ],
  "categories": ["Science", "Other"]
}`

type testServer struct {
	router   http.Handler
	registry *session.Registry
	dir      string
}

func newTestServer(t *testing.T, cfg session.RegistryConfig) *testServer {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, catalog.DefaultFile, testCatalog)
	writeTestFile(t, dir, "exam.json", threeCardDocument)
	writeTestFile(t, dir, "broken.json", `{"flashcards": []}`)

	log := logger.Discard()
	source := loader.NewDirSource(dir)
	catalogService := catalog.NewService(source, "", log)
	registry := session.NewRegistry(cfg, nil, log)
	setLoader := loader.New(source, catalogService, log)

	sessions := NewSessionHandler(registry, setLoader, log)
	sets := NewSetHandler(catalogService, log)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Route("/api", func(r chi.Router) {
		r.Get("/sets", sets.ListSets)
		r.Get("/sets/{id}", sets.GetSet)
		r.Route("/sessions", sessions.Routes)
	})

	return &testServer{router: r, registry: registry, dir: dir}
}

func writeTestFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	return s.do(t, method, path, r, "application/json")
}

func (s *testServer) upload(t *testing.T, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return s.do(t, http.MethodPost, path, &buf, mw.FormDataContentType())
}

// createSession creates a session and returns its ID.
func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSession(t, w).ID
}

// loadedSession creates a session with exam.json loaded.
func (s *testServer) loadedSession(t *testing.T) string {
	t.Helper()
	id := s.createSession(t)
	w := s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/load", `{"filename": "exam.json"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return id
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
