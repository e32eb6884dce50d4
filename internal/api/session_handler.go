package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/loader"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/session"
)

// maxUploadSize bounds multipart uploads: one document plus form overhead.
const maxUploadSize = loader.MaxDocumentSize + 64<<10

// SessionRegistry creates and looks up study sessions.
type SessionRegistry interface {
	Create(ctx context.Context) (*session.Store, error)
	Get(id string) (*session.Store, error)
	Delete(ctx context.Context, id string) error
}

// SetLoader applies flashcard documents to a session.
type SetLoader interface {
	LoadSet(ctx context.Context, target loader.Target, filename string) error
	LoadUpload(ctx context.Context, target loader.Target, name string, data []byte) error
}

// SessionHandler handles study-session HTTP requests.
type SessionHandler struct {
	registry SessionRegistry
	loader   SetLoader
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(registry SessionRegistry, setLoader SetLoader, logger *slog.Logger) *SessionHandler {
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil for SessionHandler")
	}
	if setLoader == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("loader cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		registry: registry,
		loader:   setLoader,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// Routes registers the session endpoints on r.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateSession)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)
		r.Post("/load", h.LoadSet)
		r.Post("/upload", h.UploadSet)
		r.Post("/toggle", h.ToggleAnswer)
		r.Post("/next", h.Next)
		r.Post("/previous", h.Previous)
		r.Post("/shuffle", h.Shuffle)
		r.Post("/reset", h.Reset)
		r.Put("/index", h.SetIndex)
	})
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	store, err := h.registry.Create(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toSessionResponse(store.ID(), store.Snapshot()))
}

// GetSession handles GET /api/sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(store.ID(), store.Snapshot()))
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadSet handles POST /api/sessions/{id}/load. A set that fails to load is
// still a 200: the failure is reported in the session's error field.
func (h *SessionHandler) LoadSet(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req LoadSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, invalidRequest(err))
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		h.respondWithError(w, r, invalidRequest(err))
		return
	}

	err := h.loader.LoadSet(r.Context(), store, req.Filename)
	h.respondAfterLoad(w, r, store, err)
}

// UploadSet handles POST /api/sessions/{id}/upload with a multipart "file" field.
func (h *SessionHandler) UploadSet(w http.ResponseWriter, r *http.Request) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if r.ContentLength > maxUploadSize {
		h.respondWithError(w, r, &http.MaxBytesError{Limit: maxUploadSize})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondWithError(w, r, invalidRequest(fmt.Errorf("missing upload: %w", err)))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondWithError(w, r, invalidRequest(fmt.Errorf("failed to read upload: %w", err)))
		return
	}

	err = h.loader.LoadUpload(r.Context(), store, header.Filename, data)
	h.respondAfterLoad(w, r, store, err)
}

// ToggleAnswer handles POST /api/sessions/{id}/toggle.
func (h *SessionHandler) ToggleAnswer(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Store).ToggleAnswer)
}

// Next handles POST /api/sessions/{id}/next.
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Store).Next)
}

// Previous handles POST /api/sessions/{id}/previous.
func (h *SessionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Store).Previous)
}

// Shuffle handles POST /api/sessions/{id}/shuffle.
func (h *SessionHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Store).Shuffle)
}

// Reset handles POST /api/sessions/{id}/reset.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Store).Reset)
}

// SetIndex handles PUT /api/sessions/{id}/index.
func (h *SessionHandler) SetIndex(w http.ResponseWriter, r *http.Request) {
	var req SetIndexRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, invalidRequest(err))
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		h.respondWithError(w, r, invalidRequest(err))
		return
	}
	h.transition(w, r, func(s *session.Store, ctx context.Context) error {
		return s.SetCurrentIndex(ctx, *req.Index)
	})
}

// transition looks up the session, applies fn and responds with the new
// snapshot. Rejected transitions leave the session unchanged.
func (h *SessionHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(*session.Store, context.Context) error,
) {
	store, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := fn(store, r.Context()); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(store.ID(), store.Snapshot()))
}

func (h *SessionHandler) respondAfterLoad(w http.ResponseWriter, r *http.Request, store *session.Store, err error) {
	if err != nil && !errors.Is(err, loader.ErrValidation) && !errors.Is(err, loader.ErrTransport) {
		h.respondWithError(w, r, err)
		return
	}
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("load failure recorded in session",
			"session_id", store.ID(),
			"error_kind", loader.Kind(err))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(store.ID(), store.Snapshot()))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Store, bool) {
	store, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return nil, false
	}
	return store, true
}

func (h *SessionHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
