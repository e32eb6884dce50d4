package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

// CatalogReader lists the loadable flashcard sets.
type CatalogReader interface {
	Available(ctx context.Context) ([]domain.SetDescriptor, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (*domain.SetDescriptor, error)
}

// SetHandler serves the flashcard-set catalog.
type SetHandler struct {
	catalog CatalogReader
	logger  *slog.Logger
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(catalog CatalogReader, logger *slog.Logger) *SetHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for SetHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SetHandler")
	}
	return &SetHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "set_handler")),
	}
}

// ListSets handles GET /api/sets. Only sets whose document can be fetched
// are listed.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sets, err := h.catalog.Available(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("listing flashcard sets", slog.Int("set_count", len(sets)))
	shared.RespondWithJSON(w, r, http.StatusOK, SetsResponse{
		FlashcardSets: sets,
		Categories:    categories,
	})
}

// GetSet handles GET /api/sets/{id}.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, d)
}
