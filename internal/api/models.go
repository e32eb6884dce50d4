package api

import (
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/session"
)

// SessionResponse is the body returned by every session endpoint. The
// navigation fields are derived from State for the renderer's convenience.
type SessionResponse struct {
	ID          string            `json:"id"`
	State       session.State     `json:"state"`
	CurrentCard *domain.Flashcard `json:"current_card"`
	HasPrevious bool              `json:"has_previous"`
	HasNext     bool              `json:"has_next"`
}

// LoadSetRequest defines the payload for POST /api/sessions/{id}/load.
type LoadSetRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
}

// SetIndexRequest defines the payload for PUT /api/sessions/{id}/index.
// Index is a pointer so that a missing field is distinguishable from 0.
type SetIndexRequest struct {
	Index *int `json:"index" validate:"required"`
}

// SetsResponse lists the loadable flashcard sets and the catalog categories.
type SetsResponse struct {
	FlashcardSets []domain.SetDescriptor `json:"flashcard_sets"`
	Categories    []string               `json:"categories"`
}

func toSessionResponse(id string, state session.State) SessionResponse {
	resp := SessionResponse{
		ID:          id,
		State:       state,
		HasPrevious: state.HasPrevious(),
		HasNext:     state.HasNext(),
	}
	if card, ok := state.CurrentCard(); ok {
		resp.CurrentCard = &card
	}
	return resp
}
