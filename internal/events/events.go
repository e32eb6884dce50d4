package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionEvent describes a transition that has been applied to a session.
type SessionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// SessionID identifies the session the transition was applied to
	SessionID string `json:"session_id"`

	// Action is the name of the applied transition (e.g. "load_cards")
	Action string `json:"action"`

	// CardCount is the deck size after the transition
	CardCount int `json:"card_count"`

	// CurrentIndex is the position in the deck after the transition
	CurrentIndex int `json:"current_index"`

	// Seq numbers the session's transitions, starting at 1
	Seq uint64 `json:"seq"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionEvent creates a new SessionEvent for the given session and action.
func NewSessionEvent(sessionID, action string, cardCount, currentIndex int) *SessionEvent {
	return &SessionEvent{
		ID:           uuid.New(),
		SessionID:    sessionID,
		Action:       action,
		CardCount:    cardCount,
		CurrentIndex: currentIndex,
		CreatedAt:    time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *SessionEvent) error
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *SessionEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *SessionEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the session store to publish changes without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *SessionEvent) error
}
