package session

import "errors"

// Session errors. Precondition violations leave the state untouched.
var (
	// ErrIndexOutOfRange is returned when a transition requests a card
	// position outside the current deck.
	ErrIndexOutOfRange = errors.New("card index out of range")

	// ErrEmptyDeck is returned when cards are loaded from an empty sequence.
	ErrEmptyDeck = errors.New("cannot load an empty deck")

	// ErrUnknownAction is returned for an action type the reducer does not handle.
	ErrUnknownAction = errors.New("unknown session action")

	// ErrSessionNotFound is returned when a registry lookup misses.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the registry is at capacity.
	ErrTooManySessions = errors.New("too many active sessions")
)
