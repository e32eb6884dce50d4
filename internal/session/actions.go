package session

import "github.com/phrazzld/scry-study/internal/domain"

// Action is one of the transitions a session accepts. The set of actions is
// closed: only the types declared in this file implement it.
type Action interface {
	// Kind returns the transition name used in logs and events.
	Kind() string
	isAction()
}

// LoadCards replaces the deck and its original order with Cards.
type LoadCards struct {
	Cards []domain.Flashcard
}

// SetMetadata replaces the set metadata.
type SetMetadata struct {
	Metadata *domain.SetMetadata
}

// SetActiveSet records which catalog entry is loaded.
type SetActiveSet struct {
	Set *domain.SetDescriptor
}

// SetCurrentIndex moves to the card at Index and hides its answer.
type SetCurrentIndex struct {
	Index int
}

// ToggleAnswer flips answer visibility.
type ToggleAnswer struct{}

// Shuffle randomly permutes the deck.
type Shuffle struct{}

// Reset empties the deck.
type Reset struct{}

// SetLoading marks a load as started or finished.
type SetLoading struct {
	Loading bool
}

// SetError records (or clears, when Message is nil) a load failure.
type SetError struct {
	Message *string
}

func (LoadCards) Kind() string       { return "load_cards" }
func (SetMetadata) Kind() string     { return "set_metadata" }
func (SetActiveSet) Kind() string    { return "set_active_set" }
func (SetCurrentIndex) Kind() string { return "set_current_index" }
func (ToggleAnswer) Kind() string    { return "toggle_answer" }
func (Shuffle) Kind() string         { return "shuffle" }
func (Reset) Kind() string           { return "reset" }
func (SetLoading) Kind() string      { return "set_loading" }
func (SetError) Kind() string        { return "set_error" }

func (LoadCards) isAction()       {}
func (SetMetadata) isAction()     {}
func (SetActiveSet) isAction()    {}
func (SetCurrentIndex) isAction() {}
func (ToggleAnswer) isAction()    {}
func (Shuffle) isAction()         {}
func (Reset) isAction()           {}
func (SetLoading) isAction()      {}
func (SetError) isAction()        {}

// ErrorMessage is a convenience for building a SetError with a message.
func ErrorMessage(msg string) SetError {
	return SetError{Message: &msg}
}
