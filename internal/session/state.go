package session

import (
	"slices"

	"github.com/phrazzld/scry-study/internal/domain"
)

// State is the complete study-session state. Values are replaced wholesale by
// Reduce; a State obtained from Store.Snapshot is a private copy.
type State struct {
	// Cards is the active, possibly shuffled, deck.
	Cards []domain.Flashcard `json:"cards"`

	// OriginalOrder is the deck as it was first loaded.
	OriginalOrder []domain.Flashcard `json:"original_order"`

	// CurrentIndex is the position in Cards. It is 0 when Cards is empty.
	CurrentIndex int `json:"current_index"`

	// AnswerVisible reports whether the current card shows its answer.
	AnswerVisible bool `json:"answer_visible"`

	Metadata  *domain.SetMetadata   `json:"metadata"`
	ActiveSet *domain.SetDescriptor `json:"active_set"`

	// Loading is true while a set load is outstanding.
	Loading bool `json:"loading"`

	// Error is the last load failure message.
	Error *string `json:"error"`
}

// Initial returns the state a new session starts in.
func Initial() State {
	return State{
		Cards:         []domain.Flashcard{},
		OriginalOrder: []domain.Flashcard{},
	}
}

// CurrentCard returns the card at CurrentIndex, or false when the deck is empty.
func (s State) CurrentCard() (domain.Flashcard, bool) {
	if len(s.Cards) == 0 {
		return domain.Flashcard{}, false
	}
	return s.Cards[s.CurrentIndex], true
}

// HasPrevious reports whether a card precedes the current one.
func (s State) HasPrevious() bool {
	return s.CurrentIndex > 0
}

// HasNext reports whether a card follows the current one.
func (s State) HasNext() bool {
	return s.CurrentIndex < len(s.Cards)-1
}

// Clone returns a copy of s that shares no slices or pointers with it.
// Flashcards themselves are immutable and are copied by value.
func (s State) Clone() State {
	out := s
	out.Cards = slices.Clone(s.Cards)
	out.OriginalOrder = slices.Clone(s.OriginalOrder)
	if out.Cards == nil {
		out.Cards = []domain.Flashcard{}
	}
	if out.OriginalOrder == nil {
		out.OriginalOrder = []domain.Flashcard{}
	}
	out.Metadata = s.Metadata.Clone()
	out.ActiveSet = s.ActiveSet.Clone()
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	return out
}
