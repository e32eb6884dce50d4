package session

import (
	"fmt"
	"slices"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Reduce applies action to state and returns the resulting state. It never
// modifies state or the slices it references. When the action's precondition
// does not hold, Reduce returns the unchanged state and an error.
//
// rng is only consulted by Shuffle; nil selects the process-wide generator.
func Reduce(state State, action Action, rng RandomSource) (State, error) {
	next := state

	switch a := action.(type) {
	case LoadCards:
		if len(a.Cards) == 0 {
			return state, ErrEmptyDeck
		}
		next.Cards = slices.Clone(a.Cards)
		next.OriginalOrder = slices.Clone(a.Cards)
		next.CurrentIndex = 0
		next.AnswerVisible = false
		next.Error = nil

	case SetMetadata:
		next.Metadata = a.Metadata.Clone()

	case SetActiveSet:
		next.ActiveSet = a.Set.Clone()

	case SetCurrentIndex:
		if a.Index < 0 || a.Index >= len(state.Cards) {
			return state, fmt.Errorf("%w: index %d, deck size %d",
				ErrIndexOutOfRange, a.Index, len(state.Cards))
		}
		next.CurrentIndex = a.Index
		next.AnswerVisible = false

	case ToggleAnswer:
		next.AnswerVisible = !state.AnswerVisible

	case Shuffle:
		if rng == nil {
			rng = globalSource{}
		}
		shuffled := slices.Clone(state.Cards)
		shuffleCards(shuffled, rng)
		if shuffled == nil {
			shuffled = state.Cards
		}
		next.Cards = shuffled
		next.CurrentIndex = 0
		next.AnswerVisible = false

	case Reset:
		// ActiveSet and Loading survive a reset.
		next.Cards = []domain.Flashcard{}
		next.OriginalOrder = []domain.Flashcard{}
		next.CurrentIndex = 0
		next.AnswerVisible = false
		next.Metadata = nil
		next.Error = nil

	case SetLoading:
		next.Loading = a.Loading

	case SetError:
		next.Error = a.Message

	default:
		return state, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	return next, nil
}
