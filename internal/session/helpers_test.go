package session

import (
	"fmt"
	"math/rand/v2"

	"github.com/phrazzld/scry-study/internal/domain"
)

// makeCards builds n distinct true/false cards numbered from 1.
func makeCards(n int) []domain.Flashcard {
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			Question:       fmt.Sprintf("Question %d?", i+1),
			Answer:         fmt.Sprintf("Answer %d", i+1),
			QuestionNumber: i + 1,
			Format:         domain.FormatTrueFalse,
		}
	}
	return cards
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func strPtr(s string) *string {
	return &s
}

// mustReduce applies a sequence of actions, panicking on any rejection.
func mustReduce(state State, rng RandomSource, actions ...Action) State {
	for _, a := range actions {
		next, err := Reduce(state, a, rng)
		if err != nil {
			panic(fmt.Sprintf("reduce %s: %v", a.Kind(), err))
		}
		state = next
	}
	return state
}

// questionNumbers projects a deck onto its question numbers.
func questionNumbers(cards []domain.Flashcard) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.QuestionNumber
	}
	return out
}
