package session

import (
	"math/rand/v2"

	"github.com/phrazzld/scry-study/internal/domain"
)

// RandomSource draws uniform integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// shuffleCards permutes cards in place with the Fisher–Yates algorithm:
// walking from the last position down to 1, each position i is swapped with a
// position j drawn uniformly from [0, i].
func shuffleCards(cards []domain.Flashcard, rng RandomSource) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
