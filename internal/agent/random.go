// internal/agent/random.go
//
// Reference agent: uniform random choice among remaining candidates.

package agent

import (
	"math/rand"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
)

// Random guesses a uniformly random word from the candidates consistent
// with the history so far.
type Random struct {
	rng   *rand.Rand
	vocab []string
}

// NewRandom constructs a Random agent with an explicit seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Name() string { return "Random" }

func (a *Random) BeginGame(cfg *game.Config) {
	a.vocab = cfg.Vocabulary
}

func (a *Random) Guess(history []game.Turn) string {
	candidates := remaining(a.vocab, history)
	if len(candidates) == 0 {
		// Shouldn't happen when the secret is drawn from the vocabulary.
		return a.vocab[0]
	}
	return candidates[a.rng.Intn(len(candidates))]
}
