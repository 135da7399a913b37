// internal/agent/maxprob.go
//
// Reference agent: always guess the most probable remaining candidate.

package agent

import (
	"sort"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
)

// MaxProb guesses the remaining candidate with the highest probability.
// Under uniform mode this degenerates to alphabetically-first (all
// probabilities equal); under frequency mode it prefers common words.
type MaxProb struct {
	ordered []string // vocabulary sorted by descending probability
}

// NewMaxProb constructs a MaxProb agent.
func NewMaxProb() *MaxProb { return &MaxProb{} }

func (a *MaxProb) Name() string { return "MaxProb" }

func (a *MaxProb) BeginGame(cfg *game.Config) {
	ordered := make([]string, len(cfg.Vocabulary))
	copy(ordered, cfg.Vocabulary)
	probs := cfg.Probabilities
	// Descending probability, alphabetical for ties.
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := probs[ordered[i]], probs[ordered[j]]
		if pi != pj {
			return pi > pj
		}
		return ordered[i] < ordered[j]
	})
	a.ordered = ordered
}

func (a *MaxProb) Guess(history []game.Turn) string {
	candidates := remaining(a.ordered, history)
	if len(candidates) == 0 {
		return a.ordered[0]
	}
	// Filtering preserves order, so the head is still the most probable.
	return candidates[0]
}
