// internal/agent/entropy.go
//
// Reference agent: maximize the expected information gain per guess.
// Evaluates how each candidate guess partitions the remaining candidate
// set by feedback pattern and picks the guess with the highest Shannon
// entropy of that partition. Pools are capped so a turn stays cheap even
// on large vocabularies.

package agent

import (
	"math"
	"math/rand"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
)

// Performance caps for the entropy computation.
const (
	maxGuessPool      = 200 // guesses to evaluate per turn
	maxEvalCandidates = 500 // candidates to score each guess against
)

// Entropy selects the guess whose feedback partition over the remaining
// candidates has maximal Shannon entropy. Ties prefer guesses that are
// themselves still viable candidates.
type Entropy struct {
	rng   *rand.Rand
	vocab []string
}

// NewEntropy constructs an Entropy agent.
func NewEntropy() *Entropy { return &Entropy{} }

func (a *Entropy) Name() string { return "Entropy" }

func (a *Entropy) BeginGame(cfg *game.Config) {
	a.vocab = cfg.Vocabulary
	// Fixed seed: subsampling is an internal heuristic, kept repeatable.
	a.rng = rand.New(rand.NewSource(42))
}

func (a *Entropy) Guess(history []game.Turn) string {
	candidates := remaining(a.vocab, history)
	if len(candidates) == 0 {
		return a.vocab[0]
	}
	if len(candidates) <= 2 {
		return candidates[0]
	}

	candidateSet := make(map[string]struct{}, len(candidates))
	for _, w := range candidates {
		candidateSet[w] = struct{}{}
	}

	guessPool := sampleCap(a.rng, candidates, maxGuessPool)
	evalPool := sampleCap(a.rng, candidates, maxEvalCandidates)
	n := float64(len(evalPool))

	bestGuess := candidates[0]
	bestEntropy := -1.0
	for _, g := range guessPool {
		partition := make(map[int]int)
		for _, c := range evalPool {
			fb, err := game.Score(c, g)
			if err != nil {
				continue
			}
			partition[fb.Key()]++
		}

		ent := 0.0
		for _, count := range partition {
			p := float64(count) / n
			ent -= p * math.Log2(p)
		}

		_, isCandidate := candidateSet[g]
		_, bestIsCandidate := candidateSet[bestGuess]
		if ent > bestEntropy || (ent == bestEntropy && isCandidate && !bestIsCandidate) {
			bestEntropy = ent
			bestGuess = g
		}
	}
	return bestGuess
}

// sampleCap returns words itself when it fits the cap, or a random
// subsample of cap elements otherwise.
func sampleCap(rng *rand.Rand, words []string, cap int) []string {
	if len(words) <= cap {
		return words
	}
	idx := rng.Perm(len(words))[:cap]
	out := make([]string, cap)
	for i, j := range idx {
		out[i] = words[j]
	}
	return out
}
