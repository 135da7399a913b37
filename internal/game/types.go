// internal/game/types.go
//
// Core type definitions for the matching engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Feedback: the full per-position mark sequence for one guess.
//   - Turn: one (guess, feedback) history entry.
//   - Config: the immutable snapshot an agent receives at game start.

package game

import "strings"

// Mark represents the evaluation result for a single letter in a guess.
// The numeric encoding (2/1/0) is the wire encoding used in persisted
// results, so the constant values are load-bearing.
type Mark int8

const (
	MarkAbsent  Mark = 0 // letter not in the secret, or already consumed
	MarkPresent Mark = 1 // letter in the secret but at another position
	MarkCorrect Mark = 2 // letter at exactly this position
)

// String returns the human-readable name of a mark.
func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkPresent:
		return "present"
	default:
		return "absent"
	}
}

// Feedback is the per-position mark sequence produced by Score.
// Its length always equals the guess length. Never mutated after creation.
type Feedback []Mark

// Equal reports whether two feedback sequences are identical.
func (f Feedback) Equal(other Feedback) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// AllCorrect reports whether every position is MarkCorrect (a solved game).
func (f Feedback) AllCorrect() bool {
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return len(f) > 0
}

// Key encodes the feedback as a base-3 integer. Useful as a compact,
// hashable partition key (the entropy agent groups candidates by it).
func (f Feedback) Key() int {
	val, mult := 0, 1
	for _, m := range f {
		val += int(m) * mult
		mult *= 3
	}
	return val
}

// String renders the feedback as digits, e.g. "21010".
func (f Feedback) String() string {
	var b strings.Builder
	for _, m := range f {
		b.WriteByte(byte('0' + m))
	}
	return b.String()
}

// Turn is one entry of a game's history: the word guessed and the
// feedback the matcher produced for it.
type Turn struct {
	Guess    string   `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Config is the immutable snapshot handed to an agent at the start of
// each game. Created fresh per episode by the runner; read-only to the
// agent. The secret is never part of it.
type Config struct {
	WordLength    int                // letters per word (4, 5, or 6)
	Vocabulary    []string           // all valid words, sorted, no duplicates
	Mode          string             // "uniform" or "frequency"
	Probabilities map[string]float64 // word -> probability, sums to 1
	MaxGuesses    int                // guesses allowed before the game is lost
	AllowNonWords bool               // permit guesses outside the vocabulary
}
