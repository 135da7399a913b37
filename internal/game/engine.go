// internal/game/engine.go
//
// Matching engine: deterministic feedback for a guess against a secret,
// plus candidate filtering on top of it.
// Responsibilities:
//   - Score guesses with the classic two-pass algorithm (any word length).
//   - Filter a candidate set down to the words consistent with observed
//     feedback, by re-running Score — never an independent re-derivation.
//
// Notes:
//   - Both functions are pure; Score fails only on a length mismatch.
//   - Duplicate letters are resolved by greedy left-to-right consumption
//     in the second pass, so earlier guess positions win ties.
package game

import "fmt"

// Score computes the feedback for guess against secret.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) secret letters by letter index.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for
//     that letter, mark Present and decrement the count; otherwise Absent.
//
// This ensures correct behavior with repeated letters in both secret and
// guess: the Correct+Present marks for any letter never exceed its
// occurrence count in the secret.
func Score(secret, guess string) (Feedback, error) {
	n := len(secret)
	if len(guess) != n {
		return nil, fmt.Errorf("guess length (%d) != secret length (%d)", len(guess), n)
	}

	fb := make(Feedback, n)
	secretBytes := []byte(secret)
	guessBytes := []byte(guess)

	// Letter frequency for the non-correct positions (a-z).
	var counts [26]int

	// First pass: exact matches, and counts for the remaining secret letters.
	for i := 0; i < n; i++ {
		if guessBytes[i] == secretBytes[i] {
			fb[i] = MarkCorrect
		} else if j := idx(secretBytes[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	// Second pass: resolve presents/absents for the non-correct positions.
	for i := 0; i < n; i++ {
		if fb[i] == MarkCorrect {
			continue
		}
		j := idx(guessBytes[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			fb[i] = MarkPresent
			counts[j]--
		} else {
			fb[i] = MarkAbsent
		}
	}
	return fb, nil
}

// Filter returns the candidates W for which Score(W, guess) equals fb.
// An empty result is a legal terminal state, not an error; candidates
// whose length does not match the guess are dropped.
func Filter(candidates []string, guess string, fb Feedback) []string {
	out := make([]string, 0, len(candidates))
	for _, w := range candidates {
		got, err := Score(w, guess)
		if err != nil {
			continue
		}
		if got.Equal(fb) {
			out = append(out, w)
		}
	}
	return out
}

// idx maps a lowercase ASCII letter byte to 0..25.
func idx(b byte) int { return int(b) - 'a' }

// IsLowerAlpha checks that a string consists only of lowercase a-z.
func IsLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
