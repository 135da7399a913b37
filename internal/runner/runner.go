// internal/runner/runner.go
//
// Drives one (agent, secret) episode to completion or failure.
// State machine: Init -> BeginGame -> Turn* -> {Solved | Exhausted |
// Faulted | TimedOut}.
//
// Responsibilities:
//   - Invoke the agent's BeginGame once, then Guess per turn.
//   - Validate every returned word against the contract; violations
//     fault the episode, they never propagate.
//   - Score guesses through the matching engine and grow the history.
//   - Honor the episode deadline carried by the context: the same
//     wall-clock budget covers BeginGame plus all turns.
//
// A Result is produced exactly once per episode. All unsolved outcomes
// are scored with the MaxGuesses+1 penalty sentinel.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/agent"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
)

// Outcome is the terminal state of an episode.
type Outcome string

const (
	OutcomeSolved    Outcome = "solved"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeFaulted   Outcome = "faulted"
	OutcomeTimedOut  Outcome = "timed_out"
)

// Result is the immutable terminal record of one episode.
type Result struct {
	Agent      string        `json:"agent"`
	Secret     string        `json:"secret"`
	Guesses    []string      `json:"guesses"`
	NumGuesses int           `json:"num_guesses"` // MaxGuesses+1 when unsolved
	Solved     bool          `json:"solved"`
	Outcome    Outcome       `json:"outcome"`
	Reason     string        `json:"reason,omitempty"` // fault detail
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Play runs one episode of ag against secret under cfg.
//
// The context deadline is the episode's compute budget; it is checked
// around every agent invocation, so a cooperative agent times out here.
// A non-cooperative agent is reclaimed by the isolation layer instead.
// Agent panics are contained and recorded as a fault.
func Play(ctx context.Context, ag agent.Agent, cfg *game.Config, secret string) (res Result) {
	start := time.Now()
	res = Result{Secret: secret}
	penalty := cfg.MaxGuesses + 1

	finish := func(outcome Outcome, reason string) Result {
		res.Outcome = outcome
		res.Reason = reason
		res.Solved = outcome == OutcomeSolved
		if res.Solved {
			res.NumGuesses = len(res.Guesses)
		} else {
			res.NumGuesses = penalty
		}
		res.Elapsed = time.Since(start)
		return res
	}

	// Installed before the first agent call: a panic anywhere in the
	// agent, Name() included, lands as a scored fault.
	defer func() {
		if r := recover(); r != nil {
			if res.Agent == "" {
				res.Agent = "unknown"
			}
			res = finish(OutcomeFaulted, fmt.Sprintf("agent panic: %v", r))
		}
	}()

	res.Agent = ag.Name()

	vocabSet := make(map[string]struct{}, len(cfg.Vocabulary))
	if !cfg.AllowNonWords {
		for _, w := range cfg.Vocabulary {
			vocabSet[w] = struct{}{}
		}
	}

	if ctx.Err() != nil {
		return finish(OutcomeTimedOut, "deadline exceeded before start")
	}
	ag.BeginGame(cfg)

	history := make([]game.Turn, 0, cfg.MaxGuesses)
	for turn := 1; turn <= cfg.MaxGuesses; turn++ {
		if ctx.Err() != nil {
			return finish(OutcomeTimedOut, "deadline exceeded")
		}

		// Agents receive a copy; the runner owns the history.
		word := ag.Guess(append([]game.Turn(nil), history...))

		// The budget covers the computation itself: an answer delivered
		// after expiry times out before it is scored, even a correct one.
		if ctx.Err() != nil {
			return finish(OutcomeTimedOut, "deadline exceeded")
		}

		if len(word) != cfg.WordLength || !game.IsLowerAlpha(word) {
			res.Guesses = append(res.Guesses, word)
			return finish(OutcomeFaulted, fmt.Sprintf("malformed guess %q", word))
		}
		if !cfg.AllowNonWords {
			if _, ok := vocabSet[word]; !ok {
				res.Guesses = append(res.Guesses, word)
				return finish(OutcomeFaulted, fmt.Sprintf("guess %q not in vocabulary", word))
			}
		}

		fb, err := game.Score(secret, word)
		if err != nil {
			return finish(OutcomeFaulted, err.Error())
		}
		res.Guesses = append(res.Guesses, word)
		history = append(history, game.Turn{Guess: word, Feedback: fb})

		if fb.AllCorrect() {
			return finish(OutcomeSolved, "")
		}
	}
	return finish(OutcomeExhausted, "")
}

// TimeoutResult synthesizes the penalty record for an episode whose
// isolated unit was reclaimed at its deadline before reporting back.
func TimeoutResult(agentName, secret string, maxGuesses int, elapsed time.Duration) Result {
	return Result{
		Agent:      agentName,
		Secret:     secret,
		NumGuesses: maxGuesses + 1,
		Outcome:    OutcomeTimedOut,
		Reason:     "compute budget exceeded",
		Elapsed:    elapsed,
	}
}
