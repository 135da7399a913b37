// internal/agent/agent.go
//
// The capability contract every guessing agent implements, plus the
// factory type the orchestrator uses to get a fresh instance per episode.
//
// The three members below are the entire surface reachable during
// evaluation. Agents never see the secret — only the cumulative history
// of (guess, feedback) pairs. Contract enforcement (word length,
// vocabulary membership) is the runner's job, not the agent's.

package agent

import (
	"sync/atomic"
	"time"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
)

// Agent is a guessing unit under evaluation.
type Agent interface {
	// Name is the stable identity used as the leaderboard key.
	Name() string

	// BeginGame is called once at the start of each episode with the
	// immutable game config. Use it for per-game precomputation.
	BeginGame(cfg *game.Config)

	// Guess returns the next word to try given the history so far.
	Guess(history []game.Turn) string
}

// Factory produces a fresh Agent instance. Episodes run concurrently, so
// the orchestrator never shares one instance across episodes.
type Factory func() Agent

// Builtins returns factories for the reference agents. The seed anchors
// the stochastic agents; each Random instance draws a distinct offset so
// concurrent episodes never replay one sequence. Seed 0 falls back to
// the clock.
func Builtins(seed int64) []Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var instances atomic.Int64
	return []Factory{
		func() Agent { return NewRandom(seed + instances.Add(1)) },
		func() Agent { return NewMaxProb() },
		func() Agent { return NewEntropy() },
	}
}

// SafeName returns ag.Name(), mapping a panic inside Name to a
// placeholder so a broken agent cannot crash the scheduler.
func SafeName(ag Agent) (name string) {
	defer func() {
		if recover() != nil {
			name = "unknown"
		}
	}()
	return ag.Name()
}

// remaining replays the history through the filter to get the candidate
// set consistent with every observed feedback.
func remaining(vocab []string, history []game.Turn) []string {
	candidates := vocab
	for _, t := range history {
		candidates = game.Filter(candidates, t.Guess, t.Feedback)
	}
	return candidates
}
