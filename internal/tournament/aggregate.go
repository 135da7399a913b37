// internal/tournament/aggregate.go
//
// Per-round aggregation of game results into per-agent statistics.
// Aggregation is commutative (sums and order statistics over a finished
// set), so it runs only after every episode of the round has terminated.

package tournament

import (
	"sort"
	"strconv"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/runner"
)

// AgentStats is one agent's record within a single round.
type AgentStats struct {
	Name              string         `json:"name"`
	GamesPlayed       int            `json:"games_played"`
	GamesSolved       int            `json:"games_solved"`
	SolveRate         float64        `json:"solve_rate"`
	MeanGuesses       float64        `json:"mean_guesses"`
	MedianGuesses     float64        `json:"median_guesses"`
	MaxGuesses        int            `json:"max_guesses"`
	TimedOut          int            `json:"timed_out"`
	Faulted           int            `json:"faulted"`
	GuessDistribution map[string]int `json:"guess_distribution"` // "1".."N" plus "failed"
}

// RoundSummary aggregates one (length, mode, repetition) round.
type RoundSummary struct {
	RoundID    string       `json:"round_id"`
	WordLength int          `json:"word_length"`
	Mode       string       `json:"mode"`
	Repetition int          `json:"repetition"`
	Seed       int64        `json:"seed"`
	NumGames   int          `json:"num_games"`
	Agents     []AgentStats `json:"agents"`
}

// summarize groups results by agent and computes the round statistics.
// Penalty guess counts (faults, timeouts, exhaustion) contribute as-is;
// a failed episode is a data point, never an exclusion.
func summarize(results []runner.Result) []AgentStats {
	byAgent := make(map[string][]runner.Result)
	for _, r := range results {
		byAgent[r.Agent] = append(byAgent[r.Agent], r)
	}

	names := make([]string, 0, len(byAgent))
	for name := range byAgent {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]AgentStats, 0, len(names))
	for _, name := range names {
		rs := byAgent[name]
		n := len(rs)

		guesses := make([]int, 0, n)
		st := AgentStats{
			Name:              name,
			GamesPlayed:       n,
			GuessDistribution: make(map[string]int),
		}
		var sum int
		for _, r := range rs {
			guesses = append(guesses, r.NumGuesses)
			sum += r.NumGuesses
			if r.NumGuesses > st.MaxGuesses {
				st.MaxGuesses = r.NumGuesses
			}
			switch {
			case r.Solved:
				st.GamesSolved++
				st.GuessDistribution[strconv.Itoa(r.NumGuesses)]++
			default:
				st.GuessDistribution["failed"]++
			}
			switch r.Outcome {
			case runner.OutcomeTimedOut:
				st.TimedOut++
			case runner.OutcomeFaulted:
				st.Faulted++
			}
		}
		sort.Ints(guesses)
		st.SolveRate = float64(st.GamesSolved) / float64(n)
		st.MeanGuesses = float64(sum) / float64(n)
		st.MedianGuesses = median(guesses)
		out = append(out, st)
	}
	return out
}

// median of a sorted slice.
func median(sorted []int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}
