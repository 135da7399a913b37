package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/runner"
)

func res(agent string, guesses int, outcome runner.Outcome) runner.Result {
	return runner.Result{
		Agent:      agent,
		NumGuesses: guesses,
		Solved:     outcome == runner.OutcomeSolved,
		Outcome:    outcome,
	}
}

func TestSummarizeComputesPerAgentStats(t *testing.T) {
	results := []runner.Result{
		res("B", 3, runner.OutcomeSolved),
		res("A", 2, runner.OutcomeSolved),
		res("A", 4, runner.OutcomeSolved),
		res("A", 7, runner.OutcomeTimedOut),
		res("B", 7, runner.OutcomeFaulted),
	}
	stats := summarize(results)
	assert.Len(t, stats, 2)
	// Alphabetical order.
	a, b := stats[0], stats[1]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "B", b.Name)

	assert.Equal(t, 3, a.GamesPlayed)
	assert.Equal(t, 2, a.GamesSolved)
	assert.InDelta(t, 2.0/3.0, a.SolveRate, 1e-9)
	assert.InDelta(t, 13.0/3.0, a.MeanGuesses, 1e-9)
	assert.InDelta(t, 4.0, a.MedianGuesses, 1e-9)
	assert.Equal(t, 7, a.MaxGuesses)
	assert.Equal(t, 1, a.TimedOut)
	assert.Zero(t, a.Faulted)

	assert.Equal(t, 1, b.Faulted)
	assert.InDelta(t, 0.5, b.SolveRate, 1e-9)
	assert.InDelta(t, 5.0, b.MedianGuesses, 1e-9)
}

func TestSummarizeGuessDistribution(t *testing.T) {
	results := []runner.Result{
		res("A", 2, runner.OutcomeSolved),
		res("A", 2, runner.OutcomeSolved),
		res("A", 5, runner.OutcomeSolved),
		res("A", 7, runner.OutcomeExhausted),
		res("A", 7, runner.OutcomeFaulted),
	}
	stats := summarize(results)
	assert.Equal(t, map[string]int{
		"2":      2,
		"5":      1,
		"failed": 2,
	}, stats[0].GuessDistribution)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, summarize(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 3.0, median([]int{3}))
	assert.Equal(t, 2.5, median([]int{2, 3}))
	assert.Equal(t, 3.0, median([]int{1, 3, 9}))
	assert.Equal(t, 3.5, median([]int{1, 3, 4, 9}))
}
