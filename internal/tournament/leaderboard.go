// internal/tournament/leaderboard.go
//
// Borda-style leaderboard: within each round, rank agents by mean
// guesses ascending and award rank 1 N points down to rank N getting 1
// (N = agents in the round). Tied agents all receive the arithmetic mean
// of the points their tied rank range spans. Points accumulate across
// every round of every repetition; the final order is total points
// descending with no further tie-break.

package tournament

import "sort"

// LeaderboardEntry is one agent's final standing. Derived data,
// recomputed from the round summaries on demand.
type LeaderboardEntry struct {
	Rank               int                `json:"rank"`
	Agent              string             `json:"agent"`
	TotalPoints        float64            `json:"total_points"`
	RoundPoints        map[string]float64 `json:"round_points"`
	OverallSolveRate   float64            `json:"overall_solve_rate"`
	OverallMeanGuesses float64            `json:"overall_mean_guesses"`
}

// ComputeLeaderboard scores the given (complete) rounds.
func ComputeLeaderboard(rounds []RoundSummary) []LeaderboardEntry {
	totals := make(map[string]float64)
	perRound := make(map[string]map[string]float64)
	solveRates := make(map[string][]float64)
	meanGuesses := make(map[string][]float64)

	for _, rd := range rounds {
		n := len(rd.Agents)
		if n == 0 {
			continue
		}
		ranked := make([]AgentStats, n)
		copy(ranked, rd.Agents)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].MeanGuesses < ranked[j].MeanGuesses
		})

		// Walk tie groups: positions i..j-1 share a mean and split the
		// points their rank range would have earned.
		for i := 0; i < n; {
			j := i
			for j < n && ranked[j].MeanGuesses == ranked[i].MeanGuesses {
				j++
			}
			var span float64
			for k := i; k < j; k++ {
				span += float64(n - k)
			}
			pts := span / float64(j-i)
			for k := i; k < j; k++ {
				name := ranked[k].Name
				totals[name] += pts
				if perRound[name] == nil {
					perRound[name] = make(map[string]float64)
				}
				perRound[name][rd.RoundID] = pts
			}
			i = j
		}

		for _, st := range rd.Agents {
			solveRates[st.Name] = append(solveRates[st.Name], st.SolveRate)
			meanGuesses[st.Name] = append(meanGuesses[st.Name], st.MeanGuesses)
		}
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for name, pts := range totals {
		entries = append(entries, LeaderboardEntry{
			Agent:              name,
			TotalPoints:        pts,
			RoundPoints:        perRound[name],
			OverallSolveRate:   mean(solveRates[name]),
			OverallMeanGuesses: mean(meanGuesses[name]),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].Agent < entries[j].Agent
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}
