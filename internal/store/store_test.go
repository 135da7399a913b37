package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/runner"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/tournament"
)

func sampleReport(id string, ts time.Time) *tournament.Report {
	return &tournament.Report{
		TournamentID: id,
		RunID:        "run-" + id,
		Timestamp:    ts,
		Config:       tournament.ReportConfig{Name: "test"},
		Rounds: []tournament.RoundSummary{
			{RoundID: "4_uniform", WordLength: 4, Mode: "uniform", NumGames: 2},
		},
		Leaderboard: []tournament.LeaderboardEntry{
			{Rank: 1, Agent: "Entropy", TotalPoints: 2},
			{Rank: 2, Agent: "Random", TotalPoints: 1},
		},
		Games: []runner.Result{
			{Agent: "Entropy", Secret: "casa", Guesses: []string{"gato", "casa"},
				NumGuesses: 2, Solved: true, Outcome: runner.OutcomeSolved,
				Elapsed: 12 * time.Millisecond},
			{Agent: "Random", Secret: "casa", NumGuesses: 7,
				Outcome: runner.OutcomeTimedOut, Reason: "compute budget exceeded"},
		},
	}
}

// forEachStore runs the suite against every Store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		s := NewMemoryStore()
		defer s.Close()
		fn(t, s)
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
		require.NoError(t, err)
		defer s.Close()
		fn(t, s)
	})
}

func TestSaveAndGetRun(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		r := sampleReport("20260830_120000", ts)
		require.NoError(t, s.SaveRun(ctx, r))

		got, err := s.GetRun(ctx, r.TournamentID)
		require.NoError(t, err)
		assert.Equal(t, r.RunID, got.RunID)
		assert.Equal(t, r.Leaderboard, got.Leaderboard)
		require.Len(t, got.Games, 2)
		assert.Equal(t, "casa", got.Games[0].Secret)

		_, err = s.GetRun(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSaveRunReplaces(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		r := sampleReport("20260830_120000", ts)
		require.NoError(t, s.SaveRun(ctx, r))

		r2 := sampleReport("20260830_120000", ts)
		r2.RunID = "replacement"
		r2.Games = r2.Games[:1]
		require.NoError(t, s.SaveRun(ctx, r2))

		got, err := s.GetRun(ctx, r.TournamentID)
		require.NoError(t, err)
		assert.Equal(t, "replacement", got.RunID)
		assert.Len(t, got.Games, 1)

		infos, err := s.ListRuns(ctx)
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})
}

func TestListRunsNewestFirst(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		for i, id := range []string{"20260830_120000", "20260830_130000", "20260830_140000"} {
			require.NoError(t, s.SaveRun(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Hour))))
		}

		infos, err := s.ListRuns(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 3)
		assert.Equal(t, "20260830_140000", infos[0].TournamentID)
		assert.Equal(t, "20260830_120000", infos[2].TournamentID)
		assert.Equal(t, 1, infos[0].Rounds)
		assert.Equal(t, 2, infos[0].Agents)
	})
}

func TestLatestRun(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.LatestRun(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		require.NoError(t, s.SaveRun(ctx, sampleReport("20260830_120000", ts)))
		require.NoError(t, s.SaveRun(ctx, sampleReport("20260830_130000", ts.Add(time.Hour))))

		latest, err := s.LatestRun(ctx)
		require.NoError(t, err)
		assert.Equal(t, "20260830_130000", latest.TournamentID)
	})
}
