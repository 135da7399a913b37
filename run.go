// run.go
//
// The `run` command: executes a tournament with the built-in reference
// agents and writes results as JSON, optionally persisting them to the
// SQLite store consumed by `serve`.
//
// Flags override values from --config (YAML); zero-valued flags defer
// to the file, which defers to defaults.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/agent"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/store"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/tournament"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/words"
)

var runFlags struct {
	config      string
	name        string
	words       string
	length      int
	mode        string
	maxGuesses  int
	numGames    int
	repetitions int
	gameTimeout time.Duration
	shock       float64
	seed        int64
	vocabOnly   bool
	workers     int
	official    bool
	resultsDir  string
	dbPath      string
	writeJSON   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a tournament with the built-in reference agents",
	RunE:  runTournament,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.config, "config", "", "YAML options file")
	f.StringVar(&runFlags.name, "name", "", "run label stored in the report")
	f.StringVar(&runFlags.words, "words", "", "word corpus (.txt or .csv); empty = embedded")
	f.IntVar(&runFlags.length, "length", 0, "single round with this word length (requires --mode)")
	f.StringVar(&runFlags.mode, "mode", words.ModeUniform, "probability mode for --length: uniform|frequency")
	f.IntVar(&runFlags.maxGuesses, "max-guesses", 0, "turns per game (default 6)")
	f.IntVar(&runFlags.numGames, "num-games", 0, "secrets per round; 0 = whole vocabulary")
	f.IntVar(&runFlags.repetitions, "repetitions", 0, "independent re-runs of all rounds (default 1)")
	f.DurationVar(&runFlags.gameTimeout, "game-timeout", 0, "compute budget per episode (default 5s)")
	f.Float64Var(&runFlags.shock, "shock", 0, "noise scale for frequency rounds, in [0,1)")
	f.Int64Var(&runFlags.seed, "seed", 0, "master seed; 0 = fresh runtime seed")
	f.BoolVar(&runFlags.vocabOnly, "vocab-only", false, "reject guesses outside the vocabulary")
	f.IntVar(&runFlags.workers, "workers", 0, "parallel episodes; 0 = host parallelism")
	f.BoolVar(&runFlags.official, "official", false, "play all six canonical rounds")
	f.StringVar(&runFlags.resultsDir, "results-dir", "", "JSON report destination (default results)")
	f.StringVar(&runFlags.dbPath, "db", "", "also persist the run to this SQLite database")
	f.BoolVar(&runFlags.writeJSON, "json", true, "write report files (--json=false to skip)")

	rootCmd.AddCommand(runCmd)
}

// buildOptions merges --config with flag overrides.
func buildOptions() (tournament.Options, error) {
	var opts tournament.Options
	if runFlags.config != "" {
		loaded, err := tournament.LoadOptions(runFlags.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if runFlags.name != "" {
		opts.Name = runFlags.name
	}
	if runFlags.words != "" {
		opts.WordsPath = runFlags.words
	}
	if runFlags.maxGuesses > 0 {
		opts.MaxGuesses = runFlags.maxGuesses
	}
	if runFlags.numGames > 0 {
		opts.NumGames = runFlags.numGames
	}
	if runFlags.repetitions > 0 {
		opts.Repetitions = runFlags.repetitions
	}
	if runFlags.gameTimeout > 0 {
		opts.GameTimeout = runFlags.gameTimeout
	}
	if runFlags.shock > 0 {
		opts.Shock = runFlags.shock
	}
	if runFlags.seed != 0 {
		opts.Seed = runFlags.seed
	}
	if runFlags.vocabOnly {
		opts.VocabOnly = true
	}
	if runFlags.workers > 0 {
		opts.Workers = runFlags.workers
	}
	if runFlags.resultsDir != "" {
		opts.ResultsDir = runFlags.resultsDir
	}

	switch {
	case runFlags.official:
		opts.Rounds = tournament.CanonicalRounds
	case runFlags.length > 0:
		opts.Rounds = []tournament.RoundSpec{{WordLength: runFlags.length, Mode: runFlags.mode}}
	}
	return opts, nil
}

func runTournament(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	// Ctrl-C finishes the current round's bookkeeping and exits.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	roster := agent.Builtins(opts.Seed)
	orch, err := tournament.New(opts, roster, nil)
	if err != nil {
		return err
	}

	report, runErr := orch.Run(ctx)
	if report == nil {
		return runErr
	}
	if runErr != nil {
		log.Warn().Err(runErr).Msg("tournament interrupted, saving partial report")
	}

	if runFlags.writeJSON {
		path, err := report.WriteJSON(orDefault(opts.ResultsDir, "results"))
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info().Str("path", path).Msg("report written")
	}

	if runFlags.dbPath != "" {
		st, err := store.NewSQLiteStore(runFlags.dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		if err := st.SaveRun(cmd.Context(), report); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		log.Info().Str("db", runFlags.dbPath).Str("id", report.TournamentID).Msg("run persisted")
	}

	printLeaderboard(report)
	return runErr
}

// printLeaderboard writes the final standings to stdout.
func printLeaderboard(r *tournament.Report) {
	fmt.Printf("\nTournament %s (%d rounds)\n", r.TournamentID, len(r.Rounds))
	for _, e := range r.Leaderboard {
		fmt.Printf("  %2d. %-12s %7.2f pts  solve %.0f%%  mean %.2f guesses\n",
			e.Rank, e.Agent, e.TotalPoints, e.OverallSolveRate*100, e.OverallMeanGuesses)
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
