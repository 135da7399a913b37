// internal/tournament/orchestrator.go
//
// The tournament orchestrator: for each round configuration and
// repetition, run one isolated episode per (agent, secret), wait for
// the whole round, aggregate it, then score everything into a
// leaderboard.
//
// Concurrency model:
//   - Episodes run in parallel, bounded by the worker count, each in
//     its own isolated execution unit with a hard compute budget.
//   - Episodes within a round share only read-only data (vocabulary,
//     probabilities) and may finish in any order.
//   - A cancelled context stops outstanding episodes; the partial round
//     is marked incomplete and never aggregated into the leaderboard.
//
// Failure model: per-episode faults and timeouts become penalty data
// points. Only round setup failures (no corpus for a length) surface as
// errors, and they abort that round alone.

package tournament

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/agent"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/isolate"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/runner"
	"github.com/sonder-art/rtorneo-wordle-p26/internal/words"
)

// Orchestrator schedules and scores a tournament.
type Orchestrator struct {
	opts     Options
	roster   []agent.Factory
	launcher isolate.Launcher
}

// New constructs an Orchestrator. The roster must contain at least one
// factory; each episode gets a fresh agent instance from its factory.
func New(opts Options, roster []agent.Factory, launcher isolate.Launcher) (*Orchestrator, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("tournament: empty agent roster")
	}
	if launcher == nil {
		launcher = isolate.NewGoLauncher()
	}
	return &Orchestrator{opts: opts, roster: roster, launcher: launcher}, nil
}

// Run executes all rounds x repetitions and returns the scored report.
// Rounds whose setup fails are skipped; rounds interrupted by ctx are
// marked incomplete and excluded from scoring. Run fails only when ctx
// is cancelled or no round completed at all.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	masterSeed := o.opts.Seed
	if masterSeed == 0 {
		masterSeed = runtimeSeed()
	}
	rng := rand.New(rand.NewSource(masterSeed))

	runID := uuid.NewString()
	started := time.Now().UTC()
	log.Info().
		Str("runId", runID).
		Int("rounds", len(o.opts.Rounds)).
		Int("repetitions", o.opts.Repetitions).
		Int("agents", len(o.roster)).
		Float64("shock", o.opts.Shock).
		Dur("gameTimeout", o.opts.GameTimeout).
		Msg("starting tournament")

	report := &Report{
		TournamentID: started.Format("20060102_150405"),
		RunID:        runID,
		Timestamp:    started,
		Config:       o.reportConfig(masterSeed),
	}

	for rep := 1; rep <= o.opts.Repetitions; rep++ {
		for _, spec := range o.opts.Rounds {
			roundSeed := rng.Int63()
			if ctx.Err() != nil {
				report.Incomplete = true
				log.Warn().Str("round", spec.ID()).Int("repetition", rep).
					Msg("tournament cancelled, skipping remaining rounds")
				return o.finish(report, ctx.Err())
			}

			summary, games, err := o.runRound(ctx, spec, rep, roundSeed)
			if err != nil {
				if ctx.Err() != nil {
					// Partial round: discard its results entirely.
					report.Incomplete = true
					return o.finish(report, ctx.Err())
				}
				// Setup failure aborts only this round.
				log.Error().Err(err).Str("round", spec.ID()).Int("repetition", rep).
					Msg("round setup failed, skipping")
				continue
			}
			report.Rounds = append(report.Rounds, *summary)
			report.Games = append(report.Games, games...)
		}
	}

	if len(report.Rounds) == 0 {
		return nil, fmt.Errorf("tournament: no round completed")
	}
	return o.finish(report, nil)
}

// finish scores whatever complete rounds exist and closes the report.
func (o *Orchestrator) finish(report *Report, cause error) (*Report, error) {
	report.Leaderboard = ComputeLeaderboard(report.Rounds)
	if cause != nil {
		return report, fmt.Errorf("tournament cancelled after %d complete round(s): %w",
			len(report.Rounds), cause)
	}
	log.Info().Str("runId", report.RunID).Int("completedRounds", len(report.Rounds)).
		Msg("tournament finished")
	return report, nil
}

// runRound executes every (agent, secret) episode of one round and
// aggregates the results. The returned error is either a setup failure
// (skip the round) or the context error (discard the partial round).
func (o *Orchestrator) runRound(ctx context.Context, spec RoundSpec, rep int, seed int64) (*RoundSummary, []runner.Result, error) {
	lex, err := words.Load(o.opts.WordsPath, spec.WordLength, spec.Mode)
	if err != nil {
		return nil, nil, err
	}

	probs := lex.Probs
	if o.opts.Shock > 0 && spec.Mode == words.ModeFrequency {
		probs = words.Perturb(probs, o.opts.Shock, seed)
	}

	secrets := sampleSecrets(lex.Words, o.opts.NumGames, seed)
	workers := o.opts.Workers
	if workers <= 0 {
		workers = defaultWorkers(len(o.roster) * len(secrets))
	}

	log.Info().
		Str("round", spec.ID()).
		Int("repetition", rep).
		Int("vocabulary", len(lex.Words)).
		Int("secrets", len(secrets)).
		Int("workers", workers).
		Msg("starting round")
	start := time.Now()

	var (
		mu      sync.Mutex
		results []runner.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, factory := range o.roster {
		factory := factory
		for _, secret := range secrets {
			secret := secret
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				ag := factory()
				name := agent.SafeName(ag)
				cfg := &game.Config{
					WordLength:    spec.WordLength,
					Vocabulary:    lex.Words,
					Mode:          spec.Mode,
					Probabilities: probs,
					MaxGuesses:    o.opts.MaxGuesses,
					AllowNonWords: !o.opts.VocabOnly,
				}
				unit := o.launcher.Submit(gctx, o.opts.GameTimeout, func(taskCtx context.Context) runner.Result {
					return runner.Play(taskCtx, ag, cfg, secret)
				})
				res, ok := unit.Await()
				switch {
				case !ok:
					res = runner.TimeoutResult(name, secret, o.opts.MaxGuesses, o.opts.GameTimeout)
				case res.Agent == "":
					// A backstop fault carries no episode fields; fill them
					// in so the unsolved penalty still applies.
					res.Agent = name
					res.Secret = secret
					res.NumGuesses = o.opts.MaxGuesses + 1
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	summary := &RoundSummary{
		RoundID:    roundID(spec, rep, o.opts.Repetitions),
		WordLength: spec.WordLength,
		Mode:       spec.Mode,
		Repetition: rep,
		Seed:       seed,
		NumGames:   len(secrets),
		Agents:     summarize(results),
	}
	for _, st := range summary.Agents {
		log.Info().
			Str("round", summary.RoundID).
			Str("agent", st.Name).
			Int("solved", st.GamesSolved).
			Int("games", st.GamesPlayed).
			Float64("meanGuesses", st.MeanGuesses).
			Int("timeouts", st.TimedOut).
			Msg("agent round done")
	}
	log.Info().Str("round", summary.RoundID).Dur("elapsed", time.Since(start)).Msg("round finished")
	return summary, results, nil
}

// sampleSecrets draws up to numGames secrets without replacement.
// numGames <= 0 plays the entire vocabulary.
func sampleSecrets(vocab []string, numGames int, seed int64) []string {
	if numGames <= 0 || numGames >= len(vocab) {
		out := make([]string, len(vocab))
		copy(out, vocab)
		return out
	}
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(len(vocab))[:numGames]
	out := make([]string, numGames)
	for i, j := range idx {
		out[i] = vocab[j]
	}
	return out
}

// roundID mirrors the persisted naming: "<length>_<mode>" with a "_rN"
// suffix only when there are multiple repetitions.
func roundID(spec RoundSpec, rep, totalReps int) string {
	if totalReps > 1 {
		return fmt.Sprintf("%s_r%d", spec.ID(), rep)
	}
	return spec.ID()
}

// defaultWorkers bounds the episode batch width by host parallelism.
func defaultWorkers(episodes int) int {
	w := runtime.GOMAXPROCS(0)
	if w > episodes {
		w = episodes
	}
	if w < 1 {
		w = 1
	}
	return w
}

// runtimeSeed draws a fresh unpredictable master seed for this run.
func runtimeSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	seed := int64(binary.BigEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
