package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/game"
)

// scripted returns canned guesses in order; useful for exercising every
// terminal state of the episode machine.
type scripted struct {
	name    string
	guesses []string
	turn    int
	began   bool
}

func (s *scripted) Name() string               { return s.name }
func (s *scripted) BeginGame(cfg *game.Config) { s.began = true }
func (s *scripted) Guess(history []game.Turn) string {
	w := s.guesses[s.turn%len(s.guesses)]
	s.turn++
	return w
}

// oracle guesses the configured word immediately.
type oracle struct{ word string }

func (o oracle) Name() string               { return "Oracle" }
func (o oracle) BeginGame(cfg *game.Config) {}
func (o oracle) Guess([]game.Turn) string   { return o.word }

// panicky crashes on its first guess.
type panicky struct{}

func (panicky) Name() string               { return "Panicky" }
func (panicky) BeginGame(cfg *game.Config) {}
func (panicky) Guess([]game.Turn) string   { panic("boom") }

// sleeper blocks in Guess until released.
type sleeper struct{ d time.Duration }

func (s sleeper) Name() string               { return "Sleeper" }
func (s sleeper) BeginGame(cfg *game.Config) {}
func (s sleeper) Guess([]game.Turn) string {
	time.Sleep(s.d)
	return "casa"
}

// lateOracle burns wall-clock time and only then produces the secret.
type lateOracle struct {
	word string
	d    time.Duration
}

func (l lateOracle) Name() string               { return "LateOracle" }
func (l lateOracle) BeginGame(cfg *game.Config) {}
func (l lateOracle) Guess([]game.Turn) string {
	time.Sleep(l.d)
	return l.word
}

// badName crashes before it can even identify itself.
type badName struct{}

func (badName) Name() string               { panic("no name") }
func (badName) BeginGame(cfg *game.Config) {}
func (badName) Guess([]game.Turn) string   { return "casa" }

func testCfg() *game.Config {
	vocab := []string{"casa", "cosa", "gato", "mesa"}
	probs := make(map[string]float64, len(vocab))
	for _, w := range vocab {
		probs[w] = 0.25
	}
	return &game.Config{
		WordLength:    4,
		Vocabulary:    vocab,
		Mode:          "uniform",
		Probabilities: probs,
		MaxGuesses:    3,
		AllowNonWords: false,
	}
}

func TestPlaySolved(t *testing.T) {
	res := Play(context.Background(), oracle{word: "gato"}, testCfg(), "gato")
	assert.Equal(t, OutcomeSolved, res.Outcome)
	assert.True(t, res.Solved)
	assert.Equal(t, 1, res.NumGuesses)
	assert.Equal(t, []string{"gato"}, res.Guesses)
	assert.Equal(t, "Oracle", res.Agent)
}

func TestPlayExhausted(t *testing.T) {
	ag := &scripted{name: "Stubborn", guesses: []string{"mesa"}}
	res := Play(context.Background(), ag, testCfg(), "gato")
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.False(t, res.Solved)
	// Penalty sentinel: MaxGuesses+1.
	assert.Equal(t, 4, res.NumGuesses)
	assert.Len(t, res.Guesses, 3)
	assert.True(t, ag.began)
}

func TestPlayFaultsOnMalformedWord(t *testing.T) {
	for _, bad := range []string{"xy", "GATO", "casas", "cas4"} {
		ag := &scripted{name: "Bad", guesses: []string{bad}}
		res := Play(context.Background(), ag, testCfg(), "gato")
		assert.Equal(t, OutcomeFaulted, res.Outcome, "guess %q", bad)
		assert.Equal(t, 4, res.NumGuesses)
		assert.NotEmpty(t, res.Reason)
	}
}

func TestPlayFaultsOutsideVocabulary(t *testing.T) {
	ag := &scripted{name: "OffList", guesses: []string{"taza"}}
	res := Play(context.Background(), ag, testCfg(), "gato")
	assert.Equal(t, OutcomeFaulted, res.Outcome)
}

func TestPlayAllowsNonWordsWhenConfigured(t *testing.T) {
	cfg := testCfg()
	cfg.AllowNonWords = true
	ag := &scripted{name: "Probe", guesses: []string{"zzzz", "gato"}}
	res := Play(context.Background(), ag, cfg, "gato")
	assert.Equal(t, OutcomeSolved, res.Outcome)
	assert.Equal(t, 2, res.NumGuesses)
}

func TestPlayContainsPanic(t *testing.T) {
	res := Play(context.Background(), panicky{}, testCfg(), "gato")
	assert.Equal(t, OutcomeFaulted, res.Outcome)
	assert.Contains(t, res.Reason, "panic")
	assert.Equal(t, 4, res.NumGuesses)
}

func TestPlayCooperativeTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	// The guess sleeps past the deadline; the post-guess check fires.
	res := Play(ctx, sleeper{d: 50 * time.Millisecond}, testCfg(), "gato")
	assert.Equal(t, OutcomeTimedOut, res.Outcome)
	assert.False(t, res.Solved)
	assert.Equal(t, 4, res.NumGuesses)
}

func TestPlayLateCorrectAnswerTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	// The correct word arrives after the budget: it must not be scored.
	res := Play(ctx, lateOracle{word: "gato", d: 60 * time.Millisecond}, testCfg(), "gato")
	assert.Equal(t, OutcomeTimedOut, res.Outcome)
	assert.False(t, res.Solved)
	assert.Empty(t, res.Guesses)
	assert.Equal(t, 4, res.NumGuesses)
}

func TestPlayFaultsWhenNamePanics(t *testing.T) {
	res := Play(context.Background(), badName{}, testCfg(), "gato")
	assert.Equal(t, OutcomeFaulted, res.Outcome)
	assert.Equal(t, "unknown", res.Agent)
	assert.Contains(t, res.Reason, "panic")
	assert.Equal(t, 4, res.NumGuesses)
}

func TestPlayExpiredBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Play(ctx, oracle{word: "gato"}, testCfg(), "gato")
	assert.Equal(t, OutcomeTimedOut, res.Outcome)
}

func TestPlayFeedbackHistoryIsConsistent(t *testing.T) {
	cfg := testCfg()
	cfg.MaxGuesses = 4

	var seen [][]game.Turn
	ag := &recorder{inner: &scripted{name: "R", guesses: []string{"casa", "cosa", "mesa", "gato"}}, seen: &seen}
	res := Play(context.Background(), ag, cfg, "gato")
	require.Equal(t, OutcomeSolved, res.Outcome)

	// History grows by exactly one entry per turn.
	for i, h := range seen {
		assert.Len(t, h, i)
	}
}

type recorder struct {
	inner *scripted
	seen  *[][]game.Turn
}

func (r *recorder) Name() string               { return r.inner.Name() }
func (r *recorder) BeginGame(cfg *game.Config) { r.inner.BeginGame(cfg) }
func (r *recorder) Guess(history []game.Turn) string {
	*r.seen = append(*r.seen, history)
	return r.inner.Guess(history)
}

func TestTimeoutResult(t *testing.T) {
	res := TimeoutResult("Slow", "gato", 6, time.Second)
	assert.Equal(t, OutcomeTimedOut, res.Outcome)
	assert.Equal(t, 7, res.NumGuesses)
	assert.False(t, res.Solved)
	assert.Equal(t, "Slow", res.Agent)
}
