package tournament

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/words"
)

func TestWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, CanonicalRounds, o.Rounds)
	assert.Equal(t, 1, o.Repetitions)
	assert.Equal(t, 6, o.MaxGuesses)
	assert.Equal(t, 5*time.Second, o.GameTimeout)
	assert.Equal(t, "results", o.ResultsDir)

	// Explicit values survive.
	o = Options{
		Rounds:      []RoundSpec{{WordLength: 5, Mode: words.ModeUniform}},
		Repetitions: 3,
		MaxGuesses:  8,
		GameTimeout: time.Minute,
		ResultsDir:  "out",
	}.withDefaults()
	assert.Len(t, o.Rounds, 1)
	assert.Equal(t, 3, o.Repetitions)
	assert.Equal(t, 8, o.MaxGuesses)
	assert.Equal(t, time.Minute, o.GameTimeout)
	assert.Equal(t, "out", o.ResultsDir)
}

func TestValidate(t *testing.T) {
	ok := Options{}.withDefaults()
	assert.NoError(t, ok.validate())

	bad := ok
	bad.Rounds = []RoundSpec{{WordLength: 1, Mode: words.ModeUniform}}
	assert.Error(t, bad.validate())

	bad = ok
	bad.Rounds = []RoundSpec{{WordLength: 5, Mode: "zipf"}}
	assert.Error(t, bad.validate())

	bad = ok
	bad.Shock = 1.0
	assert.Error(t, bad.validate())
	bad.Shock = -0.1
	assert.Error(t, bad.validate())
	bad.Shock = 0.99
	assert.NoError(t, bad.validate())
}

func TestRoundSpecID(t *testing.T) {
	assert.Equal(t, "5_uniform", RoundSpec{WordLength: 5, Mode: words.ModeUniform}.ID())
	assert.Equal(t, "4_frequency", RoundSpec{WordLength: 4, Mode: words.ModeFrequency}.ID())
}

func TestRoundIDRepetitionSuffix(t *testing.T) {
	spec := RoundSpec{WordLength: 6, Mode: words.ModeUniform}
	assert.Equal(t, "6_uniform", roundID(spec, 1, 1))
	assert.Equal(t, "6_uniform_r2", roundID(spec, 2, 3))
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournament.yaml")
	doc := `
name: weekly
words: data/words.csv
repetitions: 2
num_games: 50
max_guesses: 6
game_timeout: 10s
shock: 0.15
seed: 99
vocab_only: true
workers: 8
results_dir: out
rounds:
  - word_length: 5
    mode: uniform
  - word_length: 5
    mode: frequency
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	o, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "weekly", o.Name)
	assert.Equal(t, "data/words.csv", o.WordsPath)
	assert.Equal(t, 2, o.Repetitions)
	assert.Equal(t, 50, o.NumGames)
	assert.Equal(t, 10*time.Second, o.GameTimeout)
	assert.Equal(t, 0.15, o.Shock)
	assert.Equal(t, int64(99), o.Seed)
	assert.True(t, o.VocabOnly)
	assert.Equal(t, 8, o.Workers)
	assert.Equal(t, "out", o.ResultsDir)
	require.Len(t, o.Rounds, 2)
	assert.Equal(t, "5_frequency", o.Rounds[1].ID())
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: {not: a list}"), 0o644))
	_, err = LoadOptions(path)
	assert.Error(t, err)
}
