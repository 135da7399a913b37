// internal/tournament/options.go
//
// Tournament options: round configurations, budgets, and the YAML
// options file consumed by `run --config`. Flags override file values,
// so zero values here mean "use the default".

package tournament

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/words"
)

// RoundSpec is one (word length, probability mode) configuration.
type RoundSpec struct {
	WordLength int    `yaml:"word_length" json:"word_length"`
	Mode       string `yaml:"mode" json:"mode"`
}

// ID is the round's identity within a repetition, e.g. "5_uniform".
func (r RoundSpec) ID() string { return fmt.Sprintf("%d_%s", r.WordLength, r.Mode) }

// CanonicalRounds are the six official configurations:
// {4,5,6} letters x {uniform,frequency}.
var CanonicalRounds = []RoundSpec{
	{WordLength: 4, Mode: words.ModeUniform},
	{WordLength: 4, Mode: words.ModeFrequency},
	{WordLength: 5, Mode: words.ModeUniform},
	{WordLength: 5, Mode: words.ModeFrequency},
	{WordLength: 6, Mode: words.ModeUniform},
	{WordLength: 6, Mode: words.ModeFrequency},
}

// Options parameterize one tournament run.
type Options struct {
	Name        string        // optional run label
	WordsPath   string        // corpus path; "" = embedded
	Rounds      []RoundSpec   // nil = CanonicalRounds
	Repetitions int           // independent re-runs of all rounds
	NumGames    int           // secrets per round; 0 = whole vocabulary
	MaxGuesses  int           // turns per game
	GameTimeout time.Duration // compute budget per episode
	Shock       float64       // noise scale for frequency rounds; 0 = off
	Seed        int64         // 0 = fresh runtime seed
	VocabOnly   bool          // restrict guesses to the vocabulary
	Workers     int           // episode batch width; 0 = auto
	ResultsDir  string        // JSON report destination
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if len(o.Rounds) == 0 {
		o.Rounds = CanonicalRounds
	}
	if o.Repetitions <= 0 {
		o.Repetitions = 1
	}
	if o.MaxGuesses <= 0 {
		o.MaxGuesses = 6
	}
	if o.GameTimeout <= 0 {
		o.GameTimeout = 5 * time.Second
	}
	if o.ResultsDir == "" {
		o.ResultsDir = "results"
	}
	return o
}

// validate rejects structurally bad options before any round starts.
func (o Options) validate() error {
	for _, r := range o.Rounds {
		if r.WordLength < 2 {
			return fmt.Errorf("tournament: bad word length %d in round %s", r.WordLength, r.ID())
		}
		if r.Mode != words.ModeUniform && r.Mode != words.ModeFrequency {
			return fmt.Errorf("tournament: bad mode %q in round %s", r.Mode, r.ID())
		}
	}
	if o.Shock < 0 || o.Shock >= 1 {
		return fmt.Errorf("tournament: shock must be in [0,1), got %g", o.Shock)
	}
	return nil
}

// optionsFile is the YAML schema of `run --config`. Durations are
// strings ("10s", "1m30s") since yaml.v3 has no native duration form.
type optionsFile struct {
	Name        string      `yaml:"name"`
	Words       string      `yaml:"words"`
	Rounds      []RoundSpec `yaml:"rounds"`
	Repetitions int         `yaml:"repetitions"`
	NumGames    int         `yaml:"num_games"`
	MaxGuesses  int         `yaml:"max_guesses"`
	GameTimeout string      `yaml:"game_timeout"`
	Shock       float64     `yaml:"shock"`
	Seed        int64       `yaml:"seed"`
	VocabOnly   bool        `yaml:"vocab_only"`
	Workers     int         `yaml:"workers"`
	ResultsDir  string      `yaml:"results_dir"`
}

// LoadOptions reads a YAML options file.
func LoadOptions(path string) (Options, error) {
	var o Options
	data, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("tournament: read options %s: %w", path, err)
	}
	var f optionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return o, fmt.Errorf("tournament: parse options %s: %w", path, err)
	}
	o = Options{
		Name:        f.Name,
		WordsPath:   f.Words,
		Rounds:      f.Rounds,
		Repetitions: f.Repetitions,
		NumGames:    f.NumGames,
		MaxGuesses:  f.MaxGuesses,
		Shock:       f.Shock,
		Seed:        f.Seed,
		VocabOnly:   f.VocabOnly,
		Workers:     f.Workers,
		ResultsDir:  f.ResultsDir,
	}
	if f.GameTimeout != "" {
		d, err := time.ParseDuration(f.GameTimeout)
		if err != nil {
			return o, fmt.Errorf("tournament: bad game_timeout in %s: %w", path, err)
		}
		o.GameTimeout = d
	}
	return o, nil
}
