// internal/tournament/report.go
//
// The structured record a tournament run emits: configuration, per-round
// per-agent statistics, the leaderboard, and the raw game results. The
// JSON shape is the contract with reporting/visualization consumers.

package tournament

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/runner"
)

// Report is the complete output of one tournament run.
type Report struct {
	TournamentID string             `json:"tournament_id"`
	RunID        string             `json:"run_id"`
	Timestamp    time.Time          `json:"timestamp"`
	Incomplete   bool               `json:"incomplete,omitempty"`
	Config       ReportConfig       `json:"config"`
	Rounds       []RoundSummary     `json:"rounds"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
	Games        []runner.Result    `json:"games,omitempty"`
}

// ReportConfig echoes the parameters the run was launched with.
type ReportConfig struct {
	Name        string      `json:"name,omitempty"`
	MasterSeed  int64       `json:"master_seed"`
	NumGames    int         `json:"num_games"`
	Repetitions int         `json:"repetitions"`
	ShockScale  float64     `json:"shock_scale"`
	GameTimeout float64     `json:"game_timeout_seconds"`
	MaxGuesses  int         `json:"max_guesses"`
	VocabOnly   bool        `json:"vocab_only"`
	Rounds      []RoundSpec `json:"rounds"`
}

func (o *Orchestrator) reportConfig(masterSeed int64) ReportConfig {
	return ReportConfig{
		Name:        o.opts.Name,
		MasterSeed:  masterSeed,
		NumGames:    o.opts.NumGames,
		Repetitions: o.opts.Repetitions,
		ShockScale:  o.opts.Shock,
		GameTimeout: o.opts.GameTimeout.Seconds(),
		MaxGuesses:  o.opts.MaxGuesses,
		VocabOnly:   o.opts.VocabOnly,
		Rounds:      o.opts.Rounds,
	}
}

// WriteJSON persists the report under dir: one file per run plus a
// "latest.json" copy that dashboards read by default.
func (r *Report) WriteJSON(dir string) (string, error) {
	runDir := filepath.Join(dir, "runs", r.TournamentID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("report: mkdir %s: %w", runDir, err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal: %w", err)
	}
	path := filepath.Join(runDir, "tournament_results.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	latest := filepath.Join(dir, "latest.json")
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", latest, err)
	}
	return path, nil
}
