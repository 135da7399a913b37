// internal/store/store.go
//
// Persistence interface for finished tournament runs.
// Implementations may be backed by memory (development, tests) or
// SQLite (the `run --db` and `serve` commands).
//
// A run is stored whole: the report JSON is the source of truth, and
// listing metadata is derived from it at save time.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/tournament"
)

// ErrNotFound is returned when no run matches the requested ID.
var ErrNotFound = errors.New("store: run not found")

// RunInfo is the listing row for one stored run.
type RunInfo struct {
	TournamentID string    `json:"tournament_id"`
	RunID        string    `json:"run_id"`
	Name         string    `json:"name,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Rounds       int       `json:"rounds"`
	Agents       int       `json:"agents"`
	Incomplete   bool      `json:"incomplete,omitempty"`
}

// Store defines the persistence interface for tournament runs.
type Store interface {
	// SaveRun persists a finished report, replacing any run with the
	// same tournament ID.
	SaveRun(ctx context.Context, r *tournament.Report) error

	// GetRun retrieves a run by tournament ID.
	// Returns ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, id string) (*tournament.Report, error)

	// ListRuns returns metadata for all stored runs, newest first.
	ListRuns(ctx context.Context) ([]RunInfo, error)

	// LatestRun returns the most recently stored run, or ErrNotFound
	// when the store is empty.
	LatestRun(ctx context.Context) (*tournament.Report, error)

	// Close releases any underlying resources.
	Close() error
}

// infoOf derives the listing row from a report.
func infoOf(r *tournament.Report) RunInfo {
	return RunInfo{
		TournamentID: r.TournamentID,
		RunID:        r.RunID,
		Name:         r.Config.Name,
		Timestamp:    r.Timestamp,
		Rounds:       len(r.Rounds),
		Agents:       len(r.Leaderboard),
		Incomplete:   r.Incomplete,
	}
}
