// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the schema migration (idempotent, recorded in _migrations).
//   - Persisting runs as report JSON plus queryable per-game rows.
//
// Note: This file assumes SQLite but can be adapted for other backends.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/tournament"
)

// sqlite is a *sql.DB-backed Store implementation.
type sqlite struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if missing) a SQLite database file
// and applies the schema.
//
//   - Ensures the parent directory exists for relative DSNs (e.g. ./data/results.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func NewSQLiteStore(dsn string) (Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqlite{db: db}, nil
}

// migrations are applied once each, in order, recorded in _migrations.
var migrations = []struct {
	name string
	stmt string
}{
	{"001_runs", `
        CREATE TABLE IF NOT EXISTS runs (
            tournament_id TEXT PRIMARY KEY,
            run_id        TEXT NOT NULL,
            name          TEXT NOT NULL DEFAULT '',
            timestamp     TEXT NOT NULL,
            rounds        INTEGER NOT NULL,
            agents        INTEGER NOT NULL,
            incomplete    INTEGER NOT NULL DEFAULT 0,
            report        TEXT NOT NULL
        );`},
	{"002_games", `
        CREATE TABLE IF NOT EXISTS games (
            tournament_id TEXT NOT NULL REFERENCES runs(tournament_id) ON DELETE CASCADE,
            agent         TEXT NOT NULL,
            secret        TEXT NOT NULL,
            num_guesses   INTEGER NOT NULL,
            solved        INTEGER NOT NULL,
            outcome       TEXT NOT NULL,
            elapsed_ms    INTEGER NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_games_run ON games(tournament_id);`},
}

// migrate applies the embedded schema statements.
//
//   - Uses a _migrations table to track applied steps.
//   - Executes each step in order, inside its own transaction.
//   - Skips steps already applied.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("applied")
	}
	return nil
}

// SaveRun inserts or replaces the run row and its per-game rows.
func (s *sqlite) SaveRun(ctx context.Context, r *tournament.Report) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	info := infoOf(r)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT OR REPLACE INTO runs
            (tournament_id, run_id, name, timestamp, rounds, agents, incomplete, report)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.TournamentID, info.RunID, info.Name, info.Timestamp.UTC().Format(timeLayout),
		info.Rounds, info.Agents, boolInt(info.Incomplete), string(blob),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	// Replace semantics extend to the per-game rows.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM games WHERE tournament_id=?`, info.TournamentID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear games: %w", err)
	}
	for _, g := range r.Games {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO games
                (tournament_id, agent, secret, num_guesses, solved, outcome, elapsed_ms)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			info.TournamentID, g.Agent, g.Secret, g.NumGuesses,
			boolInt(g.Solved), string(g.Outcome), g.Elapsed.Milliseconds(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert game: %w", err)
		}
	}
	return tx.Commit()
}

// GetRun retrieves and decodes one stored report.
func (s *sqlite) GetRun(ctx context.Context, id string) (*tournament.Report, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE tournament_id=?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeReport(blob)
}

// ListRuns returns listing rows, newest first.
func (s *sqlite) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT tournament_id, run_id, name, timestamp, rounds, agents, incomplete
        FROM runs
        ORDER BY tournament_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info RunInfo
			ts   string
			inc  int
		)
		if err := rows.Scan(&info.TournamentID, &info.RunID, &info.Name,
			&ts, &info.Rounds, &info.Agents, &inc); err != nil {
			return nil, err
		}
		info.Timestamp, _ = time.Parse(timeLayout, ts)
		info.Incomplete = inc != 0
		out = append(out, info)
	}
	return out, rows.Err()
}

// LatestRun returns the run with the greatest tournament ID. The IDs
// are zero-padded timestamps, so lexical order is chronological.
func (s *sqlite) LatestRun(ctx context.Context) (*tournament.Report, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs ORDER BY tournament_id DESC LIMIT 1`).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeReport(blob)
}

// Close closes the underlying database handle.
func (s *sqlite) Close() error { return s.db.Close() }

const timeLayout = "2006-01-02T15:04:05.000Z"

func decodeReport(blob string) (*tournament.Report, error) {
	var r tournament.Report
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
