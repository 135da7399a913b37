// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used when durability is not
// required, primarily in development and tests.
//
// Characteristics:
//   - Stores reports keyed by tournament ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/tournament"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex
	runs map[string]*tournament.Report // keyed by TournamentID
	// insertion order, oldest first; re-saving an ID keeps its slot
	order []string
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[string]*tournament.Report)}
}

// SaveRun adds or replaces the run in the map.
func (m *memory) SaveRun(ctx context.Context, r *tournament.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[r.TournamentID]; !exists {
		m.order = append(m.order, r.TournamentID)
	}
	m.runs[r.TournamentID] = r
	return nil
}

// GetRun looks up a run by tournament ID.
func (m *memory) GetRun(ctx context.Context, id string) (*tournament.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

// ListRuns returns listing rows, newest first.
func (m *memory) ListRuns(ctx context.Context) ([]RunInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RunInfo, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, infoOf(m.runs[m.order[i]]))
	}
	return out, nil
}

// LatestRun returns the most recently saved run.
func (m *memory) LatestRun(ctx context.Context) (*tournament.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return nil, ErrNotFound
	}
	return m.runs[m.order[len(m.order)-1]], nil
}

// Close is a no-op for the in-memory store.
func (m *memory) Close() error { return nil }
