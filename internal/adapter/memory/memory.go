// Package memory implements an in-memory repository for development
// and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"hydration/internal/domain"
)

// DB implements an in-memory progress store.
type DB struct {
	mu      sync.Mutex
	current *domain.CurrentProgress
	history map[string]domain.DailyEntry
}

// New creates a new in-memory store.
func New() *DB {
	return &DB{
		history: make(map[string]domain.DailyEntry),
	}
}

// Ensure interfaces are met.
var _ domain.ProgressRepository = (*DB)(nil)

// LoadCurrent returns a copy of the current-progress record, or nil if
// none exists.
func (db *DB) LoadCurrent(ctx context.Context) (*domain.CurrentProgress, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.current == nil {
		return nil, nil
	}
	cur := *db.current
	return &cur, nil
}

// SaveCurrent overwrites the current-progress record.
func (db *DB) SaveCurrent(ctx context.Context, goal, glasses int, lastUpdate time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.current = &domain.CurrentProgress{
		Goal:         goal,
		GlassesDrunk: glasses,
		LastUpdate:   lastUpdate,
	}
	return nil
}

// LoadAllHistory returns all history entries, newest date first.
func (db *DB) LoadAllHistory(ctx context.Context) ([]domain.DailyEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.DailyEntry, 0, len(db.history))
	for _, e := range db.history {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

// UpsertHistory inserts or overwrites the entry for its date.
func (db *DB) UpsertHistory(ctx context.Context, entry domain.DailyEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.history[entry.Date] = entry
	return nil
}

// UpdateHistoryGlasses sets the glass count for an existing entry,
// recomputing the derived fields from the entry's stored goal.
func (db *DB) UpdateHistoryGlasses(ctx context.Context, date string, glasses int) (domain.DailyEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, ok := db.history[date]
	if !ok {
		return domain.DailyEntry{}, domain.ErrNotFound
	}
	updated := domain.NewDailyEntry(existing.Date, existing.Goal, glasses)
	db.history[date] = updated
	return updated, nil
}
