package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the engine and the storage adapters.
var (
	// ErrNotFound is returned when a history entry does not exist for
	// the requested date.
	ErrNotFound = errors.New("history entry not found")
	// ErrInvalidGoal is returned for goals that are not positive.
	ErrInvalidGoal = errors.New("goal must be greater than zero")
	// ErrInvalidGlasses is returned for negative glass counts.
	ErrInvalidGlasses = errors.New("glasses must not be negative")
)

// CurrentProgress is the single mutable record tracking today's intake.
// LastUpdate is only ever used for day-boundary comparison.
type CurrentProgress struct {
	Goal         int       `json:"goal"`
	GlassesDrunk int       `json:"glassesDrunk"`
	LastUpdate   time.Time `json:"lastUpdate"`
}

// DailyEntry is one archived day of progress, keyed by its local
// calendar date. Percentage and Motivation are derived from Goal and
// GlassesDrunk and are never set independently.
type DailyEntry struct {
	Date         string  `json:"date"`
	Goal         int     `json:"goal"`
	GlassesDrunk int     `json:"glassesDrunk"`
	Percentage   float64 `json:"percentage"`
	Motivation   string  `json:"motivation"`
}

// NewDailyEntry builds a DailyEntry with Percentage and Motivation
// derived from goal and glasses.
func NewDailyEntry(date string, goal, glasses int) DailyEntry {
	pct := float64(glasses) / float64(goal) * 100
	return DailyEntry{
		Date:         date,
		Goal:         goal,
		GlassesDrunk: glasses,
		Percentage:   pct,
		Motivation:   MotivationMessage(pct),
	}
}

// ProgressRepository is the port for progress persistence. It stores
// exactly one current-progress record and one history entry per local
// calendar date.
type ProgressRepository interface {
	// LoadCurrent returns the current-progress record, or nil if none
	// has been persisted yet.
	LoadCurrent(ctx context.Context) (*CurrentProgress, error)
	// SaveCurrent overwrites the current-progress record.
	SaveCurrent(ctx context.Context, goal, glasses int, lastUpdate time.Time) error
	// LoadAllHistory returns every history entry, newest date first.
	LoadAllHistory(ctx context.Context) ([]DailyEntry, error)
	// UpsertHistory inserts the entry, overwriting any entry already
	// stored for the same date.
	UpsertHistory(ctx context.Context, entry DailyEntry) error
	// UpdateHistoryGlasses sets the glass count for an existing entry,
	// recomputing Percentage and Motivation from the entry's stored
	// goal, and returns the updated entry. Returns ErrNotFound if no
	// entry exists for date.
	UpdateHistoryGlasses(ctx context.Context, date string, glasses int) (DailyEntry, error)
}
