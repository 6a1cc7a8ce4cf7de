package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"hydration/internal/domain"
)

// DefaultGoal is the goal used on first run when none is configured.
const DefaultGoal = 15

// ErrNotReady is returned by mutating operations before Start has run.
var ErrNotReady = errors.New("engine has not finished loading")

// Engine owns today's goal and glass count plus the in-memory mirror
// of the daily history. All durable state lives behind the injected
// repository; the mirror is updated only after the corresponding write
// has succeeded, so in-memory and durable state never diverge on a
// successful return.
//
// Day rollover is re-derived from the persisted record at the start of
// every mutation, not from the mirror, so two processes sharing a
// store converge on last-writer-wins without drifting past a day
// boundary.
type Engine struct {
	repo        domain.ProgressRepository
	defaultGoal int

	mu      sync.Mutex
	ready   bool
	goal    int
	glasses int
	history []domain.DailyEntry

	subs    map[int]func(current, goal int)
	nextSub int
}

// NewEngine creates an Engine backed by the given repository.
// defaultGoal is used only when no current-progress record exists yet;
// values below one fall back to DefaultGoal.
func NewEngine(repo domain.ProgressRepository, defaultGoal int) *Engine {
	if defaultGoal <= 0 {
		defaultGoal = DefaultGoal
	}
	return &Engine{
		repo:        repo,
		defaultGoal: defaultGoal,
		subs:        make(map[int]func(current, goal int)),
	}
}

// Start runs the once-only startup sequence: load history, load the
// current record, then either create a fresh record, archive a stale
// one and reset for the new day, or mirror the same-day record
// verbatim. The engine becomes ready even when storage fails; the
// error is returned so the caller can log it, and the mirror starts
// from the default goal with zero consumption.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.ready {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	if err := e.load(ctx); err != nil {
		e.becomeReady(e.defaultGoal, 0, nil)
		return err
	}
	return nil
}

func (e *Engine) load(ctx context.Context) error {
	history, err := e.repo.LoadAllHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	cur, err := e.repo.LoadCurrent(ctx)
	if err != nil {
		return fmt.Errorf("load current: %w", err)
	}

	now := time.Now()
	switch {
	case cur == nil:
		if err := e.repo.SaveCurrent(ctx, e.defaultGoal, 0, now); err != nil {
			return fmt.Errorf("create current: %w", err)
		}
		e.becomeReady(e.defaultGoal, 0, history)

	case domain.IsNewDay(now, cur.LastUpdate):
		entry := archiveEntry(*cur)
		if err := e.repo.UpsertHistory(ctx, entry); err != nil {
			return fmt.Errorf("archive previous day: %w", err)
		}
		if err := e.repo.SaveCurrent(ctx, cur.Goal, 0, now); err != nil {
			return fmt.Errorf("reset current: %w", err)
		}
		e.becomeReady(cur.Goal, 0, upsertEntry(history, entry))

	default:
		e.becomeReady(cur.Goal, cur.GlassesDrunk, history)
	}
	return nil
}

func (e *Engine) becomeReady(goal, glasses int, history []domain.DailyEntry) {
	e.mu.Lock()
	e.ready = true
	e.goal = goal
	e.glasses = glasses
	e.history = history
	e.mu.Unlock()
	e.notify()
}

// SetProgress sets today's glass count to target. Callers are expected
// to have clamped target to [0, goal]; overshoot is tolerated and
// persisted as-is. A rollover detected against the persisted record
// archives the previous day before the new value is written.
func (e *Engine) SetProgress(ctx context.Context, target int) error {
	if target < 0 {
		return domain.ErrInvalidGlasses
	}
	e.mu.Lock()
	if !e.ready {
		e.mu.Unlock()
		return ErrNotReady
	}
	goal := e.goal
	e.mu.Unlock()

	now := time.Now()
	if err := e.archiveIfRolledOver(ctx, now); err != nil {
		return err
	}
	if err := e.repo.SaveCurrent(ctx, goal, target, now); err != nil {
		return fmt.Errorf("save current: %w", err)
	}

	e.mu.Lock()
	e.glasses = target
	e.mu.Unlock()
	e.notify()
	return nil
}

// AddWater adds quantity glasses (one if quantity is not positive),
// clamped so the total never exceeds today's goal.
func (e *Engine) AddWater(ctx context.Context, quantity int) error {
	current, goal, err := e.snapshotReady()
	if err != nil {
		return err
	}
	if quantity <= 0 {
		quantity = 1
	}
	return e.SetProgress(ctx, min(current+quantity, goal))
}

// RemoveWater removes quantity glasses (one if quantity is not
// positive), clamped so the total never drops below zero.
func (e *Engine) RemoveWater(ctx context.Context, quantity int) error {
	current, _, err := e.snapshotReady()
	if err != nil {
		return err
	}
	if quantity <= 0 {
		quantity = 1
	}
	return e.SetProgress(ctx, max(current-quantity, 0))
}

// SetGoal changes the daily goal. On the same day the glass count is
// clamped down to the new goal; across a day boundary the previous day
// is archived and the count resets to zero.
func (e *Engine) SetGoal(ctx context.Context, newGoal int) error {
	if newGoal <= 0 {
		return domain.ErrInvalidGoal
	}
	e.mu.Lock()
	if !e.ready {
		e.mu.Unlock()
		return ErrNotReady
	}
	glasses := e.glasses
	e.mu.Unlock()

	now := time.Now()
	rolled, err := e.rolloverArchived(ctx, now)
	if err != nil {
		return err
	}
	newGlasses := min(glasses, newGoal)
	if rolled {
		newGlasses = 0
	}
	if err := e.repo.SaveCurrent(ctx, newGoal, newGlasses, now); err != nil {
		return fmt.Errorf("save current: %w", err)
	}

	e.mu.Lock()
	e.goal = newGoal
	e.glasses = newGlasses
	e.mu.Unlock()
	e.notify()
	return nil
}

// CorrectHistory sets the glass count of an existing history entry.
// The store recomputes percentage and motivation from the entry's own
// stored goal. Returns domain.ErrNotFound if no entry exists for date;
// a missing entry is never created implicitly.
func (e *Engine) CorrectHistory(ctx context.Context, date string, glasses int) error {
	if glasses < 0 {
		return domain.ErrInvalidGlasses
	}
	e.mu.Lock()
	if !e.ready {
		e.mu.Unlock()
		return ErrNotReady
	}
	e.mu.Unlock()

	entry, err := e.repo.UpdateHistoryGlasses(ctx, date, glasses)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.history = upsertEntry(e.history, entry)
	e.mu.Unlock()
	return nil
}

func (e *Engine) snapshotReady() (current, goal int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return 0, 0, ErrNotReady
	}
	return e.glasses, e.goal, nil
}

// Snapshot returns today's glass count and goal.
func (e *Engine) Snapshot() (current, goal int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.glasses, e.goal
}

// History returns a copy of the mirrored history, newest date first.
func (e *Engine) History() []domain.DailyEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.DailyEntry, len(e.history))
	copy(out, e.history)
	return out
}

// Subscribe registers fn to receive the snapshot. fn is invoked
// immediately with the current snapshot and again after every
// successful mutation. The returned function removes the
// subscription.
func (e *Engine) Subscribe(fn func(current, goal int)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	current, goal := e.glasses, e.goal
	e.mu.Unlock()

	fn(current, goal)
	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Engine) notify() {
	e.mu.Lock()
	current, goal := e.glasses, e.goal
	fns := make([]func(int, int), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(current, goal)
	}
}

// archiveIfRolledOver archives the persisted record when it belongs to
// a previous day, mirroring the new history entry as soon as the
// upsert has succeeded.
func (e *Engine) archiveIfRolledOver(ctx context.Context, now time.Time) error {
	_, err := e.rolloverArchived(ctx, now)
	return err
}

func (e *Engine) rolloverArchived(ctx context.Context, now time.Time) (bool, error) {
	persisted, err := e.repo.LoadCurrent(ctx)
	if err != nil {
		return false, fmt.Errorf("load current: %w", err)
	}
	if persisted == nil || !domain.IsNewDay(now, persisted.LastUpdate) {
		return false, nil
	}

	entry := archiveEntry(*persisted)
	if err := e.repo.UpsertHistory(ctx, entry); err != nil {
		return false, fmt.Errorf("archive previous day: %w", err)
	}
	e.mu.Lock()
	e.history = upsertEntry(e.history, entry)
	e.mu.Unlock()
	return true, nil
}

func archiveEntry(cur domain.CurrentProgress) domain.DailyEntry {
	return domain.NewDailyEntry(domain.DayKey(cur.LastUpdate), cur.Goal, cur.GlassesDrunk)
}

// upsertEntry replaces the entry for the same date or inserts a new
// one, keeping the slice sorted newest date first.
func upsertEntry(entries []domain.DailyEntry, entry domain.DailyEntry) []domain.DailyEntry {
	for i := range entries {
		if entries[i].Date == entry.Date {
			entries[i] = entry
			return entries
		}
	}
	entries = append(entries, entry)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}
