package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hydration/internal/domain"
)

// Ensure the interface is met.
var _ domain.ProgressRepository = (*DB)(nil)

// LoadCurrent returns the single current-progress row, or nil if it
// has not been created yet.
func (d *DB) LoadCurrent(ctx context.Context) (*domain.CurrentProgress, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT goal, glasses_drunk, last_update FROM current_progress WHERE id='current';")

	var cur domain.CurrentProgress
	if err := row.Scan(&cur.Goal, &cur.GlassesDrunk, &cur.LastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cur, nil
}

// SaveCurrent overwrites the single current-progress row.
func (d *DB) SaveCurrent(ctx context.Context, goal, glasses int, lastUpdate time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO current_progress(id, goal, glasses_drunk, last_update) VALUES('current', $1, $2, $3)
		 ON CONFLICT(id) DO UPDATE SET goal=EXCLUDED.goal, glasses_drunk=EXCLUDED.glasses_drunk, last_update=EXCLUDED.last_update;`,
		goal, glasses, lastUpdate.UTC(),
	)
	return err
}

// LoadAllHistory returns every archived day, newest date first.
func (d *DB) LoadAllHistory(ctx context.Context) ([]domain.DailyEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT date, goal, glasses_drunk, percentage, motivation FROM daily_history ORDER BY date DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.DailyEntry
	for rows.Next() {
		var e domain.DailyEntry
		if err := rows.Scan(&e.Date, &e.Goal, &e.GlassesDrunk, &e.Percentage, &e.Motivation); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpsertHistory inserts the entry or overwrites all fields of the
// entry already stored for the same date.
func (d *DB) UpsertHistory(ctx context.Context, entry domain.DailyEntry) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO daily_history(date, goal, glasses_drunk, percentage, motivation) VALUES($1, $2, $3, $4, $5)
		 ON CONFLICT(date) DO UPDATE SET goal=EXCLUDED.goal, glasses_drunk=EXCLUDED.glasses_drunk, percentage=EXCLUDED.percentage, motivation=EXCLUDED.motivation;`,
		entry.Date, entry.Goal, entry.GlassesDrunk, entry.Percentage, entry.Motivation,
	)
	return err
}

// UpdateHistoryGlasses sets the glass count of an existing entry,
// recomputing percentage and motivation from the entry's stored goal.
// Returns domain.ErrNotFound if no entry exists for date.
func (d *DB) UpdateHistoryGlasses(ctx context.Context, date string, glasses int) (domain.DailyEntry, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT goal FROM daily_history WHERE date=$1;", date)

	var goal int
	if err := row.Scan(&goal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DailyEntry{}, domain.ErrNotFound
		}
		return domain.DailyEntry{}, err
	}

	entry := domain.NewDailyEntry(date, goal, glasses)
	_, err := d.sql.ExecContext(ctx,
		"UPDATE daily_history SET glasses_drunk=$1, percentage=$2, motivation=$3 WHERE date=$4;",
		entry.GlassesDrunk, entry.Percentage, entry.Motivation, date,
	)
	if err != nil {
		return domain.DailyEntry{}, err
	}
	return entry, nil
}
