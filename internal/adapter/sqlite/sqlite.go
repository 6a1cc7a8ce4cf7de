// Package sqlite implements the progress store on an embedded SQLite
// database, so the service runs without any external infrastructure.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"hydration/internal/domain"
)

// DB wraps a *sql.DB and implements domain.ProgressRepository.
type DB struct {
	sql *sql.DB
}

// Ensure the interface is met.
var _ domain.ProgressRepository = (*DB)(nil)

// Open opens (or creates) the SQLite database at dbPath and runs
// migrations.
func Open(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	s, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := s.Exec(p); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	d := &DB{sql: s}
	if err := d.migrate(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory store for testing.
func OpenMemory() (*DB, error) {
	return Open(":memory:")
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS current_progress (id TEXT PRIMARY KEY CHECK(id = 'current'), goal INTEGER NOT NULL CHECK(goal > 0), glasses_drunk INTEGER NOT NULL CHECK(glasses_drunk >= 0), last_update TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS daily_history (date TEXT PRIMARY KEY, goal INTEGER NOT NULL CHECK(goal > 0), glasses_drunk INTEGER NOT NULL CHECK(glasses_drunk >= 0), percentage REAL NOT NULL, motivation TEXT NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadCurrent returns the single current-progress row, or nil if it
// has not been created yet.
func (d *DB) LoadCurrent(ctx context.Context) (*domain.CurrentProgress, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT goal, glasses_drunk, last_update FROM current_progress WHERE id='current';")

	var cur domain.CurrentProgress
	var lastUpdate string
	if err := row.Scan(&cur.Goal, &cur.GlassesDrunk, &lastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, lastUpdate)
	if err != nil {
		return nil, fmt.Errorf("parse last_update: %w", err)
	}
	cur.LastUpdate = ts
	return &cur, nil
}

// SaveCurrent overwrites the single current-progress row. The
// timestamp is stored as RFC 3339 text.
func (d *DB) SaveCurrent(ctx context.Context, goal, glasses int, lastUpdate time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO current_progress(id, goal, glasses_drunk, last_update) VALUES('current', ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET goal=excluded.goal, glasses_drunk=excluded.glasses_drunk, last_update=excluded.last_update`,
		goal, glasses, lastUpdate.Format(time.RFC3339Nano),
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
		`INSERT INTO daily_history(date, goal, glasses_drunk, percentage, motivation) VALUES(?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET goal=excluded.goal, glasses_drunk=excluded.glasses_drunk, percentage=excluded.percentage, motivation=excluded.motivation`,
		entry.Date, entry.Goal, entry.GlassesDrunk, entry.Percentage, entry.Motivation,
	)
	return err
}

// UpdateHistoryGlasses sets the glass count of an existing entry,
// recomputing percentage and motivation from the entry's stored goal.
// Returns domain.ErrNotFound if no entry exists for date.
func (d *DB) UpdateHistoryGlasses(ctx context.Context, date string, glasses int) (domain.DailyEntry, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT goal FROM daily_history WHERE date=?;", date)

	var goal int
	if err := row.Scan(&goal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DailyEntry{}, domain.ErrNotFound
		}
		return domain.DailyEntry{}, err
	}

	entry := domain.NewDailyEntry(date, goal, glasses)
	_, err := d.sql.ExecContext(ctx,
		"UPDATE daily_history SET glasses_drunk=?, percentage=?, motivation=? WHERE date=?;",
		entry.GlassesDrunk, entry.Percentage, entry.Motivation, date,
	)
	if err != nil {
		return domain.DailyEntry{}, err
	}
	return entry, nil
}
