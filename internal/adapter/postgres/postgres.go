// Package postgres implements the progress store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain.ProgressRepository.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS current_progress (id TEXT PRIMARY KEY CHECK(id = 'current'), goal INTEGER NOT NULL CHECK(goal > 0), glasses_drunk INTEGER NOT NULL CHECK(glasses_drunk >= 0), last_update TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS daily_history (date TEXT PRIMARY KEY, goal INTEGER NOT NULL CHECK(goal > 0), glasses_drunk INTEGER NOT NULL CHECK(glasses_drunk >= 0), percentage DOUBLE PRECISION NOT NULL, motivation TEXT NOT NULL);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
