// Package store provides the optional result sink (C11, supplementing
// spec.md §5's silence on persistence): a thin Postgres-backed store that
// records solved schedules and their diagnostics, so repeated solves can
// be compared across runs. The engine itself owns no mutable state and
// never requires this package; cmd/rosterctl wires it in only behind
// --persist.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paiban/rotaengine/internal/config"
	"github.com/paiban/rotaengine/pkg/logger"

	_ "github.com/lib/pq"
)

// DB wraps a Postgres connection pool.
type DB struct {
	*sql.DB
	cfg *config.DatabaseConfig
}

// Open opens and pings a connection pool per cfg.
func Open(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("store: opening database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connection test failed: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("store: connected")

	return &DB{DB: db, cfg: cfg}, nil
}

// Close closes the pool.
func (db *DB) Close() error {
	if db.DB != nil {
		logger.Info().Msg("store: closing connection")
		return db.DB.Close()
	}
	return nil
}

// Health pings the connection.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Migrate creates the schedule_runs table if it doesn't exist. Idempotent;
// cmd/rosterctl runs it after the solve, before saving the result, when
// persistence is enabled.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	if err != nil {
		return fmt.Errorf("store: migration failed: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS schedule_runs (
	id               UUID PRIMARY KEY,
	seed             BIGINT NOT NULL,
	weeks            INT NOT NULL,
	score            DOUBLE PRECISION NOT NULL,
	vacant_slots     INT NOT NULL,
	rolling_violations INT NOT NULL,
	schedule_csv     TEXT NOT NULL,
	diagnostics_json TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
