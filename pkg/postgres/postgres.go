// Package postgres provides helpers for connecting to Postgres and
// applying schema migrations.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Option tunes the connection pool of a freshly opened database handle.
type Option func(*sqlx.DB)

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		db.SetConnMaxIdleTime(d)
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		db.SetConnMaxLifetime(d)
	}
}

func WithMaxIdleConns(n int) Option {
	return func(db *sqlx.DB) {
		db.SetMaxIdleConns(n)
	}
}

func WithMaxOpenConns(n int) Option {
	return func(db *sqlx.DB) {
		db.SetMaxOpenConns(n)
	}
}

// poolDefaults apply before any caller-provided options.
var poolDefaults = []Option{
	WithConnMaxIdleTime(5 * time.Minute),
	WithConnMaxLifetime(30 * time.Minute),
	WithMaxIdleConns(5),
	WithMaxOpenConns(25),
}

// New opens a pgx-backed sqlx handle, verifies the connection and
// configures the pool. Caller options override the defaults.
func New(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "postgres.New"

	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	for _, opt := range append(poolDefaults, opts...) {
		opt(db)
	}

	return db, nil
}
