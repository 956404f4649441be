// Package postgres stores candidates in PostgreSQL through the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/spigell/candidate-ranker/internal/storage/sqlstore"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var queries = sqlstore.Queries{
	List: `SELECT id, name, skills, years_of_experience, location, salary_expectation, resume_text
		FROM candidates ORDER BY seq`,
	Upsert: `INSERT INTO candidates (id, name, skills, years_of_experience, location, salary_expectation, resume_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			skills = EXCLUDED.skills,
			years_of_experience = EXCLUDED.years_of_experience,
			location = EXCLUDED.location,
			salary_expectation = EXCLUDED.salary_expectation,
			resume_text = EXCLUDED.resume_text,
			updated_at = now()`,
}

// Options controls database pool and connectivity behavior.
type Options struct {
	MaxOpenConns    int           `mapstructure:"max-open-conns"`
	MaxIdleConns    int           `mapstructure:"max-idle-conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn-max-lifetime"`
	PingTimeout     time.Duration `mapstructure:"ping-timeout"`
}

// DefaultOptions returns defaults for long-running server processes.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     5 * time.Second,
	}
}

var openDB = sql.Open

// Connect opens a *sql.DB for the DSN and verifies connectivity.
func Connect(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	db, err := openDB("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applyOptions(db, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies embedded SQL migrations via goose.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// New wraps an open database as a candidate store.
func New(db *sql.DB) *sqlstore.Store {
	return &sqlstore.Store{DB: db, Queries: queries}
}

// Open connects, migrates and returns the store.
func Open(ctx context.Context, dsn string, opts Options) (*sqlstore.Store, error) {
	db, err := Connect(ctx, dsn, opts)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return New(db), nil
}

func applyOptions(db *sql.DB, opts Options) {
	defaults := DefaultOptions()
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = defaults.MaxOpenConns
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = defaults.MaxIdleConns
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = defaults.ConnMaxLifetime
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
}
