// Package sqlite stores candidates in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spigell/candidate-ranker/internal/storage/sqlstore"
)

//go:embed migrations/001_candidates.sql
var initialMigration string

var queries = sqlstore.Queries{
	List: `SELECT id, name, skills, years_of_experience, location, salary_expectation, resume_text
		FROM candidates ORDER BY seq`,
	Upsert: `INSERT INTO candidates (id, name, skills, years_of_experience, location, salary_expectation, resume_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			skills = excluded.skills,
			years_of_experience = excluded.years_of_experience,
			location = excluded.location,
			salary_expectation = excluded.salary_expectation,
			resume_text = excluded.resume_text`,
}

// Open opens or creates the database at the given path and applies the schema.
func Open(ctx context.Context, path string) (*sqlstore.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, initialMigration); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &sqlstore.Store{DB: db, Queries: queries}, nil
}
