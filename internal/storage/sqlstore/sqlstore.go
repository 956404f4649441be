// Package sqlstore keeps candidate pools in a SQL table. The sqlite and
// postgres stores share it and differ only in their queries.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spigell/candidate-ranker/internal/model"
)

// Queries are the dialect-specific statements. List must select id, name,
// skills, years_of_experience, location, salary_expectation and resume_text
// in insertion order; Upsert takes the same columns as arguments.
type Queries struct {
	List   string
	Upsert string
}

// Store is a candidate store backed by database/sql.
type Store struct {
	DB      *sql.DB
	Queries Queries
}

// List returns every stored candidate in insertion order.
func (s *Store) List(ctx context.Context) ([]model.Candidate, error) {
	rows, err := s.DB.QueryContext(ctx, s.Queries.List)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]model.Candidate, 0)
	for rows.Next() {
		var (
			c      model.Candidate
			skills []byte
			salary sql.NullFloat64
		)
		if err := rows.Scan(&c.ID, &c.Name, &skills, &c.YearsOfExperience, &c.Location, &salary, &c.ResumeText); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		if err := json.Unmarshal(skills, &c.Skills); err != nil {
			return nil, fmt.Errorf("decode skills of candidate %q: %w", c.ID, err)
		}
		if salary.Valid {
			c.SalaryExpectation = model.Float(salary.Float64)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	return candidates, nil
}

// Save inserts or updates candidates by ID in a single transaction.
func (s *Store) Save(ctx context.Context, candidates []model.Candidate) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(tx.Rollback()))
		}
	}()

	for _, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("candidate %q has no id", c.Name)
		}

		skills, err := json.Marshal(nonNil(c.Skills))
		if err != nil {
			return fmt.Errorf("encode skills of candidate %q: %w", c.ID, err)
		}

		var salary sql.NullFloat64
		if c.SalaryExpectation != nil {
			salary = sql.NullFloat64{Float64: *c.SalaryExpectation, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, s.Queries.Upsert,
			c.ID, c.Name, skills, c.YearsOfExperience, c.Location, salary, c.ResumeText,
		); err != nil {
			return fmt.Errorf("save candidate %q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit candidates: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

func nonNil(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
