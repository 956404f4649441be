// Package filtering applies recruiter hard constraints to a candidate pool.
package filtering

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/model"
)

// ErrInvalidFilter marks recruiter filter values that no step can apply.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter represents a single hard-constraint step applied to candidates.
// Apply never mutates its input and keeps the relative order of survivors.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, c model.Candidates) (model.Candidates, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Options tune which steps New enables.
type Options struct {
	// EnforceSkills turns the recruiter skill list into a hard constraint.
	EnforceSkills bool
	// Disabled names steps that are switched off entirely.
	Disabled []string
}

// New builds the filtering steps for the recruiter filters in their fixed order.
func New(filters model.RecruiterFilters, opts Options) []Filter {
	steps := []Filter{
		NewMinimumExperience(filters.MinimumExperience),
		NewLocations(filters.Locations),
		NewSalaryCeiling(filters.SalaryMax),
		NewSkills(filters.Skills),
	}

	if !opts.EnforceSkills {
		DisableByName(steps, SkillsName, SkillsAdvisoryReason)
	}
	for _, name := range opts.Disabled {
		DisableByName(steps, name, DisabledReason)
	}

	return steps
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the surviving candidates.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, c model.Candidates) (model.Candidates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := Validate(steps); err != nil {
		return nil, err
	}

	return run(ctx, logger, steps, c)
}

// Validate checks the configuration of every enabled step.
func Validate(steps []Filter) error {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return nil
}

func run(ctx context.Context, logger *zap.Logger, steps []Filter, c model.Candidates) (model.Candidates, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}

// Apply filters candidates with the default steps. It is the pure form of
// Run: no logging, no cancellation and no validation.
func Apply(candidates []model.Candidate, filters model.RecruiterFilters) []model.Candidate {
	out, err := run(context.Background(), zap.NewNop(), New(filters, Options{}), candidates)
	if err != nil {
		// Built-in steps never fail.
		panic(err)
	}
	return out
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// retain copies the candidates accepted by keep into a fresh slice.
func retain(c model.Candidates, keep func(model.Candidate) bool) (model.Candidates, Step) {
	out := make(model.Candidates, 0, c.Len())
	for _, candidate := range c {
		if keep(candidate) {
			out = append(out, candidate)
		}
	}
	return out, Step{Initial: c.Len(), Dropped: c.Len() - out.Len(), Left: out.Len()}
}
