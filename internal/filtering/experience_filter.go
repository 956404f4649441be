package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/candidate-ranker/internal/model"
)

type minimumExperienceFilter struct {
	state
	years int
}

// NewMinimumExperience creates a filter that drops candidates with fewer years of experience.
func NewMinimumExperience(years int) Filter {
	return &minimumExperienceFilter{years: years}
}

func (f *minimumExperienceFilter) Name() string { return "minimum_experience" }

func (f *minimumExperienceFilter) Validate() error {
	if f.years < 0 {
		return fmt.Errorf("%w: minimum experience must not be negative, got %d", ErrInvalidFilter, f.years)
	}
	return nil
}

func (f *minimumExperienceFilter) Apply(_ context.Context, c model.Candidates) (model.Candidates, Step, error) {
	out, step := retain(c, func(candidate model.Candidate) bool {
		return candidate.YearsOfExperience >= f.years
	})
	return out, step, nil
}

func (f *minimumExperienceFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_experience": strconv.Itoa(f.years)},
	}
}
