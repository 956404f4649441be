package filtering

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/spigell/candidate-ranker/internal/model"
)

type salaryCeilingFilter struct {
	state
	ceiling *float64
}

// NewSalaryCeiling creates a filter that drops candidates expecting more than
// the ceiling. Candidates without a stated expectation always pass, and so
// does everyone when no ceiling is set.
func NewSalaryCeiling(ceiling *float64) Filter {
	f := &salaryCeilingFilter{}
	if ceiling != nil {
		f.ceiling = model.Float(*ceiling)
	}
	return f
}

func (f *salaryCeilingFilter) Name() string { return "salary_ceiling" }

func (f *salaryCeilingFilter) Validate() error {
	if f.ceiling != nil && (math.IsNaN(*f.ceiling) || math.IsInf(*f.ceiling, 0)) {
		return fmt.Errorf("%w: salary ceiling must be a finite number", ErrInvalidFilter)
	}
	return nil
}

func (f *salaryCeilingFilter) Apply(_ context.Context, c model.Candidates) (model.Candidates, Step, error) {
	ceiling, ok := model.RecruiterFilters{SalaryMax: f.ceiling}.Ceiling()

	out, step := retain(c, func(candidate model.Candidate) bool {
		if !ok {
			return true
		}
		expectation, stated := candidate.Salary()
		return !stated || expectation <= ceiling
	})
	return out, step, nil
}

func (f *salaryCeilingFilter) Status() Status {
	details := map[string]string{}
	if f.ceiling != nil {
		details["salary_max"] = strconv.FormatFloat(*f.ceiling, 'f', -1, 64)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
