package scoring

import (
	"errors"
	"fmt"
	"math"
)

const weightTolerance = 0.001

// Weights sets how much each sub-score contributes to the final score.
type Weights struct {
	RequiredSkills  float64 `mapstructure:"required-skills" json:"requiredSkills"`
	PreferredSkills float64 `mapstructure:"preferred-skills" json:"preferredSkills"`
	Experience      float64 `mapstructure:"experience" json:"experience"`
	Location        float64 `mapstructure:"location" json:"location"`
	Salary          float64 `mapstructure:"salary" json:"salary"`
}

// DefaultWeights returns the stock weighting.
func DefaultWeights() Weights {
	return Weights{
		RequiredSkills:  0.50,
		PreferredSkills: 0.12,
		Experience:      0.20,
		Location:        0.12,
		Salary:          0.06,
	}
}

// IsZero reports whether no weight was configured at all.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Validate rejects negative weights and weights that do not add up to one.
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"required-skills", w.RequiredSkills},
		{"preferred-skills", w.PreferredSkills},
		{"experience", w.Experience},
		{"location", w.Location},
		{"salary", w.Salary},
	}

	var errs []error
	sum := 0.0
	for _, n := range named {
		if n.value < 0 || math.IsNaN(n.value) {
			errs = append(errs, fmt.Errorf("weight %s must not be negative, got %v", n.name, n.value))
			continue
		}
		sum += n.value
	}

	if len(errs) == 0 && math.Abs(sum-1) > weightTolerance {
		errs = append(errs, fmt.Errorf("weights must sum to 1, got %.3f", sum))
	}

	return errors.Join(errs...)
}

func (w Weights) combine(b breakdown) float64 {
	return w.RequiredSkills*b.RequiredSkills +
		w.PreferredSkills*b.PreferredSkills +
		w.Experience*b.Experience +
		w.Location*b.Location +
		w.Salary*b.Salary
}
