package filtering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/candidate-ranker/internal/model"
)

type locationsFilter struct {
	state
	locations []string
}

// NewLocations creates a filter that keeps candidates located in one of the
// accepted locations. The comparison is exact and case-sensitive; an empty
// list accepts everyone.
func NewLocations(locations []string) Filter {
	return &locationsFilter{locations: slices.Clone(locations)}
}

func (f *locationsFilter) Name() string { return "locations" }

func (f *locationsFilter) Validate() error {
	if slices.Contains(f.locations, "") {
		return fmt.Errorf("%w: locations must not contain empty entries", ErrInvalidFilter)
	}
	return nil
}

func (f *locationsFilter) Apply(_ context.Context, c model.Candidates) (model.Candidates, Step, error) {
	if len(f.locations) == 0 {
		out, step := retain(c, func(model.Candidate) bool { return true })
		return out, step, nil
	}

	out, step := retain(c, func(candidate model.Candidate) bool {
		return slices.Contains(f.locations, candidate.Location)
	})
	return out, step, nil
}

func (f *locationsFilter) Status() Status {
	details := map[string]string{}
	if len(f.locations) > 0 {
		details["locations"] = strings.Join(f.locations, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
