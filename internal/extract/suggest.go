package extract

import (
	"strings"

	"github.com/spigell/candidate-ranker/internal/model"
)

// SuggestFilters pre-fills recruiter filters from extracted requirements.
// Skills are left empty for the recruiter to pick.
func SuggestFilters(req model.RequirementSet, text string) model.RecruiterFilters {
	filters := model.RecruiterFilters{
		Skills:            []string{},
		MinimumExperience: req.MinimumExperience,
		Locations:         []string{},
	}

	if req.SalaryRange != nil && req.SalaryRange.Max > 0 {
		filters.SalaryMax = model.Float(req.SalaryRange.Max)
	}

	switch {
	case req.Location != "" && req.Location != RemoteLocation:
		filters.Locations = []string{req.Location}
	case strings.Contains(strings.ToLower(text), "remote"):
		filters.Locations = []string{RemoteLocation}
	}

	return filters
}
