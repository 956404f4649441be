package filtering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/candidate-ranker/internal/model"
)

const (
	SkillsName = "skills"

	// SkillsAdvisoryReason explains why the skills step is off by default.
	SkillsAdvisoryReason = "recruiter skills are advisory"
	// DisabledReason is reported for steps switched off through Options.Disabled.
	DisabledReason = "disabled by configuration"
)

type skillsFilter struct {
	state
	skills []string
}

// NewSkills creates a filter that keeps candidates listing every recruiter
// skill, compared case-insensitively.
func NewSkills(skills []string) Filter {
	return &skillsFilter{skills: slices.Clone(skills)}
}

func (f *skillsFilter) Name() string { return SkillsName }

func (f *skillsFilter) Validate() error {
	for _, skill := range f.skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("%w: skills must not contain blank entries", ErrInvalidFilter)
		}
	}
	return nil
}

func (f *skillsFilter) Apply(_ context.Context, c model.Candidates) (model.Candidates, Step, error) {
	out, step := retain(c, func(candidate model.Candidate) bool {
		for _, skill := range f.skills {
			if !candidate.HasSkill(skill) {
				return false
			}
		}
		return true
	})
	return out, step, nil
}

func (f *skillsFilter) Status() Status {
	details := map[string]string{}
	if len(f.skills) > 0 {
		details["skills"] = strings.Join(f.skills, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
