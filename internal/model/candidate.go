package model

import "strings"

// Candidate is a person available for matching. Values are treated as immutable:
// the ranking pipeline only produces derived records.
type Candidate struct {
	ID                string   `json:"id" jsonschema:"Stable candidate identifier"`
	Name              string   `json:"name" jsonschema:"Display name"`
	Skills            []string `json:"skills" jsonschema:"Candidate skills, matched case-insensitively"`
	YearsOfExperience int      `json:"yearsOfExperience" jsonschema:"Years of professional experience"`
	Location          string   `json:"location" jsonschema:"Candidate location"`
	SalaryExpectation *float64 `json:"salaryExpectation,omitempty" jsonschema:"Expected yearly salary in dollars"`
	ResumeText        string   `json:"resumeText" jsonschema:"Free-form resume text"`
}

// Salary returns the salary expectation and whether it is stated.
// Zero or negative expectations count as not stated.
func (c Candidate) Salary() (float64, bool) {
	return positive(c.SalaryExpectation)
}

// HasSkill reports whether the candidate lists the skill, ignoring case.
func (c Candidate) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// Candidates is an ordered candidate pool.
type Candidates []Candidate

func (c Candidates) Len() int {
	return len(c)
}

func (c Candidates) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, candidate := range c {
		ids = append(ids, candidate.ID)
	}
	return ids
}

// Float returns a pointer to v. Handy for optional salary fields.
func Float(v float64) *float64 {
	return &v
}

func positive(v *float64) (float64, bool) {
	if v == nil || *v <= 0 {
		return 0, false
	}
	return *v, true
}
