package model

// SalaryRange is a job salary band in dollars. Min never exceeds Max.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RequirementSet is the structured interpretation of a job description.
type RequirementSet struct {
	RequiredSkills    []string     `json:"requiredSkills"`
	PreferredSkills   []string     `json:"preferredSkills"`
	MinimumExperience int          `json:"minimumExperience"`
	Location          string       `json:"location"`
	SalaryRange       *SalaryRange `json:"salaryRange,omitempty"`
}

// RecruiterFilters are hard constraints supplied by the caller.
type RecruiterFilters struct {
	// Skills is advisory unless skill enforcement is switched on in the ranking config.
	Skills            []string `json:"skills,omitempty" jsonschema:"Skills the recruiter cares about; advisory by default"`
	MinimumExperience int      `json:"minimumExperience,omitempty" jsonschema:"Minimum years of experience"`
	Locations         []string `json:"locations,omitempty" jsonschema:"Accepted candidate locations; empty accepts any"`
	SalaryMax         *float64 `json:"salaryMax,omitempty" jsonschema:"Maximum salary budget in dollars"`
}

// Ceiling returns the salary ceiling and whether it is set.
func (f RecruiterFilters) Ceiling() (float64, bool) {
	return positive(f.SalaryMax)
}

// ScoreBreakdown holds the unweighted sub-scores behind FinalScore, each in [0,1].
type ScoreBreakdown struct {
	RequiredSkills  float64 `json:"requiredSkills"`
	PreferredSkills float64 `json:"preferredSkills"`
	Experience      float64 `json:"experience"`
	Location        float64 `json:"location"`
	Salary          float64 `json:"salary"`
}

// RankedCandidate is a candidate augmented with scoring metadata.
type RankedCandidate struct {
	Candidate
	FinalScore    float64        `json:"finalScore"`
	MatchedSkills []string       `json:"matchedSkills"`
	MissingSkills []string       `json:"missingSkills"`
	ExperienceFit bool           `json:"experienceFit"`
	Breakdown     ScoreBreakdown `json:"scoreBreakdown"`
}

// RankingResult is the outcome of a single ranking request.
type RankingResult struct {
	RankedCandidates []RankedCandidate `json:"rankedCandidates"`
	TotalCandidates  int               `json:"totalCandidates"`
	FilteredCount    int               `json:"filteredCount"`
}

// RankRequest is the input of the ranking operation. RecruiterFilters and
// Candidates are pointer/slice typed so that a missing field can be told
// apart from an empty one.
type RankRequest struct {
	JobDescriptionText string            `json:"jobDescriptionText" validate:"required" jsonschema:"Free-text job description"`
	RecruiterFilters   *RecruiterFilters `json:"recruiterFilters" validate:"required" jsonschema:"Hard constraints applied before scoring"`
	Candidates         []Candidate       `json:"candidates" validate:"required" jsonschema:"Candidate pool to rank"`
}
