// Package scoring computes how well a candidate matches a requirement set.
package scoring

import (
	"math"
	"strings"

	"github.com/spigell/candidate-ranker/internal/model"
)

const (
	// neutral is used when one side of a comparison is unknown.
	neutral = 0.5
	remote  = "remote"
)

type breakdown = model.ScoreBreakdown

// Engine scores candidates with a fixed set of weights. It is safe for concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine returns an engine using w, or the default weights when w is zero.
// Callers are expected to Validate custom weights beforehand.
func NewEngine(w Weights) *Engine {
	if w.IsZero() {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Weights returns the weights in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score builds the ranked record for a candidate. It never fails: missing
// optional data scores neutrally.
func (e *Engine) Score(c model.Candidate, req model.RequirementSet) model.RankedCandidate {
	requiredHits, missing := partition(c, req.RequiredSkills)
	preferredHits, _ := partition(c, req.PreferredSkills)

	b := breakdown{
		RequiredSkills:  ratio(len(requiredHits), len(req.RequiredSkills)),
		PreferredSkills: ratio(len(preferredHits), len(req.PreferredSkills)),
		Experience:      experienceScore(c.YearsOfExperience, req.MinimumExperience),
		Location:        locationScore(req.Location, c.Location),
		Salary:          salaryScore(c, req.SalaryRange),
	}

	return model.RankedCandidate{
		Candidate:     c,
		FinalScore:    clamp01(e.weights.combine(b)),
		MatchedSkills: matchedSkills(c, requiredHits, preferredHits),
		MissingSkills: missing,
		ExperienceFit: c.YearsOfExperience >= max(req.MinimumExperience, 0),
		Breakdown:     b,
	}
}

var defaultEngine = NewEngine(DefaultWeights())

// Score scores a candidate with the default weights.
func Score(c model.Candidate, req model.RequirementSet) model.RankedCandidate {
	return defaultEngine.Score(c, req)
}

// partition splits skills into those the candidate has and those it lacks,
// keeping the requirement order.
func partition(c model.Candidate, skills []string) (hits, misses []string) {
	hits = make([]string, 0, len(skills))
	misses = make([]string, 0)
	for _, skill := range skills {
		if c.HasSkill(skill) {
			hits = append(hits, skill)
		} else {
			misses = append(misses, skill)
		}
	}
	return hits, misses
}

// matchedSkills returns the candidate's own skills, in its own casing and
// order, that satisfied a required or preferred skill.
func matchedSkills(c model.Candidate, hits ...[]string) []string {
	wanted := make(map[string]struct{})
	for _, group := range hits {
		for _, skill := range group {
			wanted[strings.ToLower(skill)] = struct{}{}
		}
	}

	matched := make([]string, 0, len(wanted))
	for _, skill := range c.Skills {
		if _, ok := wanted[strings.ToLower(skill)]; ok {
			matched = append(matched, skill)
		}
	}
	return matched
}

func ratio(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func experienceScore(years, minimum int) float64 {
	if minimum <= 0 {
		return 1
	}
	return clamp01(float64(years) / float64(max(1, minimum)))
}

func locationScore(job, candidate string) float64 {
	job = strings.TrimSpace(job)
	candidate = strings.TrimSpace(candidate)

	switch {
	case strings.EqualFold(job, remote) || strings.EqualFold(candidate, remote):
		return 1
	case job == "" || candidate == "":
		return neutral
	case strings.EqualFold(job, candidate):
		return 1
	default:
		return 0
	}
}

func salaryScore(c model.Candidate, band *model.SalaryRange) float64 {
	expectation, ok := c.Salary()
	if !ok || band == nil {
		return neutral
	}

	switch {
	case expectation > band.Max:
		return clamp01(1 - (expectation-band.Max)/max(1, band.Max))
	case expectation < band.Min:
		return clamp01(expectation / max(1, band.Min))
	default:
		return 1
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
