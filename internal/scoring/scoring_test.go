package scoring

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/candidate-ranker/internal/model"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestScoreComposite(t *testing.T) {
	t.Parallel()

	candidate := model.Candidate{
		ID:                "c1",
		Skills:            []string{"react", "Go", "Docker"},
		YearsOfExperience: 5,
		Location:          "Austin",
		SalaryExpectation: model.Float(120000),
	}
	req := model.RequirementSet{
		RequiredSkills:    []string{"React", "TypeScript"},
		PreferredSkills:   []string{"Docker", "AWS", "Redis", "Jest"},
		MinimumExperience: 3,
		Location:          "Remote",
		SalaryRange:       &model.SalaryRange{Min: 100000, Max: 130000},
	}

	got := Score(candidate, req)

	want := model.ScoreBreakdown{
		RequiredSkills:  0.5,
		PreferredSkills: 0.25,
		Experience:      1,
		Location:        1,
		Salary:          1,
	}
	if got.Breakdown != want {
		t.Fatalf("unexpected breakdown: %+v", got.Breakdown)
	}

	final := 0.5*0.5 + 0.12*0.25 + 0.2 + 0.12 + 0.06
	if !near(got.FinalScore, final) {
		t.Fatalf("expected final score %v, got %v", final, got.FinalScore)
	}
	if !reflect.DeepEqual(got.MatchedSkills, []string{"react", "Docker"}) {
		t.Fatalf("unexpected matched skills: %v", got.MatchedSkills)
	}
	if !reflect.DeepEqual(got.MissingSkills, []string{"TypeScript"}) {
		t.Fatalf("unexpected missing skills: %v", got.MissingSkills)
	}
	if !got.ExperienceFit {
		t.Fatalf("expected experience fit")
	}
	if got.ID != "c1" {
		t.Fatalf("candidate fields were not carried over: %+v", got.Candidate)
	}
}

func TestSalaryScore(t *testing.T) {
	t.Parallel()

	band := &model.SalaryRange{Min: 100000, Max: 130000}

	tests := []struct {
		name        string
		expectation *float64
		band        *model.SalaryRange
		want        float64
	}{
		{name: "above the band", expectation: model.Float(150000), band: band, want: 1 - 20000.0/130000.0},
		{name: "inside the band", expectation: model.Float(110000), band: band, want: 1},
		{name: "on the upper edge", expectation: model.Float(130000), band: band, want: 1},
		{name: "below the band", expectation: model.Float(80000), band: band, want: 0.8},
		{name: "far above the band", expectation: model.Float(400000), band: band, want: 0},
		{name: "no expectation", expectation: nil, band: band, want: 0.5},
		{name: "zero expectation counts as missing", expectation: model.Float(0), band: band, want: 0.5},
		{name: "no band", expectation: model.Float(150000), band: nil, want: 0.5},
		{name: "ceiling only", expectation: model.Float(90000), band: &model.SalaryRange{Max: 120000}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := salaryScore(model.Candidate{SalaryExpectation: tt.expectation}, tt.band)
			if !near(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if got := salaryScore(model.Candidate{SalaryExpectation: model.Float(150000)}, band); math.Abs(got-0.846) > 0.001 {
		t.Fatalf("expected roughly 0.846, got %v", got)
	}
}

func TestLocationScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		job, candidate string
		want           float64
	}{
		{job: "Remote", candidate: "Austin", want: 1},
		{job: "Boston", candidate: "REMOTE", want: 1},
		{job: "Boston", candidate: "boston", want: 1},
		{job: "Boston", candidate: "Austin", want: 0},
		{job: "Boston", candidate: "", want: 0.5},
		{job: "", candidate: "Austin", want: 0.5},
		{job: " ", candidate: " ", want: 0.5},
	}

	for _, tt := range tests {
		if got := locationScore(tt.job, tt.candidate); got != tt.want {
			t.Fatalf("locationScore(%q, %q): expected %v, got %v", tt.job, tt.candidate, tt.want, got)
		}
	}
}

func TestExperienceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		years, minimum int
		want           float64
	}{
		{years: 0, minimum: 0, want: 1},
		{years: 1, minimum: 4, want: 0.25},
		{years: 4, minimum: 4, want: 1},
		{years: 10, minimum: 4, want: 1},
		{years: 2, minimum: -1, want: 1},
	}

	for _, tt := range tests {
		if got := experienceScore(tt.years, tt.minimum); !near(got, tt.want) {
			t.Fatalf("experienceScore(%d, %d): expected %v, got %v", tt.years, tt.minimum, tt.want, got)
		}
	}
}

func TestScoreWithEmptyRequirements(t *testing.T) {
	t.Parallel()

	got := Score(model.Candidate{ID: "x", Skills: []string{"Go"}}, model.RequirementSet{})

	if got.Breakdown.RequiredSkills != 0 || got.Breakdown.PreferredSkills != 0 {
		t.Fatalf("empty skill lists should score zero: %+v", got.Breakdown)
	}
	if got.MatchedSkills == nil || got.MissingSkills == nil {
		t.Fatalf("skill lists should be empty, not nil")
	}
	if len(got.MatchedSkills) != 0 || len(got.MissingSkills) != 0 {
		t.Fatalf("unexpected skills: %v %v", got.MatchedSkills, got.MissingSkills)
	}

	// experience 1, location neutral, salary neutral
	want := 0.2 + 0.12*0.5 + 0.06*0.5
	if !near(got.FinalScore, want) {
		t.Fatalf("expected %v, got %v", want, got.FinalScore)
	}
}

func TestScoreProperties(t *testing.T) {
	t.Parallel()

	reqs := []model.RequirementSet{
		{},
		{RequiredSkills: []string{"React"}, Location: "Remote"},
		{RequiredSkills: []string{"Go", "SQL"}, PreferredSkills: []string{"Docker"}, MinimumExperience: 6, Location: "Denver", SalaryRange: &model.SalaryRange{Min: 50, Max: 60}},
	}
	candidates := []model.Candidate{
		{Skills: []string{"GO", "sql", "docker"}, YearsOfExperience: 10, Location: "Denver", SalaryExpectation: model.Float(1e9)},
		{Skills: nil, YearsOfExperience: 0, Location: ""},
		{Skills: []string{"React", "react"}, YearsOfExperience: 3, Location: "Austin", SalaryExpectation: model.Float(-5)},
	}

	for _, req := range reqs {
		for _, c := range candidates {
			got := Score(c, req)

			if got.FinalScore < 0 || got.FinalScore > 1 {
				t.Fatalf("final score out of range: %v", got.FinalScore)
			}

			required := make(map[string]bool)
			for _, s := range req.RequiredSkills {
				required[s] = true
			}
			for _, missing := range got.MissingSkills {
				if !required[missing] {
					t.Fatalf("missing skill %q is not required", missing)
				}
				for _, matched := range got.MatchedSkills {
					if strings.EqualFold(missing, matched) {
						t.Fatalf("skill %q is both matched and missing", missing)
					}
				}
			}
			if got.ExperienceFit != (c.YearsOfExperience >= req.MinimumExperience) {
				t.Fatalf("unexpected experience fit for %+v", c)
			}
		}
	}
}

func TestCustomWeights(t *testing.T) {
	t.Parallel()

	engine := NewEngine(Weights{RequiredSkills: 1})
	got := engine.Score(
		model.Candidate{Skills: []string{"Go"}},
		model.RequirementSet{RequiredSkills: []string{"Go", "Rust"}},
	)
	if !near(got.FinalScore, 0.5) {
		t.Fatalf("expected 0.5, got %v", got.FinalScore)
	}

	if NewEngine(Weights{}).Weights() != DefaultWeights() {
		t.Fatalf("zero weights should fall back to defaults")
	}
}

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{name: "defaults", weights: DefaultWeights()},
		{name: "single factor", weights: Weights{Experience: 1}},
		{name: "within tolerance", weights: Weights{RequiredSkills: 0.5, Experience: 0.5005}},
		{name: "negative", weights: Weights{RequiredSkills: 1.2, Salary: -0.2}, wantErr: true},
		{name: "sum too small", weights: Weights{RequiredSkills: 0.5}, wantErr: true},
		{name: "sum too big", weights: Weights{RequiredSkills: 0.9, Location: 0.2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
