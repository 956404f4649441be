package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/model"
)

func result() *model.RankingResult {
	return &model.RankingResult{
		RankedCandidates: []model.RankedCandidate{
			{
				Candidate:     model.Candidate{ID: "1", Name: "Sarah Chen", YearsOfExperience: 6, Location: "Remote"},
				FinalScore:    0.876,
				MatchedSkills: []string{"React", "TypeScript"},
				MissingSkills: []string{},
				ExperienceFit: true,
			},
		},
		TotalCandidates: 4,
		FilteredCount:   1,
	}
}

func TestOutputTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Output(&buf, FormatTable, result()))

	out := buf.String()
	assert.Contains(t, out, "4 total, 1 after filters")
	assert.Contains(t, out, "Sarah")
	assert.Contains(t, out, "88%")
	assert.Contains(t, out, "TypeScript")
	assert.Contains(t, out, "6y")
}

func TestOutputTableEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, &model.RankingResult{RankedCandidates: []model.RankedCandidate{}}))
	assert.Contains(t, buf.String(), "No candidates matched.")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Output(&buf, FormatJSON, result()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 4, decoded["totalCandidates"])
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestOutputRequirements(t *testing.T) {
	var buf bytes.Buffer
	req := model.RequirementSet{
		RequiredSkills:    []string{"React"},
		PreferredSkills:   []string{},
		MinimumExperience: 3,
		Location:          "Remote",
		SalaryRange:       &model.SalaryRange{Min: 100000, Max: 130000},
	}
	require.NoError(t, TableTo(&buf, req))

	out := buf.String()
	assert.Contains(t, out, "Required skills:    React")
	assert.Contains(t, out, "Preferred skills:   -")
	assert.Contains(t, out, "$100,000 - $130,000")
}

func TestOutputCandidatesAndStatuses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, []model.Candidate{
		{ID: "7", Name: "Aisha Okafor", Skills: []string{"Python"}, YearsOfExperience: 5, SalaryExpectation: model.Float(135000)},
	}))
	assert.Contains(t, buf.String(), "$135,000")

	buf.Reset()
	require.NoError(t, TableTo(&buf, []filtering.Status{
		{Name: "skills", Enabled: false, Reason: filtering.SkillsAdvisoryReason},
	}))
	assert.Contains(t, buf.String(), "advisory")
}

func TestOutputRejectsUnknownInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Output(&buf, "yaml", result()))
	assert.Error(t, TableTo(&buf, 42))
}

func TestFormatDollars(t *testing.T) {
	for in, want := range map[float64]string{
		0:       "$0",
		950:     "$950",
		1000:    "$1,000",
		130000:  "$130,000",
		1250000: "$1,250,000",
	} {
		assert.Equal(t, want, formatDollars(in))
	}
}
