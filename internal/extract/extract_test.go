package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/candidate-ranker/internal/model"
)

func TestExtractMustHaveReactScenario(t *testing.T) {
	t.Parallel()

	got := Extract("Must have React, 3+ years experience, remote, $100k-$130k")

	if !reflect.DeepEqual(got.RequiredSkills, []string{"React"}) {
		t.Fatalf("unexpected required skills: %v", got.RequiredSkills)
	}
	if len(got.PreferredSkills) != 0 {
		t.Fatalf("expected no preferred skills, got %v", got.PreferredSkills)
	}
	if got.MinimumExperience != 3 {
		t.Fatalf("expected minimum experience 3, got %d", got.MinimumExperience)
	}
	if got.Location != "Remote" {
		t.Fatalf("expected Remote location, got %q", got.Location)
	}
	if got.SalaryRange == nil || got.SalaryRange.Min != 100000 || got.SalaryRange.Max != 130000 {
		t.Fatalf("unexpected salary range: %+v", got.SalaryRange)
	}
}

func TestExtractSkillClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		required  []string
		preferred []string
	}{
		{
			name:      "empty text",
			text:      "",
			required:  []string{},
			preferred: []string{},
		},
		{
			name:      "markers",
			text:      "Required: Python. Nice to have Docker, bonus: Redis and plus: GraphQL",
			required:  []string{"Python"},
			preferred: []string{"Docker", "GraphQL", "Redis"},
		},
		{
			name:      "bare mention is preferred",
			text:      "We use kubernetes and AWS daily",
			required:  []string{},
			preferred: []string{"AWS", "Kubernetes"},
		},
		{
			name:      "required wins over a later bare mention",
			text:      "required: react. Our frontend is React with jest tests.",
			required:  []string{"React"},
			preferred: []string{"Jest"},
		},
		{
			name:      "aliases share one display name",
			text:      "Must have vue.js; vue experience is great",
			required:  []string{"Vue.js"},
			preferred: []string{},
		},
		{
			name:      "tokens do not match inside longer words",
			text:      "Requires JavaScript",
			required:  []string{"JavaScript"},
			preferred: []string{},
		},
		{
			name:      "symbols in tokens",
			text:      "requires c# and .net, preferred: spring boot",
			required:  []string{"C#"},
			preferred: []string{".NET", "Spring Boot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.text)
			if !sameSet(got.RequiredSkills, tt.required) {
				t.Fatalf("required: expected %v, got %v", tt.required, got.RequiredSkills)
			}
			if !sameSet(got.PreferredSkills, tt.preferred) {
				t.Fatalf("preferred: expected %v, got %v", tt.preferred, got.PreferredSkills)
			}
			for _, skill := range got.RequiredSkills {
				for _, other := range got.PreferredSkills {
					if skill == other {
						t.Fatalf("skill %q classified twice", skill)
					}
				}
			}
		})
	}
}

func TestExtractMinimumExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		expect int
	}{
		{text: "5 years of experience with Go", expect: 5},
		{text: "at least 4 years in backend roles", expect: 4},
		{text: "minimum 7 years", expect: 7},
		{text: "10+ years building products", expect: 10},
		{text: "we value yearly reviews and 2 interns", expect: 0},
		{text: "no numbers here", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := Extract(tt.text).MinimumExperience; got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestExtractLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		expect string
	}{
		{text: "Office in San Francisco", expect: "San Francisco"},
		{text: "NEW YORK based team", expect: "New York"},
		{text: "Seattle or remote", expect: "Remote"},
		{text: "Austin or Boston", expect: "Boston"},
		{text: "Somewhere nice", expect: "Remote"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := Extract(tt.text).Location; got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect *model.SalaryRange
	}{
		{name: "k range", text: "$90k - $110k", expect: &model.SalaryRange{Min: 90000, Max: 110000}},
		{name: "literal range", text: "pay $95,000 - $125,000", expect: &model.SalaryRange{Min: 95000, Max: 125000}},
		{name: "reversed range", text: "$150k-$120k", expect: &model.SalaryRange{Min: 120000, Max: 150000}},
		{name: "ceiling", text: "maximum budget of $120,000", expect: &model.SalaryRange{Min: 0, Max: 120000}},
		{name: "short ceiling", text: "salary up to $140k", expect: &model.SalaryRange{Min: 0, Max: 140000}},
		{name: "absent", text: "competitive pay", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Extract(tt.text).SalaryRange
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestExtractIgnoresCase(t *testing.T) {
	t.Parallel()

	texts := []string{
		"Must have React, 3+ years experience, remote, $100k-$130k",
		"Required: Python, nice to have Docker. Office in Chicago. Budget $140k",
		"We are hiring in Denver. Minimum 2 years. TypeScript and GraphQL",
	}

	for _, text := range texts {
		lower := Extract(text)
		upper := Extract(strings.ToUpper(text))
		if !reflect.DeepEqual(lower, upper) {
			t.Fatalf("case changed the outcome for %q:\n%+v\n%+v", text, lower, upper)
		}
	}
}

func TestExtractWithCustomVocabulary(t *testing.T) {
	t.Parallel()

	vocab, err := ParseVocabulary([]byte(`
[markers]
required = ["need"]

[[skills]]
token = "go"
name = "Go"

[[locations]]
token = "berlin"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := New(vocab).Extract("We need go engineers in Berlin")
	if !reflect.DeepEqual(got.RequiredSkills, []string{"Go"}) {
		t.Fatalf("unexpected required skills: %v", got.RequiredSkills)
	}
	if got.Location != "Berlin" {
		t.Fatalf("expected title-cased location, got %q", got.Location)
	}
}

func TestParseVocabularyRejectsBadTables(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no skills":       `[[locations]]` + "\n" + `token = "remote"`,
		"uppercase token": `[[skills]]` + "\n" + `token = "Go"`,
		"duplicate token": "[[skills]]\ntoken = \"go\"\n[[skills]]\ntoken = \"go\"",
		"empty token":     "[[skills]]\ntoken = \" \"",
		"broken toml":     "[[skills]\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseVocabulary([]byte(data)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestSuggestFilters(t *testing.T) {
	t.Parallel()

	text := "Boston office, 4 years experience, $110k-$150k"
	got := SuggestFilters(Extract(text), text)

	if got.MinimumExperience != 4 {
		t.Fatalf("expected minimum experience 4, got %d", got.MinimumExperience)
	}
	if !reflect.DeepEqual(got.Locations, []string{"Boston"}) {
		t.Fatalf("unexpected locations: %v", got.Locations)
	}
	if got.SalaryMax == nil || *got.SalaryMax != 150000 {
		t.Fatalf("unexpected salary max: %v", got.SalaryMax)
	}

	remote := "Fully remote role"
	got = SuggestFilters(Extract(remote), remote)
	if !reflect.DeepEqual(got.Locations, []string{"Remote"}) {
		t.Fatalf("expected Remote location filter, got %v", got.Locations)
	}
	if got.SalaryMax != nil {
		t.Fatalf("expected no salary ceiling, got %v", *got.SalaryMax)
	}

	none := "Great team"
	got = SuggestFilters(Extract(none), none)
	if len(got.Locations) != 0 {
		t.Fatalf("expected no location filter, got %v", got.Locations)
	}
}

func sameSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	counts := make(map[string]int, len(want))
	for _, w := range want {
		counts[w]++
	}
	for _, g := range got {
		counts[g]--
		if counts[g] < 0 {
			return false
		}
	}
	return true
}
