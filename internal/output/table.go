// Package output renders ranking results for the terminal.
package output

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/model"
)

// TableTo writes data as a formatted table to the given writer.
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *model.RankingResult:
		return rankingTable(w, v)
	case model.RequirementSet:
		return requirementsDetail(w, v)
	case *model.RequirementSet:
		return requirementsDetail(w, *v)
	case model.RecruiterFilters:
		return filtersDetail(w, v)
	case []model.Candidate:
		return candidatesTable(w, v)
	case []filtering.Status:
		return statusTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func rankingTable(w io.Writer, result *model.RankingResult) error {
	fmt.Fprintf(w, "Candidates: %d total, %d after filters\n", result.TotalCandidates, result.FilteredCount)
	if len(result.RankedCandidates) == 0 {
		fmt.Fprintln(w, "No candidates matched.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Name", "Score", "Matched", "Missing", "Experience", "Location")

	for i, c := range result.RankedCandidates {
		fit := "no"
		if c.ExperienceFit {
			fit = "yes"
		}
		if err := table.Append(
			strconv.Itoa(i+1),
			c.Name,
			fmt.Sprintf("%.0f%%", c.FinalScore*100),
			joinOrDash(c.MatchedSkills),
			joinOrDash(c.MissingSkills),
			fmt.Sprintf("%dy (%s)", c.YearsOfExperience, fit),
			c.Location,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

func candidatesTable(w io.Writer, candidates []model.Candidate) error {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Skills", "Years", "Location", "Salary")

	for _, c := range candidates {
		salary := "-"
		if s, ok := c.Salary(); ok {
			salary = formatDollars(s)
		}
		if err := table.Append(
			c.ID,
			c.Name,
			joinOrDash(c.Skills),
			strconv.Itoa(c.YearsOfExperience),
			c.Location,
			salary,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

func statusTable(w io.Writer, statuses []filtering.Status) error {
	table := tablewriter.NewWriter(w)
	table.Header("Filter", "Enabled", "Details")

	for _, s := range statuses {
		details := make([]string, 0, len(s.Details)+1)
		for _, key := range sortedKeys(s.Details) {
			details = append(details, key+"="+s.Details[key])
		}
		if s.Reason != "" {
			details = append(details, "reason: "+s.Reason)
		}
		if err := table.Append(s.Name, strconv.FormatBool(s.Enabled), joinOrDash(details)); err != nil {
			return err
		}
	}

	return table.Render()
}

func requirementsDetail(w io.Writer, req model.RequirementSet) error {
	fmt.Fprintf(w, "Required skills:    %s\n", joinOrDash(req.RequiredSkills))
	fmt.Fprintf(w, "Preferred skills:   %s\n", joinOrDash(req.PreferredSkills))
	fmt.Fprintf(w, "Minimum experience: %d years\n", req.MinimumExperience)
	fmt.Fprintf(w, "Location:           %s\n", req.Location)
	if req.SalaryRange != nil {
		fmt.Fprintf(w, "Salary range:       %s - %s\n", formatDollars(req.SalaryRange.Min), formatDollars(req.SalaryRange.Max))
	} else {
		fmt.Fprintln(w, "Salary range:       -")
	}
	return nil
}

func filtersDetail(w io.Writer, f model.RecruiterFilters) error {
	fmt.Fprintf(w, "Skills:             %s\n", joinOrDash(f.Skills))
	fmt.Fprintf(w, "Minimum experience: %d years\n", f.MinimumExperience)
	fmt.Fprintf(w, "Locations:          %s\n", joinOrDash(f.Locations))
	if ceiling, ok := f.Ceiling(); ok {
		fmt.Fprintf(w, "Salary max:         %s\n", formatDollars(ceiling))
	} else {
		fmt.Fprintln(w, "Salary max:         -")
	}
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func formatDollars(v float64) string {
	digits := strconv.FormatFloat(v, 'f', 0, 64)
	var sb strings.Builder
	sb.WriteByte('$')
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
