package ranking

import (
	"cmp"
	"slices"

	"github.com/spigell/candidate-ranker/internal/model"
)

// Assemble normalizes the scored records and orders them by descending
// FinalScore. Ties keep their incoming order, which is the order of the
// candidate pool. The input slice is left untouched.
func Assemble(scored []model.RankedCandidate, total, filtered int, norm Normalization) model.RankingResult {
	records := slices.Clone(scored)
	if records == nil {
		records = []model.RankedCandidate{}
	}

	norm.apply(records)

	slices.SortStableFunc(records, func(a, b model.RankedCandidate) int {
		return cmp.Compare(b.FinalScore, a.FinalScore)
	})

	return model.RankingResult{
		RankedCandidates: records,
		TotalCandidates:  total,
		FilteredCount:    filtered,
	}
}
