package ranking

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-ranker/internal/model"
)

// Normalization selects how final scores are rescaled across one result set.
type Normalization string

const (
	// NormalizationNone keeps scores as computed.
	NormalizationNone Normalization = "none"
	// NormalizationMinMax linearly maps the observed score range onto [0,1].
	NormalizationMinMax Normalization = "minmax"
)

// ParseNormalization parses a policy name. An empty name selects NormalizationNone.
func ParseNormalization(s string) (Normalization, error) {
	switch n := Normalization(strings.ToLower(strings.TrimSpace(s))); n {
	case "", NormalizationNone:
		return NormalizationNone, nil
	case NormalizationMinMax:
		return n, nil
	default:
		return "", fmt.Errorf("unknown normalization %q: expected %q or %q", s, NormalizationNone, NormalizationMinMax)
	}
}

// UnmarshalText lets configuration decoders parse the policy by name.
func (n *Normalization) UnmarshalText(text []byte) error {
	parsed, err := ParseNormalization(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func (n Normalization) String() string {
	if n == "" {
		return string(NormalizationNone)
	}
	return string(n)
}

// apply rewrites FinalScore in place. Unknown policies behave like none.
func (n Normalization) apply(records []model.RankedCandidate) {
	if n != NormalizationMinMax || len(records) <= 1 {
		return
	}

	lo, hi := records[0].FinalScore, records[0].FinalScore
	for _, r := range records[1:] {
		lo = min(lo, r.FinalScore)
		hi = max(hi, r.FinalScore)
	}

	spread := hi - lo
	if spread <= 0 {
		return
	}

	for i := range records {
		records[i].FinalScore = (records[i].FinalScore - lo) / spread
	}
}
