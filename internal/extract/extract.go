// Package extract turns free-text job descriptions into structured requirements.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/candidate-ranker/internal/model"
)

// RemoteLocation is reported when the text names no known city.
const RemoteLocation = "Remote"

var (
	// experiencePatterns are tried in order; the first match wins.
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*\+?\s*years?\s+(?:of\s+)?experience\b`),
		regexp.MustCompile(`at least\s+(\d+)\s*\+?\s*years?\b`),
		regexp.MustCompile(`minimum\s+(?:of\s+)?(\d+)\s*\+?\s*years?\b`),
		regexp.MustCompile(`(\d+)\s*\+?\s*years?\b`),
	}

	salaryRangePattern   = regexp.MustCompile(`\$\s*(\d[\d,]*)\s*k?\s*(?:-|–|—|to)\s*\$?\s*(\d[\d,]*)\s*k?`)
	salaryCeilingPattern = regexp.MustCompile(`(?:budget|salary|up to|maximum).*?\$\s*(\d[\d,]*)`)
)

// Extractor parses job descriptions against a vocabulary. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	vocab *Vocabulary
}

// New returns an extractor for the vocabulary, falling back to the built-in one when nil.
func New(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

// Extract derives a requirement set from text. It never fails: anything it
// cannot recognize falls back to defaults.
func (e *Extractor) Extract(text string) model.RequirementSet {
	lower := strings.ToLower(text)

	required, preferred := e.skills(lower)

	return model.RequirementSet{
		RequiredSkills:    required,
		PreferredSkills:   preferred,
		MinimumExperience: minimumExperience(lower),
		Location:          e.location(lower),
		SalaryRange:       salaryRange(lower),
	}
}

func (e *Extractor) skills(text string) ([]string, []string) {
	required := make([]string, 0)
	preferred := make([]string, 0)
	classified := make(map[string]struct{})

	for _, skill := range e.vocab.Skills {
		if _, ok := classified[skill.Name]; ok {
			continue
		}

		switch {
		case mentionedAfter(text, e.vocab.Markers.Required, skill.Token):
			required = append(required, skill.Name)
		case mentionedAfter(text, e.vocab.Markers.Preferred, skill.Token):
			preferred = append(preferred, skill.Name)
		case mentioned(text, skill.Token, true):
			preferred = append(preferred, skill.Name)
		default:
			continue
		}

		classified[skill.Name] = struct{}{}
	}

	return required, preferred
}

func (e *Extractor) location(text string) string {
	for _, loc := range e.vocab.Locations {
		if mentioned(text, loc.Token, true) {
			return loc.Name
		}
	}
	return RemoteLocation
}

func minimumExperience(text string) int {
	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return years
	}
	return 0
}

func salaryRange(text string) *model.SalaryRange {
	if match := salaryRangePattern.FindStringSubmatch(text); match != nil {
		lo, okLo := dollars(match[1])
		hi, okHi := dollars(match[2])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			return &model.SalaryRange{Min: lo, Max: hi}
		}
	}

	if match := salaryCeilingPattern.FindStringSubmatch(text); match != nil {
		if ceiling, ok := dollars(match[1]); ok {
			return &model.SalaryRange{Min: 0, Max: ceiling}
		}
	}

	return nil
}

// dollars converts a captured amount. Up to three digits means thousands
// ("$120k", "$120"); longer numbers are literal dollar amounts.
func dollars(raw string) (float64, bool) {
	digits := strings.ReplaceAll(raw, ",", "")
	if digits == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	if len(digits) <= 3 {
		n *= 1000
	}
	return n, true
}

func mentionedAfter(text string, markers []string, token string) bool {
	for _, marker := range markers {
		if mentioned(text, marker+" "+token, false) {
			return true
		}
	}
	return false
}

// mentioned reports whether phrase occurs in text and is not glued to a
// following word character, so "java" does not match inside "javascript".
// With leading set the preceding character is checked the same way.
func mentioned(text, phrase string, leading bool) bool {
	for offset := 0; offset <= len(text); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(phrase)

		if !wordAt(text, end) && (!leading || !wordBefore(text, start)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func wordAt(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isWord(r)
}

func wordBefore(text string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isWord(r)
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

var defaultExtractor = New(nil)

// Extract parses text with the built-in vocabulary.
func Extract(text string) model.RequirementSet {
	return defaultExtractor.Extract(text)
}
