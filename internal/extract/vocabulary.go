package extract

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed vocabulary.toml
var defaultVocabulary []byte

// Term maps a lowercase token to its canonical display name.
type Term struct {
	Token string `toml:"token"`
	Name  string `toml:"name"`
}

// Markers are the context phrases that classify a skill mention.
type Markers struct {
	Required  []string `toml:"required"`
	Preferred []string `toml:"preferred"`
}

// Vocabulary is the lookup table used by the extractor.
type Vocabulary struct {
	Markers   Markers `toml:"markers"`
	Skills    []Term  `toml:"skills"`
	Locations []Term  `toml:"locations"`
}

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabulary)
	if err != nil {
		panic(fmt.Sprintf("built-in vocabulary is invalid: %v", err))
	}
	return v
}

// LoadVocabulary reads a TOML vocabulary file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %q: %w", path, err)
	}

	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %q: %w", path, err)
	}
	return v, nil
}

// ParseVocabulary decodes and validates TOML vocabulary content.
// Missing display names default to the title-cased token.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	if err := v.normalize(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Vocabulary) normalize() error {
	if len(v.Skills) == 0 {
		return errors.New("at least one skill is required")
	}

	if err := normalizeTerms("skill", v.Skills); err != nil {
		return err
	}
	if err := normalizeTerms("location", v.Locations); err != nil {
		return err
	}

	v.Markers.Required = normalizeMarkers(v.Markers.Required)
	v.Markers.Preferred = normalizeMarkers(v.Markers.Preferred)
	return nil
}

func normalizeTerms(kind string, terms []Term) error {
	// Casers keep state, so each call gets its own.
	title := cases.Title(language.English)
	seen := make(map[string]struct{}, len(terms))
	for i := range terms {
		token := strings.TrimSpace(terms[i].Token)
		if token == "" {
			return fmt.Errorf("%s #%d has an empty token", kind, i+1)
		}
		if token != strings.ToLower(token) {
			return fmt.Errorf("%s token %q must be lowercase", kind, token)
		}
		if _, ok := seen[token]; ok {
			return fmt.Errorf("duplicate %s token %q", kind, token)
		}
		seen[token] = struct{}{}

		terms[i].Token = token
		terms[i].Name = strings.TrimSpace(terms[i].Name)
		if terms[i].Name == "" {
			terms[i].Name = title.String(token)
		}
	}
	return nil
}

func normalizeMarkers(markers []string) []string {
	out := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
