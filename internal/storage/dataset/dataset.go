// Package dataset decodes and validates candidate pools stored as JSON.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/candidate-ranker/internal/model"
)

var (
	//go:embed candidates.schema.json
	schema string

	//go:embed candidates.json
	sample []byte
)

// ValidationError represents a schema validation error with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("candidate pool is invalid:")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Validate checks raw JSON against the candidate pool schema.
func Validate(data []byte) error {
	if !json.Valid(data) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}}}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate candidate pool: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// Decode validates and decodes a candidate pool. IDs, when present, must be unique.
func Decode(data []byte) ([]model.Candidate, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var candidates []model.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidate pool: %w", err)
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("duplicate candidate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	return candidates, nil
}

// Encode renders candidates as indented JSON.
func Encode(candidates []model.Candidate) ([]byte, error) {
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	return json.MarshalIndent(candidates, "", "  ")
}

// AssignIDs returns a copy of candidates in which blank IDs are replaced with random UUIDs.
func AssignIDs(candidates []model.Candidate) []model.Candidate {
	out := slices.Clone(candidates)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

// Sample returns the bundled demo pool.
func Sample() []model.Candidate {
	candidates, err := Decode(sample)
	if err != nil {
		panic(fmt.Sprintf("bundled candidates are invalid: %v", err))
	}
	return candidates
}
