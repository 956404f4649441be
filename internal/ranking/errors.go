package ranking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest marks requests rejected before the pipeline runs.
	ErrInvalidRequest = errors.New("invalid ranking request")
	// ErrInternal marks unexpected failures inside the pipeline.
	ErrInternal = errors.New("internal ranking error")
)

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}
