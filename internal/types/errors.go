package types

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries one message per violated field so callers can
// surface field-level corrections in a single round trip.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError ready to collect violations.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation for the given field. Only the first message per
// field is kept.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns the error itself, or nil when no violations were recorded.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("validation failed")
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("; %s: %s", f, e.Fields[f]))
	}
	return sb.String()
}

// ErrUnavailable indicates a backend primitive could not be reached. Callers
// decide whether to degrade (bulk stats) or surface the failure (everything
// else); this layer never retries.
type ErrUnavailable struct {
	Op    string
	Cause error
}

func (e *ErrUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s unavailable", e.Op)
}

func (e *ErrUnavailable) Unwrap() error {
	return e.Cause
}
