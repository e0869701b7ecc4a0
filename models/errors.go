package models

import (
	"fmt"
	"strings"
)

// FieldError describes a single failed constraint on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field that failed validation in one
// write attempt, so callers can report them all at once instead of
// fixing fields one save at a time.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether the set contains an error for the given field.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// DuplicateKeyError is returned when a write violates a unique index
// (currently only users.email). It is distinct from ValidationErrors so
// callers can map it to a conflict instead of a bad request.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s %q", e.Field, e.Value)
}
