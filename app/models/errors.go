package models

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails its field constraints.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Fields []FieldError
	// Cause is set when the input could not be decoded at all.
	Cause error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return "invalid input: " + e.Cause.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewDecodeError wraps a body decoding failure as a validation error.
func NewDecodeError(err error) *ValidationError {
	return &ValidationError{Cause: err}
}

// PostNotFoundError reports a post id with no matching record.
type PostNotFoundError struct {
	PostID string
}

func (e *PostNotFoundError) Error() string {
	return fmt.Sprintf("Post with ID %s not found", e.PostID)
}

// IsNotFound reports whether err is, or wraps, a PostNotFoundError.
func IsNotFound(err error) bool {
	var nf *PostNotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
