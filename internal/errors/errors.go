package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrSourceNotFound       = "SOURCE_NOT_FOUND"
	ErrMalformedSource      = "MALFORMED_SOURCE"
	ErrUnsupportedQueryKind = "UNSUPPORTED_QUERY_KIND"
	ErrTooManyQueries       = "TOO_MANY_QUERIES"
	ErrConfig               = "CONFIG"
	ErrOutput               = "OUTPUT"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrMalformedSource code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrMalformedSource,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var dgErr *Error
	if errors.As(err, &dgErr) {
		return dgErr.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost structured Error in the chain,
// or the empty string if there is none.
func CodeOf(err error) string {
	var dgErr *Error
	if errors.As(err, &dgErr) {
		return dgErr.Code
	}
	return ""
}

// Annotate prefixes the message of a structured error with where it happened,
// keeping its code, suggestion and cause. Other errors are wrapped with %w.
func Annotate(err error, where string) error {
	if err == nil {
		return nil
	}
	var dgErr *Error
	if errors.As(err, &dgErr) {
		return &Error{
			Code:       dgErr.Code,
			Message:    where + ": " + dgErr.Message,
			Suggestion: dgErr.Suggestion,
			Cause:      dgErr.Cause,
		}
	}
	return fmt.Errorf("%s: %w", where, err)
}
