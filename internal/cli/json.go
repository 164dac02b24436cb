package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/rileyhilliard/dashgen/internal/errors"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeSourceNotFound       = "SOURCE_NOT_FOUND"
	ErrCodeMalformedSource      = "MALFORMED_SOURCE"
	ErrCodeUnsupportedQueryKind = "UNSUPPORTED_QUERY_KIND"
	ErrCodeTooManyQueries       = "TOO_MANY_QUERIES"
	ErrCodeConfigInvalid        = "CONFIG_INVALID"
	ErrCodeOutputFailed         = "OUTPUT_FAILED"
	ErrCodeUnknown              = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var dgErr *errors.Error
	if stderrors.As(err, &dgErr) {
		jsonErr := &JSONError{
			Code:       mapErrorCode(dgErr.Code),
			Message:    dgErr.Message,
			Suggestion: dgErr.Suggestion,
		}
		if dgErr.Cause != nil {
			jsonErr.Details = map[string]string{"cause": dgErr.Cause.Error()}
		}
		return jsonErr
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode string) string {
	switch internalCode {
	case errors.ErrSourceNotFound:
		return ErrCodeSourceNotFound
	case errors.ErrMalformedSource:
		return ErrCodeMalformedSource
	case errors.ErrUnsupportedQueryKind:
		return ErrCodeUnsupportedQueryKind
	case errors.ErrTooManyQueries:
		return ErrCodeTooManyQueries
	case errors.ErrConfig:
		return ErrCodeConfigInvalid
	case errors.ErrOutput:
		return ErrCodeOutputFailed
	}
	return ErrCodeUnknown
}
