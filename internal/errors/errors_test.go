package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrSourceNotFound,
		ErrMalformedSource,
		ErrUnsupportedQueryKind,
		ErrTooManyQueries,
		ErrConfig,
		ErrOutput,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "missing source",
			code:       ErrSourceNotFound,
			message:    "Source file not found: metrics-source.json",
			suggestion: "Pass --source or run 'dashgen init'",
		},
		{
			name:       "bad query kind",
			code:       ErrUnsupportedQueryKind,
			message:    "Unknown query type: summary",
			suggestion: "Use one of rate, gauge, histogram",
		},
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .dashgen.yaml",
			suggestion: "Check your configuration file syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "message and suggestion",
			err:           New(ErrConfig, "Invalid configuration", "Check .dashgen.yaml syntax"),
			expectedParts: []string{"✗ Invalid configuration", "Check .dashgen.yaml syntax"},
		},
		{
			name:          "cause is included",
			err:           WrapWithCode(errors.New("unexpected EOF"), ErrMalformedSource, "Source is not valid JSON", ""),
			expectedParts: []string{"Source is not valid JSON", "unexpected EOF"},
		},
		{
			name:          "no suggestion line when empty",
			err:           New(ErrOutput, "Write failed", ""),
			expectedParts: []string{"Write failed"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, got, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, got, part)
			}
			assert.True(t, strings.HasPrefix(got, "✗ "))
		})
	}
}

func TestWrapDefaultsToMalformedSource(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "decode failed")

	assert.Equal(t, ErrMalformedSource, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	base := New(ErrTooManyQueries, "too many", "")
	wrapped := fmt.Errorf("panel 3: %w", base)

	assert.True(t, IsCode(base, ErrTooManyQueries))
	assert.True(t, IsCode(wrapped, ErrTooManyQueries))
	assert.False(t, IsCode(wrapped, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrOutput, CodeOf(fmt.Errorf("x: %w", New(ErrOutput, "m", ""))))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestAnnotate(t *testing.T) {
	inner := New(ErrUnsupportedQueryKind, "Unknown query type", "Use rate")
	err := Annotate(inner, `panel "Latency"`)

	var dgErr *Error
	require.True(t, errors.As(err, &dgErr))
	assert.Equal(t, ErrUnsupportedQueryKind, dgErr.Code)
	assert.Equal(t, `panel "Latency": Unknown query type`, dgErr.Message)
	assert.Equal(t, "Use rate", dgErr.Suggestion)

	// The wrapped error is untouched
	assert.Equal(t, "Unknown query type", inner.Message)

	plain := errors.New("boom")
	assert.ErrorIs(t, Annotate(plain, "row"), plain)
	assert.Equal(t, "row: boom", Annotate(plain, "row").Error())

	assert.NoError(t, Annotate(nil, "row"))
}
