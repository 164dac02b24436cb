package source

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder for a source document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks a decoder from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, decodes and validates the source document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrSourceNotFound,
				"Source file not found: "+path,
				"Check the --source path, or run 'dashgen init' to create a starter file")
		}
		return nil, errors.WrapWithCode(err, errors.ErrSourceNotFound,
			"Cannot read source file: "+path,
			"Check file permissions")
	}

	doc, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, err
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse decodes a source document without validating it.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrMalformedSource,
				"Source is not valid YAML",
				"Fix the syntax error above and try again")
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapWithCode(describeJSONError(data, err), errors.ErrMalformedSource,
				"Source is not valid JSON",
				"Fix the syntax error above and try again")
		}
	}

	return &doc, nil
}

// describeJSONError adds a line/column to syntax and type errors.
func describeJSONError(data []byte, err error) error {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case stderrors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return err
	}

	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return fmt.Errorf("line %d, column %d: %w", line, col, err)
}
