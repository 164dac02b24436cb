package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Number keeps a numeric literal exactly as the author wrote it, so 0.9 stays
// "0.9" and 1.0 stays "1.0" when interpolated into a query. The zero value
// means "not set".
type Number string

// IsSet reports whether a value was supplied.
func (n Number) IsSet() bool {
	return n != ""
}

func (n Number) String() string {
	return string(n)
}

// Float parses the literal. It is only meaningful when IsSet is true.
func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	lit := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &lit); err != nil {
			return err
		}
	}
	return n.set(lit)
}

// MarshalJSON writes the literal back unquoted, or null when unset.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsSet() {
		return []byte("null"), nil
	}
	return []byte(n), nil
}

// MarshalYAML writes the literal as a plain numeric scalar.
func (n Number) MarshalYAML() (interface{}, error) {
	if !n.IsSet() {
		return nil, nil
	}
	tag := "!!int"
	if strings.ContainsAny(string(n), ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}, nil
}

// UnmarshalYAML accepts a scalar that parses as a number, or null.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	if node.Tag == "!!null" {
		*n = ""
		return nil
	}
	if err := n.set(node.Value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

func (n *Number) set(lit string) error {
	if _, err := strconv.ParseFloat(lit, 64); err != nil {
		return fmt.Errorf("%q is not a number", lit)
	}
	*n = Number(lit)
	return nil
}
