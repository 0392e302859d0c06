package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Version is a document version tag.
// Documents may carry it as a string or a number; it is always held as text.
type Version string

// String returns the version text.
func (v Version) String() string {
	return string(v)
}

// UnmarshalJSON accepts a JSON string or number.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Version(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("version must be a string or number: %s", string(data))
	}
	*v = Version(n.String())
	return nil
}

// UnmarshalYAML accepts any YAML scalar.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: version must be a scalar", node.Line)
	}
	*v = Version(node.Value)
	return nil
}
