package values

import (
	"fmt"
	"strings"
)

// PresetName represents a validated preset identifier.
// Enforces non-empty, trimmed names.
type PresetName struct {
	value string
}

// NewPresetName creates a PresetName with validation
func NewPresetName(name string) (PresetName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PresetName{}, fmt.Errorf("preset name cannot be empty")
	}
	return PresetName{value: name}, nil
}

// MustNewPresetName creates a PresetName or panics
func MustNewPresetName(name string) PresetName {
	pn, err := NewPresetName(name)
	if err != nil {
		panic(err)
	}
	return pn
}

// String returns the string representation
func (p PresetName) String() string {
	return p.value
}

// IsEmpty returns true if this is the zero value
func (p PresetName) IsEmpty() bool {
	return p.value == ""
}

// Equals compares names ignoring case, since preset lookups are
// typed by hand on the command line.
func (p PresetName) Equals(other PresetName) bool {
	return strings.EqualFold(p.value, other.value)
}

// MarshalText implements encoding.TextMarshaler
func (p PresetName) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *PresetName) UnmarshalText(data []byte) error {
	name, err := NewPresetName(string(data))
	if err != nil {
		return err
	}
	*p = name
	return nil
}
