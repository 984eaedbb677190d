// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"strings"
)

// FieldID identifies one of the seven user-facing drill parameters.
// The numeric order is the declaration order used for every report.
type FieldID int

const (
	FieldDiameter FieldID = iota
	FieldWorkingLength
	FieldTotalLength
	FieldAngle
	FieldConeValue
	FieldShankDiameter
	FieldShankLength
)

// Units used in field messages
const (
	UnitMillimeter = "мм"
	UnitDegree     = "°"
)

type fieldInfo struct {
	key         string
	displayName string
	unit        string
	feature     Feature
}

var fieldTable = [...]fieldInfo{
	FieldDiameter:      {"diameter", "Диаметр", UnitMillimeter, FeatureNone},
	FieldWorkingLength: {"working_length", "Длина рабочей части", UnitMillimeter, FeatureNone},
	FieldTotalLength:   {"total_length", "Общая длина", UnitMillimeter, FeatureNone},
	FieldAngle:         {"angle", "Угол при вершине", UnitDegree, FeatureNone},
	FieldConeValue:     {"cone_value", "Обратный конус", UnitMillimeter, FeatureCone},
	FieldShankDiameter: {"shank_diameter", "Диаметр хвостовика", UnitMillimeter, FeatureShank},
	FieldShankLength:   {"shank_length", "Длина хвостовика", UnitMillimeter, FeatureShank},
}

// AllFields returns every field in declaration order.
func AllFields() []FieldID {
	return []FieldID{
		FieldDiameter,
		FieldWorkingLength,
		FieldTotalLength,
		FieldAngle,
		FieldConeValue,
		FieldShankDiameter,
		FieldShankLength,
	}
}

// ParseFieldID resolves a machine key such as "working_length".
func ParseFieldID(s string) (FieldID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range fieldTable {
		if info.key == s {
			return FieldID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field: %q", s)
}

// MustParseFieldID parses a field key or panics
func MustParseFieldID(s string) FieldID {
	f, err := ParseFieldID(s)
	if err != nil {
		panic(err)
	}
	return f
}

// IsValid reports whether f is one of the declared fields
func (f FieldID) IsValid() bool {
	return f >= FieldDiameter && f <= FieldShankLength
}

func (f FieldID) info() fieldInfo {
	if !f.IsValid() {
		panic(fmt.Sprintf("invalid field id %d", int(f)))
	}
	return fieldTable[f]
}

// String returns the machine key
func (f FieldID) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldTable[f].key
}

// DisplayName returns the human-readable name used in messages
func (f FieldID) DisplayName() string {
	return f.info().displayName
}

// Unit returns the measurement unit shown after a range
func (f FieldID) Unit() string {
	return f.info().unit
}

// Feature returns the optional feature that gates this field.
// FeatureNone means the field is always required.
func (f FieldID) Feature() Feature {
	return f.info().feature
}

// IsOptional returns true for fields gated by a feature
func (f FieldID) IsOptional() bool {
	return f.Feature() != FeatureNone
}

// MarshalText implements encoding.TextMarshaler
func (f FieldID) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("invalid field id %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *FieldID) UnmarshalText(data []byte) error {
	id, err := ParseFieldID(string(data))
	if err != nil {
		return err
	}
	*f = id
	return nil
}
