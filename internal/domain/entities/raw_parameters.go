package entities

import (
	"fmt"

	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// RawParameters is one candidate parameter set exactly as a user typed it:
// free text per field plus the two feature flags. Both flags may be true
// here; the exclusivity rule only applies once values reach a ParameterSet.
type RawParameters struct {
	Diameter       string `json:"diameter" yaml:"diameter"`
	WorkingLength  string `json:"working_length" yaml:"working_length"`
	TotalLength    string `json:"total_length" yaml:"total_length"`
	Angle          string `json:"angle" yaml:"angle"`
	ClearanceCone  bool   `json:"clearance_cone" yaml:"clearance_cone"`
	ConeValue      string `json:"cone_value,omitempty" yaml:"cone_value,omitempty"`
	ClearanceShank bool   `json:"clearance_shank" yaml:"clearance_shank"`
	ShankDiameter  string `json:"shank_diameter,omitempty" yaml:"shank_diameter,omitempty"`
	ShankLength    string `json:"shank_length,omitempty" yaml:"shank_length,omitempty"`
}

// Text returns the raw text of a field.
func (r RawParameters) Text(field values.FieldID) string {
	switch field {
	case values.FieldDiameter:
		return r.Diameter
	case values.FieldWorkingLength:
		return r.WorkingLength
	case values.FieldTotalLength:
		return r.TotalLength
	case values.FieldAngle:
		return r.Angle
	case values.FieldConeValue:
		return r.ConeValue
	case values.FieldShankDiameter:
		return r.ShankDiameter
	case values.FieldShankLength:
		return r.ShankLength
	default:
		panic(fmt.Sprintf("raw parameters: unknown field %d", int(field)))
	}
}

// SetText replaces the raw text of a field.
func (r *RawParameters) SetText(field values.FieldID, text string) {
	switch field {
	case values.FieldDiameter:
		r.Diameter = text
	case values.FieldWorkingLength:
		r.WorkingLength = text
	case values.FieldTotalLength:
		r.TotalLength = text
	case values.FieldAngle:
		r.Angle = text
	case values.FieldConeValue:
		r.ConeValue = text
	case values.FieldShankDiameter:
		r.ShankDiameter = text
	case values.FieldShankLength:
		r.ShankLength = text
	default:
		panic(fmt.Sprintf("raw parameters: unknown field %d", int(field)))
	}
}

// Enabled reports whether the flag gating a field is set.
// Always-required fields are always enabled.
func (r RawParameters) Enabled(field values.FieldID) bool {
	switch field.Feature() {
	case values.FeatureCone:
		return r.ClearanceCone
	case values.FeatureShank:
		return r.ClearanceShank
	default:
		return true
	}
}

// Feature collapses the flag pair into a single feature selection.
func (r RawParameters) Feature() values.Feature {
	return values.FeatureFromFlags(r.ClearanceCone, r.ClearanceShank)
}

// Resolved returns a copy whose flags agree with Feature, so at most one
// of them is set. The text of every field is kept.
func (r RawParameters) Resolved() RawParameters {
	f := r.Feature()
	r.ClearanceCone = f.HasCone()
	r.ClearanceShank = f.HasShank()
	return r
}

// CandidateSet is a named RawParameters loaded from a source such as a file.
type CandidateSet struct {
	Name       string        `json:"name" yaml:"name"`
	Source     string        `json:"source,omitempty" yaml:"source,omitempty"`
	Locale     string        `json:"locale,omitempty" yaml:"locale,omitempty"`
	Parameters RawParameters `json:"parameters" yaml:"parameters"`
}
