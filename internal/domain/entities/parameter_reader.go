package entities

import "github.com/reglet-dev/drillspec/internal/domain/values"

// ParameterReader provides read-only access to a parameter set.
// Model builders receive this view so they cannot mutate the values
// they were promised are range-consistent.
type ParameterReader interface {
	// Values
	Angle() float64
	Diameter() float64
	WorkingLength() float64
	TotalLength() float64
	ConeValue() float64
	ShankDiameter() float64
	ShankLength() float64
	Value(field values.FieldID) float64
	Values() map[values.FieldID]float64

	// Feature selection
	Feature() values.Feature
	ClearanceConeEnabled() bool
	ClearanceShankEnabled() bool
	IsEnabled(field values.FieldID) bool

	// Bounds
	Bound(field values.FieldID) values.Bound
	Bounds() map[values.FieldID]values.Bound
}

var _ ParameterReader = (*ParameterSet)(nil)
