// Package entities contains domain entities for the drill parameter model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"

	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// Domain constants. Angle and diameter bounds never move; the total
// length ceiling is fixed by the blank stock.
const (
	MinAngleDegrees      = 30.0
	MaxAngleDegrees      = 60.0
	MinDiameterMM        = 1.0
	MaxDiameterMM        = 20.0
	MaxTotalLengthMM     = 205.0
	TotalLengthAllowance = 20.0

	DefaultAngle    = 45.0
	DefaultDiameter = 10.0
)

// Coefficients of the derived bounds, all relative to the diameter d
// or to the tail length L-l.
const (
	workingLengthMinFactor = 3.0
	workingLengthMaxFactor = 8.0
	coneMinFactor          = 0.25
	coneMaxFactor          = 0.75
	shankDiameterMinFactor = 1.25
	shankDiameterMaxFactor = 2.0
	shankLengthMinFactor   = 2.0
	shankLengthMaxFactor   = 3.0
)

// derivedBounds holds every bound that is a function of the root values.
type derivedBounds struct {
	workingLength values.Bound
	totalLength   values.Bound
	coneValue     values.Bound
	shankDiameter values.Bound
	shankLength   values.Bound
}

// ParameterSet is the parameter aggregate of one drill.
// This is the aggregate root of the validation bounded context.
//
// Invariants Enforced:
//   - At most one optional feature (cone or shank) is selected
//   - Derived bounds are recomputed on every mutation of diameter,
//     working length or total length, so readers never see stale bounds
//   - Setters store values verbatim; range checking is left to validation
//
// A ParameterSet is not safe for concurrent use. Callers that share
// one must synchronize externally; Clone gives each caller its own copy.
type ParameterSet struct {
	angle         float64
	diameter      float64
	workingLength float64
	totalLength   float64

	feature       values.Feature
	coneValue     float64
	shankDiameter float64
	shankLength   float64

	bounds derivedBounds
}

// NewParameterSet creates a parameter set at its defaults: diameter 10,
// working length at the midpoint of its range, the shortest total length
// and the clearance cone selected.
func NewParameterSet() *ParameterSet {
	p := &ParameterSet{
		angle:    DefaultAngle,
		diameter: DefaultDiameter,
		feature:  values.FeatureCone,
	}
	p.recompute()

	p.workingLength = p.bounds.workingLength.Midpoint()
	p.totalLength = min(p.workingLength+TotalLengthAllowance, MaxTotalLengthMM)
	p.recompute()

	p.coneValue = p.bounds.coneValue.Midpoint()
	p.shankDiameter = p.bounds.shankDiameter.Midpoint()
	p.shankLength = p.bounds.shankLength.Midpoint()
	return p
}

// recompute derives every dependent bound from d, l and L.
func (p *ParameterSet) recompute() {
	d, l, total := p.diameter, p.workingLength, p.totalLength
	tail := total - l

	p.bounds = derivedBounds{
		workingLength: values.Bound{Min: workingLengthMinFactor * d, Max: workingLengthMaxFactor * d},
		totalLength:   values.Bound{Min: l + TotalLengthAllowance, Max: MaxTotalLengthMM},
		coneValue:     values.Bound{Min: coneMinFactor * d, Max: coneMaxFactor * d},
		shankDiameter: values.Bound{Min: shankDiameterMinFactor * d, Max: shankDiameterMaxFactor * d},
		shankLength:   values.Bound{Min: shankLengthMinFactor * tail, Max: shankLengthMaxFactor * tail},
	}
}

// ===== SETTERS =====

// SetAngle stores the point angle in degrees.
func (p *ParameterSet) SetAngle(v float64) {
	p.angle = v
}

// SetDiameter stores the diameter and recomputes dependent bounds.
func (p *ParameterSet) SetDiameter(v float64) {
	p.diameter = v
	p.recompute()
}

// SetWorkingLength stores the working length and recomputes dependent bounds.
func (p *ParameterSet) SetWorkingLength(v float64) {
	p.workingLength = v
	p.recompute()
}

// SetTotalLength stores the total length and recomputes dependent bounds.
func (p *ParameterSet) SetTotalLength(v float64) {
	p.totalLength = v
	p.recompute()
}

// SetConeValue stores the clearance cone value.
func (p *ParameterSet) SetConeValue(v float64) {
	p.coneValue = v
}

// SetShankDiameter stores the shank diameter.
func (p *ParameterSet) SetShankDiameter(v float64) {
	p.shankDiameter = v
}

// SetShankLength stores the shank length.
func (p *ParameterSet) SetShankLength(v float64) {
	p.shankLength = v
}

// SetClearanceCone enables or disables the clearance cone.
// Enabling it deselects the shank; disabling it leaves the shank alone.
func (p *ParameterSet) SetClearanceCone(enabled bool) {
	switch {
	case enabled:
		p.feature = values.FeatureCone
	case p.feature == values.FeatureCone:
		p.feature = values.FeatureNone
	}
}

// SetClearanceShank enables or disables the shank.
// Enabling it deselects the cone; disabling it leaves the cone alone.
func (p *ParameterSet) SetClearanceShank(enabled bool) {
	switch {
	case enabled:
		p.feature = values.FeatureShank
	case p.feature == values.FeatureShank:
		p.feature = values.FeatureNone
	}
}

// SetFeature selects the optional feature directly.
// Stored cone and shank values are kept so a re-selected feature
// is checked against its current bound.
func (p *ParameterSet) SetFeature(f values.Feature) {
	p.feature = f
}

// SetValue dispatches to the setter of the given field.
func (p *ParameterSet) SetValue(field values.FieldID, v float64) {
	switch field {
	case values.FieldDiameter:
		p.SetDiameter(v)
	case values.FieldWorkingLength:
		p.SetWorkingLength(v)
	case values.FieldTotalLength:
		p.SetTotalLength(v)
	case values.FieldAngle:
		p.SetAngle(v)
	case values.FieldConeValue:
		p.SetConeValue(v)
	case values.FieldShankDiameter:
		p.SetShankDiameter(v)
	case values.FieldShankLength:
		p.SetShankLength(v)
	default:
		panic(fmt.Sprintf("parameter set: unknown field %d", int(field)))
	}
}

// ===== VALUE ACCESSORS =====

// Angle returns the point angle in degrees.
func (p *ParameterSet) Angle() float64 { return p.angle }

// Diameter returns the drill diameter.
func (p *ParameterSet) Diameter() float64 { return p.diameter }

// WorkingLength returns the length of the fluted section.
func (p *ParameterSet) WorkingLength() float64 { return p.workingLength }

// TotalLength returns the overall length.
func (p *ParameterSet) TotalLength() float64 { return p.totalLength }

// ConeValue returns the stored clearance cone value.
func (p *ParameterSet) ConeValue() float64 { return p.coneValue }

// ShankDiameter returns the stored shank diameter.
func (p *ParameterSet) ShankDiameter() float64 { return p.shankDiameter }

// ShankLength returns the stored shank length.
func (p *ParameterSet) ShankLength() float64 { return p.shankLength }

// Feature returns the selected optional feature.
func (p *ParameterSet) Feature() values.Feature { return p.feature }

// ClearanceConeEnabled reports whether the clearance cone is selected.
func (p *ParameterSet) ClearanceConeEnabled() bool { return p.feature.HasCone() }

// ClearanceShankEnabled reports whether the shank is selected.
func (p *ParameterSet) ClearanceShankEnabled() bool { return p.feature.HasShank() }

// Value returns the stored value of the given field.
func (p *ParameterSet) Value(field values.FieldID) float64 {
	switch field {
	case values.FieldDiameter:
		return p.diameter
	case values.FieldWorkingLength:
		return p.workingLength
	case values.FieldTotalLength:
		return p.totalLength
	case values.FieldAngle:
		return p.angle
	case values.FieldConeValue:
		return p.coneValue
	case values.FieldShankDiameter:
		return p.shankDiameter
	case values.FieldShankLength:
		return p.shankLength
	default:
		panic(fmt.Sprintf("parameter set: unknown field %d", int(field)))
	}
}

// IsEnabled reports whether a field takes part in validation under
// the current feature selection.
func (p *ParameterSet) IsEnabled(field values.FieldID) bool {
	f := field.Feature()
	return f == values.FeatureNone || f == p.feature
}

// ===== BOUND ACCESSORS =====

// MinAngle returns the lower angle bound.
func (p *ParameterSet) MinAngle() float64 { return MinAngleDegrees }

// MaxAngle returns the upper angle bound.
func (p *ParameterSet) MaxAngle() float64 { return MaxAngleDegrees }

// MinDiameter returns the lower diameter bound.
func (p *ParameterSet) MinDiameter() float64 { return MinDiameterMM }

// MaxDiameter returns the upper diameter bound.
func (p *ParameterSet) MaxDiameter() float64 { return MaxDiameterMM }

// MinWorkingLength returns 3d.
func (p *ParameterSet) MinWorkingLength() float64 { return p.bounds.workingLength.Min }

// MaxWorkingLength returns 8d.
func (p *ParameterSet) MaxWorkingLength() float64 { return p.bounds.workingLength.Max }

// MinTotalLength returns l+20.
func (p *ParameterSet) MinTotalLength() float64 { return p.bounds.totalLength.Min }

// MaxTotalLength returns the fixed ceiling.
func (p *ParameterSet) MaxTotalLength() float64 { return p.bounds.totalLength.Max }

// MinConeValue returns 0.25d.
func (p *ParameterSet) MinConeValue() float64 { return p.bounds.coneValue.Min }

// MaxConeValue returns 0.75d.
func (p *ParameterSet) MaxConeValue() float64 { return p.bounds.coneValue.Max }

// MinShankDiameter returns 1.25d.
func (p *ParameterSet) MinShankDiameter() float64 { return p.bounds.shankDiameter.Min }

// MaxShankDiameter returns 2d.
func (p *ParameterSet) MaxShankDiameter() float64 { return p.bounds.shankDiameter.Max }

// MinShankLength returns 2(L-l).
func (p *ParameterSet) MinShankLength() float64 { return p.bounds.shankLength.Min }

// MaxShankLength returns 3(L-l).
func (p *ParameterSet) MaxShankLength() float64 { return p.bounds.shankLength.Max }

// Bound returns the live bound of the given field.
func (p *ParameterSet) Bound(field values.FieldID) values.Bound {
	switch field {
	case values.FieldDiameter:
		return values.Bound{Min: MinDiameterMM, Max: MaxDiameterMM}
	case values.FieldWorkingLength:
		return p.bounds.workingLength
	case values.FieldTotalLength:
		return p.bounds.totalLength
	case values.FieldAngle:
		return values.Bound{Min: MinAngleDegrees, Max: MaxAngleDegrees}
	case values.FieldConeValue:
		return p.bounds.coneValue
	case values.FieldShankDiameter:
		return p.bounds.shankDiameter
	case values.FieldShankLength:
		return p.bounds.shankLength
	default:
		panic(fmt.Sprintf("parameter set: unknown field %d", int(field)))
	}
}

// Bounds returns the live bound of every field.
func (p *ParameterSet) Bounds() map[values.FieldID]values.Bound {
	out := make(map[values.FieldID]values.Bound, len(values.AllFields()))
	for _, f := range values.AllFields() {
		out[f] = p.Bound(f)
	}
	return out
}

// Values returns the stored value of every field.
func (p *ParameterSet) Values() map[values.FieldID]float64 {
	out := make(map[values.FieldID]float64, len(values.AllFields()))
	for _, f := range values.AllFields() {
		out[f] = p.Value(f)
	}
	return out
}

// Clone returns an independent copy.
func (p *ParameterSet) Clone() *ParameterSet {
	c := *p
	return &c
}
