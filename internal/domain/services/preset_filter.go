// Package services contains domain services operating on presets and
// parameter names.
package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// PresetEnv defines the variables available during filter expression evaluation.
type PresetEnv struct {
	Name          string  `expr:"name"`
	Diameter      float64 `expr:"diameter"`
	WorkingLength float64 `expr:"working_length"`
	TotalLength   float64 `expr:"total_length"`
	Angle         float64 `expr:"angle"`
	Feature       string  `expr:"feature"`
	ConeValue     float64 `expr:"cone_value"`
	ShankDiameter float64 `expr:"shank_diameter"`
	ShankLength   float64 `expr:"shank_length"`
}

// NewPresetEnv builds the evaluation environment of a preset.
func NewPresetEnv(p entities.Preset) PresetEnv {
	return PresetEnv{
		Name:          p.Name,
		Diameter:      p.Diameter,
		WorkingLength: p.WorkingLength,
		TotalLength:   p.TotalLength,
		Angle:         p.Angle,
		Feature:       p.FeatureValue().String(),
		ConeValue:     p.ConeValue,
		ShankDiameter: p.ShankDiameter,
		ShankLength:   p.ShankLength,
	}
}

// CompilePresetFilter compiles a boolean expression over PresetEnv,
// e.g. `diameter >= 10 && feature == "shank"`.
func CompilePresetFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(PresetEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return program, nil
}

// PresetFilter selects presets by feature, diameter range and expression.
type PresetFilter struct {
	features      map[values.Feature]bool
	diameter      *values.Bound
	filterProgram *vm.Program
}

// NewPresetFilter initializes a new empty filter.
func NewPresetFilter() *PresetFilter {
	return &PresetFilter{
		features: make(map[values.Feature]bool),
	}
}

// WithFeatures includes only presets using one of these features.
func (f *PresetFilter) WithFeatures(features ...values.Feature) *PresetFilter {
	for _, feat := range features {
		f.features[feat] = true
	}
	return f
}

// WithDiameterRange includes only presets whose diameter lies in b.
func (f *PresetFilter) WithDiameterRange(b values.Bound) *PresetFilter {
	f.diameter = &b
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *PresetFilter) WithFilterExpression(program *vm.Program) *PresetFilter {
	f.filterProgram = program
	return f
}

// Matches evaluates whether a preset matches the filter criteria.
// It returns false with a reason when the preset is excluded.
func (f *PresetFilter) Matches(p entities.Preset) (bool, string) {
	var specs []PresetSpecification

	if len(f.features) > 0 {
		specs = append(specs, NewFeatureSpecification(f.features))
	}
	if f.diameter != nil {
		specs = append(specs, NewDiameterSpecification(*f.diameter))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	return NewAndSpecification(specs...).IsSatisfiedBy(p)
}

// Apply returns the matching presets in catalog order.
func (f *PresetFilter) Apply(presets []entities.Preset) []entities.Preset {
	out := make([]entities.Preset, 0, len(presets))
	for _, p := range presets {
		if ok, _ := f.Matches(p); ok {
			out = append(out, p)
		}
	}
	return out
}
