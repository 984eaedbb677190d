package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// PresetSpecification defines a condition that a preset must meet.
type PresetSpecification interface {
	// IsSatisfiedBy checks if the preset meets the specification.
	// Returns true if satisfied, along with a reason if not (or empty if satisfied).
	IsSatisfiedBy(p entities.Preset) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []PresetSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...PresetSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(p entities.Preset) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(p); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// FeatureSpecification includes only presets with one of the given features.
type FeatureSpecification struct {
	features map[values.Feature]bool
}

// NewFeatureSpecification creates a new FeatureSpecification.
func NewFeatureSpecification(features map[values.Feature]bool) *FeatureSpecification {
	return &FeatureSpecification{features: features}
}

// IsSatisfiedBy checks the preset feature.
func (s *FeatureSpecification) IsSatisfiedBy(p entities.Preset) (bool, string) {
	if len(s.features) == 0 || s.features[p.FeatureValue()] {
		return true, ""
	}
	return false, fmt.Sprintf("feature %s not selected", p.FeatureValue())
}

// DiameterSpecification includes only presets whose diameter lies in a bound.
type DiameterSpecification struct {
	bound values.Bound
}

// NewDiameterSpecification creates a new DiameterSpecification.
func NewDiameterSpecification(b values.Bound) *DiameterSpecification {
	return &DiameterSpecification{bound: b}
}

// IsSatisfiedBy checks the preset diameter.
func (s *DiameterSpecification) IsSatisfiedBy(p entities.Preset) (bool, string) {
	if s.bound.Contains(p.Diameter) {
		return true, ""
	}
	return false, fmt.Sprintf("diameter %g outside %s", p.Diameter, s.bound)
}

// ExpressionSpecification filters presets using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the preset.
func (s *ExpressionSpecification) IsSatisfiedBy(p entities.Preset) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	output, err := expr.Run(s.program, NewPresetEnv(p))
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}

	if !result {
		return false, "excluded by --filter expression"
	}

	return true, ""
}
