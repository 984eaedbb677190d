package validation

import (
	"fmt"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// fieldRule binds a field to its live bound accessors.
type fieldRule struct {
	field values.FieldID
	min   func(*entities.ParameterSet) float64
	max   func(*entities.ParameterSet) float64
	// zeroGuard fields reject an exact zero while their feature is on.
	zeroGuard bool
}

// fieldRules is indexed by FieldID and kept in declaration order.
var fieldRules = [...]fieldRule{
	values.FieldDiameter: {
		field: values.FieldDiameter,
		min:   (*entities.ParameterSet).MinDiameter,
		max:   (*entities.ParameterSet).MaxDiameter,
	},
	values.FieldWorkingLength: {
		field: values.FieldWorkingLength,
		min:   (*entities.ParameterSet).MinWorkingLength,
		max:   (*entities.ParameterSet).MaxWorkingLength,
	},
	values.FieldTotalLength: {
		field: values.FieldTotalLength,
		min:   (*entities.ParameterSet).MinTotalLength,
		max:   (*entities.ParameterSet).MaxTotalLength,
	},
	values.FieldAngle: {
		field: values.FieldAngle,
		min:   (*entities.ParameterSet).MinAngle,
		max:   (*entities.ParameterSet).MaxAngle,
	},
	values.FieldConeValue: {
		field:     values.FieldConeValue,
		min:       (*entities.ParameterSet).MinConeValue,
		max:       (*entities.ParameterSet).MaxConeValue,
		zeroGuard: true,
	},
	values.FieldShankDiameter: {
		field:     values.FieldShankDiameter,
		min:       (*entities.ParameterSet).MinShankDiameter,
		max:       (*entities.ParameterSet).MaxShankDiameter,
		zeroGuard: true,
	},
	values.FieldShankLength: {
		field:     values.FieldShankLength,
		min:       (*entities.ParameterSet).MinShankLength,
		max:       (*entities.ParameterSet).MaxShankLength,
		zeroGuard: true,
	},
}

func ruleFor(field values.FieldID) fieldRule {
	if !field.IsValid() {
		panic(fmt.Sprintf("validation: unknown field %d", int(field)))
	}
	return fieldRules[field]
}
