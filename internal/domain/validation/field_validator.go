package validation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// FieldValidator converts raw text into range-checked values. Each call is
// independent; the only state read is the live bounds of the parameter set.
type FieldValidator struct {
	params *entities.ParameterSet
	format NumberFormat
}

// Option configures a FieldValidator.
type Option func(*FieldValidator)

// WithLocale parses and formats numbers in the given locale.
func WithLocale(tag language.Tag) Option {
	return func(v *FieldValidator) {
		v.format = NewNumberFormat(tag)
	}
}

// WithNumberFormat uses a prepared NumberFormat.
func WithNumberFormat(f NumberFormat) Option {
	return func(v *FieldValidator) {
		v.format = f
	}
}

// NewFieldValidator creates a validator reading bounds from params.
// Numbers are parsed in DefaultLocale unless an option says otherwise.
func NewFieldValidator(params *entities.ParameterSet, opts ...Option) *FieldValidator {
	if params == nil {
		panic("validation: nil parameter set")
	}
	v := &FieldValidator{
		params: params,
		format: NewNumberFormat(DefaultLocale),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Params returns the parameter set whose bounds are used.
func (v *FieldValidator) Params() *entities.ParameterSet { return v.params }

// Format returns the active number format.
func (v *FieldValidator) Format() NumberFormat { return v.format }

// Validate checks one piece of text against [lo, hi], both ends inclusive.
// Blank text fails only when required; otherwise it is inert and yields 0.
func (v *FieldValidator) Validate(text, fieldName string, lo, hi float64, unit string, required bool) FieldOutcome {
	if strings.TrimSpace(text) == "" {
		if required {
			return Failure(values.KindEmptyInput, fmt.Sprintf("%s не может быть пустым", fieldName))
		}
		return Success(0)
	}

	value, err := v.format.Parse(text)
	if err != nil {
		return Failure(values.KindFormatError, fmt.Sprintf("Неверный формат числа в поле '%s'", fieldName))
	}

	if value < lo || value > hi {
		return Failure(values.KindRangeError, v.rangeMessage(fieldName, lo, hi, unit))
	}
	return Success(value)
}

func (v *FieldValidator) rangeMessage(fieldName string, lo, hi float64, unit string) string {
	return fmt.Sprintf("%s должен быть в диапазоне %s-%s %s",
		fieldName, v.format.FormatBound(lo), v.format.FormatBound(hi), unit)
}

// ValidateField validates the text of any field against its live bound.
// A gated field whose feature is disabled succeeds with 0 without parsing.
func (v *FieldValidator) ValidateField(field values.FieldID, text string, enabled bool) FieldOutcome {
	rule := ruleFor(field)
	if field.IsOptional() && !enabled {
		return Success(0)
	}
	return v.Validate(text, field.DisplayName(), rule.min(v.params), rule.max(v.params), field.Unit(), true)
}

// ValidateDiameter validates the diameter text.
func (v *FieldValidator) ValidateDiameter(text string) FieldOutcome {
	return v.ValidateField(values.FieldDiameter, text, true)
}

// ValidateWorkingLength validates the working length text.
func (v *FieldValidator) ValidateWorkingLength(text string) FieldOutcome {
	return v.ValidateField(values.FieldWorkingLength, text, true)
}

// ValidateTotalLength validates the total length text.
func (v *FieldValidator) ValidateTotalLength(text string) FieldOutcome {
	return v.ValidateField(values.FieldTotalLength, text, true)
}

// ValidateAngle validates the point angle text.
func (v *FieldValidator) ValidateAngle(text string) FieldOutcome {
	return v.ValidateField(values.FieldAngle, text, true)
}

// ValidateConeValue validates the cone text when the cone is enabled.
func (v *FieldValidator) ValidateConeValue(text string, enabled bool) FieldOutcome {
	return v.ValidateField(values.FieldConeValue, text, enabled)
}

// ValidateShankDiameter validates the shank diameter text when the shank is enabled.
func (v *FieldValidator) ValidateShankDiameter(text string, enabled bool) FieldOutcome {
	return v.ValidateField(values.FieldShankDiameter, text, enabled)
}

// ValidateShankLength validates the shank length text when the shank is enabled.
func (v *FieldValidator) ValidateShankLength(text string, enabled bool) FieldOutcome {
	return v.ValidateField(values.FieldShankLength, text, enabled)
}

// CheckValue validates an already numeric value against the live bound,
// producing the same range message as Validate.
func (v *FieldValidator) CheckValue(field values.FieldID, value float64) FieldOutcome {
	rule := ruleFor(field)
	lo, hi := rule.min(v.params), rule.max(v.params)
	if value < lo || value > hi {
		return Failure(values.KindRangeError, v.rangeMessage(field.DisplayName(), lo, hi, field.Unit()))
	}
	return Success(value)
}
