package validation

import (
	"fmt"
	"log/slog"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// rootFields are the values every derived bound is computed from.
var rootFields = []values.FieldID{
	values.FieldDiameter,
	values.FieldWorkingLength,
	values.FieldTotalLength,
}

// BatchValidator validates a whole candidate parameter set in one pass
// and reports every violation in field declaration order.
type BatchValidator struct {
	fields *FieldValidator
	logger *slog.Logger
}

// BatchOption configures a BatchValidator.
type BatchOption func(*BatchValidator)

// WithLogger sets the logger used for debug summaries.
func WithLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchValidator) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchValidator creates a batch validator on top of fields.
func NewBatchValidator(fields *FieldValidator, opts ...BatchOption) *BatchValidator {
	b := &BatchValidator{
		fields: fields,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBatchValidatorFor is a shortcut wiring a field validator for params.
func NewBatchValidatorFor(params *entities.ParameterSet, format NumberFormat, opts ...BatchOption) *BatchValidator {
	return NewBatchValidator(NewFieldValidator(params, WithNumberFormat(format)), opts...)
}

// Fields returns the underlying field validator.
func (b *BatchValidator) Fields() *FieldValidator { return b.fields }

// Params returns the parameter set being validated.
func (b *BatchValidator) Params() *entities.ParameterSet { return b.fields.params }

// ValidateAllFields runs every field check against raw, in declaration order.
func (b *BatchValidator) ValidateAllFields(raw entities.RawParameters) []NamedFieldOutcome {
	fields := values.AllFields()
	out := make([]NamedFieldOutcome, 0, len(fields))
	for _, f := range fields {
		enabled := raw.Enabled(f)
		out = append(out, NamedFieldOutcome{
			Field:   f,
			Name:    f.DisplayName(),
			Enabled: enabled,
			Outcome: b.fields.ValidateField(f, raw.Text(f), enabled),
		})
	}
	return out
}

// Violations returns every field failure followed by at most one
// zero-magnitude guard.
func (b *BatchValidator) Violations(raw entities.RawParameters) []Violation {
	violations := failures(b.ValidateAllFields(raw))
	if g, ok := b.zeroGuard(raw); ok {
		violations = append(violations, g)
	}

	b.logger.Debug("batch validation complete",
		"violations", len(violations),
		"feature", raw.Feature().String())
	return violations
}

// ValidateAll returns the message of every violation in raw. An empty
// result means the candidate passed.
func (b *BatchValidator) ValidateAll(raw entities.RawParameters) []string {
	return Messages(b.Violations(raw))
}

// CommitResult is the outcome of a best-effort commit.
type CommitResult struct {
	AllValid   bool                `json:"all_valid" yaml:"all_valid"`
	Outcomes   []NamedFieldOutcome `json:"outcomes" yaml:"outcomes"`
	Violations []Violation         `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// Commit validates raw field by field and writes every valid value into
// the parameter set as it goes, so later fields are checked against
// bounds derived from the earlier ones. A failing field is left at its
// previous value and does not stop the others. Values of a disabled
// feature are not touched.
func (b *BatchValidator) Commit(raw entities.RawParameters) CommitResult {
	p := b.fields.params
	result := CommitResult{AllValid: true}

	for _, f := range values.AllFields() {
		switch f {
		case values.FieldConeValue:
			p.SetClearanceCone(raw.ClearanceCone)
		case values.FieldShankDiameter:
			p.SetClearanceShank(raw.ClearanceShank)
		}

		enabled := raw.Enabled(f)
		outcome := b.fields.ValidateField(f, raw.Text(f), enabled)
		result.Outcomes = append(result.Outcomes, NamedFieldOutcome{
			Field:   f,
			Name:    f.DisplayName(),
			Enabled: enabled,
			Outcome: outcome,
		})

		if !outcome.Valid {
			result.AllValid = false
			result.Violations = append(result.Violations, Violation{Field: f, Kind: outcome.Kind, Message: outcome.Message})
			continue
		}
		if enabled {
			p.SetValue(f, outcome.Value)
		}
	}

	if g, ok := b.zeroGuard(raw); ok {
		result.AllValid = false
		result.Violations = append(result.Violations, g)
	}

	b.logger.Debug("parameters committed",
		"all_valid", result.AllValid,
		"violations", len(result.Violations),
		"feature", p.Feature().String())
	return result
}

// TryUpdateParameters performs a best-effort commit and reports whether
// every applicable field validated, along with all messages.
func (b *BatchValidator) TryUpdateParameters(raw entities.RawParameters) (bool, []string) {
	result := b.Commit(raw)
	return result.AllValid, Messages(result.Violations)
}

// CheckViolations re-checks the values stored in the parameter set
// against the live bounds. It catches values that went stale after a
// root value moved, and skips fields of a disabled feature.
func (b *BatchValidator) CheckViolations() []Violation {
	p := b.fields.params
	var violations []Violation
	for _, f := range values.AllFields() {
		if !p.IsEnabled(f) {
			continue
		}
		if o := b.fields.CheckValue(f, p.Value(f)); !o.Valid {
			violations = append(violations, Violation{Field: f, Kind: o.Kind, Message: o.Message})
		}
	}
	return violations
}

// CheckParameters returns the messages of CheckViolations.
func (b *BatchValidator) CheckParameters() []string {
	return Messages(b.CheckViolations())
}

// PrimeRoots stores every parseable root value of raw without range
// checking, so the derived bounds follow what the user typed. Unparseable
// roots keep their previous value.
func (b *BatchValidator) PrimeRoots(raw entities.RawParameters) {
	p := b.fields.params
	for _, f := range rootFields {
		if v, err := b.fields.format.Parse(raw.Text(f)); err == nil {
			p.SetValue(f, v)
		}
	}
}

// zeroGuard reports the first enabled feature field whose text parses to
// exactly zero. Only one guard is ever reported, checked in the order
// cone value, shank diameter, shank length.
func (b *BatchValidator) zeroGuard(raw entities.RawParameters) (Violation, bool) {
	for _, f := range values.AllFields() {
		if !ruleFor(f).zeroGuard || !raw.Enabled(f) {
			continue
		}
		v, err := b.fields.format.Parse(raw.Text(f))
		if err == nil && v == 0 {
			return Violation{
				Field:   f,
				Kind:    values.KindRangeError,
				Message: fmt.Sprintf("%s не может быть равен 0 при включенном флаге", f.DisplayName()),
				Guard:   true,
			}, true
		}
	}
	return Violation{}, false
}

func failures(outcomes []NamedFieldOutcome) []Violation {
	var out []Violation
	for _, o := range outcomes {
		if !o.Outcome.Valid {
			out = append(out, Violation{Field: o.Field, Kind: o.Outcome.Kind, Message: o.Outcome.Message})
		}
	}
	return out
}
