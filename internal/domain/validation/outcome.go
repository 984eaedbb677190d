package validation

import "github.com/reglet-dev/drillspec/internal/domain/values"

// FieldOutcome is the immutable result of validating one field:
// either a parsed value or a failure with a human-readable message.
type FieldOutcome struct {
	Valid   bool                 `json:"valid" yaml:"valid"`
	Value   float64              `json:"value" yaml:"value"`
	Message string               `json:"message,omitempty" yaml:"message,omitempty"`
	Kind    values.ViolationKind `json:"kind" yaml:"kind"`
}

// Success creates a successful outcome carrying v.
func Success(v float64) FieldOutcome {
	return FieldOutcome{Valid: true, Value: v, Kind: values.KindNone}
}

// Failure creates a failed outcome of the given kind.
func Failure(kind values.ViolationKind, message string) FieldOutcome {
	return FieldOutcome{Valid: false, Message: message, Kind: kind}
}

// NamedFieldOutcome pairs a field with its outcome for reporting.
type NamedFieldOutcome struct {
	Field   values.FieldID `json:"field" yaml:"field"`
	Name    string         `json:"name" yaml:"name"`
	Enabled bool           `json:"enabled" yaml:"enabled"`
	Outcome FieldOutcome   `json:"outcome" yaml:"outcome"`
}

// Violation is one entry of a batch report.
type Violation struct {
	Field   values.FieldID       `json:"field" yaml:"field"`
	Kind    values.ViolationKind `json:"kind" yaml:"kind"`
	Message string               `json:"message" yaml:"message"`
	// Guard marks the zero-magnitude check of an enabled feature.
	Guard bool `json:"guard,omitempty" yaml:"guard,omitempty"`
}

// Messages extracts the message of every violation, keeping order.
func Messages(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Message)
	}
	return out
}
