// Package services contains application use cases.
package services

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
)

// SetEvaluator validates one candidate set on a fresh parameter set.
// It is safe for concurrent use because every call owns its ParameterSet.
type SetEvaluator struct {
	locale language.Tag
	logger *slog.Logger
}

// NewSetEvaluator creates an evaluator parsing numbers in locale unless a
// candidate names its own.
func NewSetEvaluator(locale language.Tag, logger *slog.Logger) *SetEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetEvaluator{locale: locale, logger: logger}
}

// Locale returns the default locale.
func (e *SetEvaluator) Locale() language.Tag { return e.locale }

// WithLocale returns a copy of the evaluator using another default locale.
func (e *SetEvaluator) WithLocale(locale language.Tag) *SetEvaluator {
	return &SetEvaluator{locale: locale, logger: e.logger}
}

// FormatFor resolves the number format of a candidate.
func (e *SetEvaluator) FormatFor(cs entities.CandidateSet) (validation.NumberFormat, error) {
	if cs.Locale == "" {
		return validation.NewNumberFormat(e.locale), nil
	}
	tag, err := validation.ParseLocale(cs.Locale)
	if err != nil {
		return validation.NumberFormat{}, fmt.Errorf("candidate %q: invalid locale %q: %w", cs.Name, cs.Locale, err)
	}
	return validation.NewNumberFormat(tag), nil
}

// Evaluate validates cs in the given mode and returns its report together
// with the parameter set it was checked against.
//
// In commit mode the candidate is committed field by field; once every
// field passed, the stored values are re-checked against the final bounds.
// In check mode the root values are primed first and every field is then
// reported against the resulting bounds without committing anything.
// A candidate with both flags set is evaluated as a shank drill.
func (e *SetEvaluator) Evaluate(index int, cs entities.CandidateSet, mode execution.Mode) (execution.SetResult, *entities.ParameterSet, error) {
	start := time.Now()

	format, err := e.FormatFor(cs)
	if err != nil {
		return execution.SetResult{}, nil, err
	}
	cs.Locale = format.Tag().String()

	params := entities.NewParameterSet()
	batch := validation.NewBatchValidatorFor(params, format, validation.WithLogger(e.logger))
	raw := cs.Parameters.Resolved()

	var (
		outcomes   []validation.NamedFieldOutcome
		violations []validation.Violation
	)
	switch mode {
	case execution.ModeCommit, "":
		committed := batch.Commit(raw)
		outcomes = committed.Outcomes
		violations = committed.Violations
		if committed.AllValid {
			violations = append(violations, batch.CheckViolations()...)
		}
	case execution.ModeCheck:
		batch.PrimeRoots(raw)
		params.SetFeature(raw.Feature())
		outcomes = batch.ValidateAllFields(raw)
		violations = batch.Violations(raw)
	default:
		return execution.SetResult{}, nil, fmt.Errorf("unknown validation mode %q", mode)
	}

	sr := execution.NewSetResult(index, cs, outcomes, violations, params)
	if mode == execution.ModeCheck {
		sr.Committed = nil
	}
	sr.Duration = time.Since(start)

	e.logger.Debug("candidate evaluated",
		"name", cs.Name,
		"mode", string(mode),
		"status", string(sr.Status),
		"violations", len(sr.Violations))
	return sr, params, nil
}
