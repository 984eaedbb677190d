// Package execution provides domain models for validation run results.
package execution

import (
	"sort"
	"sync"
	"time"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// Mode tells how candidate sets were validated.
type Mode string

const (
	// ModeCommit commits field by field, then re-checks stored values
	ModeCommit Mode = "commit"
	// ModeCheck only reports against bounds primed from the root values
	ModeCheck Mode = "check"
)

// RunResult represents the complete result of validating candidate sets.
type RunResult struct {
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Version   string        `json:"drillspec_version,omitempty" yaml:"drillspec_version,omitempty"`
	Mode      Mode          `json:"mode" yaml:"mode"`
	Locale    string        `json:"locale" yaml:"locale"`
	Sets      []SetResult   `json:"sets" yaml:"sets"`
	Summary   RunSummary    `json:"summary" yaml:"summary"`
	Duration  time.Duration `json:"duration_ms" yaml:"duration_ms"`
	mu        sync.Mutex
	RunID     values.ReportID `json:"run_id" yaml:"run_id"`
}

// SetResult represents the validation of a single candidate set.
type SetResult struct {
	Index      int                             `json:"index" yaml:"index"`
	Name       string                          `json:"name" yaml:"name"`
	Source     string                          `json:"source,omitempty" yaml:"source,omitempty"`
	Locale     string                          `json:"locale" yaml:"locale"`
	Status     values.Status                   `json:"status" yaml:"status"`
	Feature    values.Feature                  `json:"feature" yaml:"feature"`
	Fields     []FieldResult                   `json:"fields" yaml:"fields"`
	Violations []validation.Violation          `json:"violations,omitempty" yaml:"violations,omitempty"`
	Bounds     map[values.FieldID]values.Bound `json:"bounds" yaml:"bounds"`
	Committed  map[values.FieldID]float64      `json:"committed,omitempty" yaml:"committed,omitempty"`
	Duration   time.Duration                   `json:"duration_ms" yaml:"duration_ms"`
}

// FieldResult represents the outcome of one field of a set.
type FieldResult struct {
	Field   values.FieldID       `json:"field" yaml:"field"`
	Name    string               `json:"name" yaml:"name"`
	Input   string               `json:"input" yaml:"input"`
	Unit    string               `json:"unit" yaml:"unit"`
	Status  values.Status        `json:"status" yaml:"status"`
	Value   float64              `json:"value" yaml:"value"`
	Kind    values.ViolationKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message string               `json:"message,omitempty" yaml:"message,omitempty"`
	Bound   values.Bound         `json:"bound" yaml:"bound"`
}

// RunSummary provides aggregate statistics about the run.
type RunSummary struct {
	TotalSets       int `json:"total_sets" yaml:"total_sets"`
	PassedSets      int `json:"passed_sets" yaml:"passed_sets"`
	FailedSets      int `json:"failed_sets" yaml:"failed_sets"`
	TotalFields     int `json:"total_fields" yaml:"total_fields"`
	PassedFields    int `json:"passed_fields" yaml:"passed_fields"`
	FailedFields    int `json:"failed_fields" yaml:"failed_fields"`
	SkippedFields   int `json:"skipped_fields" yaml:"skipped_fields"`
	TotalViolations int `json:"total_violations" yaml:"total_violations"`
	EmptyInputs     int `json:"empty_inputs" yaml:"empty_inputs"`
	FormatErrors    int `json:"format_errors" yaml:"format_errors"`
	RangeErrors     int `json:"range_errors" yaml:"range_errors"`
}

// NewRunResult creates a new run result.
func NewRunResult(version string, mode Mode, locale string) *RunResult {
	return NewRunResultWithID(values.NewReportID(), version, mode, locale)
}

// NewRunResultWithID creates a new run result with a specific ID.
func NewRunResultWithID(id values.ReportID, version string, mode Mode, locale string) *RunResult {
	return &RunResult{
		RunID:     id,
		Version:   version,
		Mode:      mode,
		Locale:    locale,
		StartTime: time.Now(),
		Sets:      make([]SetResult, 0),
	}
}

// AddSetResult adds a set result to the run.
// Thread-safe for concurrent calls during parallel validation.
func (r *RunResult) AddSetResult(sr SetResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sets = append(r.Sets, sr)
}

// Finalize completes the run and calculates the summary.
// Sets are sorted by input order for deterministic output.
func (r *RunResult) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.Slice(r.Sets, func(i, j int) bool {
		return r.Sets[i].Index < r.Sets[j].Index
	})

	r.calculateSummary()
}

// HasFailures returns true if any set failed.
func (r *RunResult) HasFailures() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.Sets {
		if s.Status.IsFailure() {
			return true
		}
	}
	return false
}

// calculateSummary computes summary statistics from set results.
func (r *RunResult) calculateSummary() {
	r.Summary = RunSummary{
		TotalSets: len(r.Sets),
	}

	for _, set := range r.Sets {
		switch set.Status {
		case values.StatusPass:
			r.Summary.PassedSets++
		case values.StatusFail:
			r.Summary.FailedSets++
		}

		r.Summary.TotalFields += len(set.Fields)
		for _, f := range set.Fields {
			switch f.Status {
			case values.StatusPass:
				r.Summary.PassedFields++
			case values.StatusFail:
				r.Summary.FailedFields++
			case values.StatusSkipped:
				r.Summary.SkippedFields++
			}
		}

		r.Summary.TotalViolations += len(set.Violations)
		for _, v := range set.Violations {
			switch v.Kind {
			case values.KindEmptyInput:
				r.Summary.EmptyInputs++
			case values.KindFormatError:
				r.Summary.FormatErrors++
			case values.KindRangeError:
				r.Summary.RangeErrors++
			}
		}
	}
}

// NewSetResult assembles the report of one candidate from its field
// outcomes, its violations and the parameter set they were checked
// against. A field is failed when any violation names it, so zero
// guards and stale stored values show up on the field they concern.
func NewSetResult(index int, cs entities.CandidateSet, outcomes []validation.NamedFieldOutcome, violations []validation.Violation, params entities.ParameterReader) SetResult {
	violated := make(map[values.FieldID]validation.Violation, len(violations))
	for _, v := range violations {
		if _, seen := violated[v.Field]; !seen {
			violated[v.Field] = v
		}
	}

	fields := make([]FieldResult, 0, len(outcomes))
	statuses := make([]values.Status, 0, len(outcomes))
	for _, o := range outcomes {
		fr := FieldResult{
			Field: o.Field,
			Name:  o.Name,
			Input: cs.Parameters.Text(o.Field),
			Unit:  o.Field.Unit(),
			Value: o.Outcome.Value,
			Bound: params.Bound(o.Field),
		}

		v, bad := violated[o.Field]
		switch {
		case !o.Enabled:
			fr.Status = values.StatusSkipped
		case bad:
			fr.Status = values.StatusFail
			fr.Kind = v.Kind
			fr.Message = v.Message
		default:
			fr.Status = values.StatusPass
		}
		fields = append(fields, fr)
		statuses = append(statuses, fr.Status)
	}

	status := values.Aggregate(statuses...)
	if len(violations) > 0 {
		status = values.StatusFail
	}

	sr := SetResult{
		Index:      index,
		Name:       cs.Name,
		Source:     cs.Source,
		Locale:     cs.Locale,
		Status:     status,
		Feature:    params.Feature(),
		Fields:     fields,
		Violations: violations,
		Bounds:     params.Bounds(),
	}
	if status.IsSuccess() {
		sr.Committed = params.Values()
	}
	return sr
}

// Messages returns every violation message of the set, in order.
func (s SetResult) Messages() []string {
	return validation.Messages(s.Violations)
}

// Input returns the raw text entered for field, or "" when the field is
// not part of the set.
func (s SetResult) Input(field values.FieldID) string {
	for _, f := range s.Fields {
		if f.Field == field {
			return f.Input
		}
	}
	return ""
}
