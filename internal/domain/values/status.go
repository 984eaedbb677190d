package values

import (
	"fmt"
)

// Status represents the outcome of a field or a whole parameter set.
type Status string

const (
	// StatusPass indicates every applicable check passed
	StatusPass Status = "pass"
	// StatusFail indicates at least one violation
	StatusFail Status = "fail"
	// StatusSkipped indicates a field gated by a disabled feature
	StatusSkipped Status = "skipped"
)

// Precedence returns the numeric precedence of this status.
// Higher values win when field statuses are aggregated into a set status.
//
// Precedence: Fail (2) > Pass (1) > Skipped (0)
func (s Status) Precedence() int {
	switch s {
	case StatusFail:
		return 2
	case StatusPass:
		return 1
	case StatusSkipped:
		return 0
	default:
		return -1
	}
}

// Aggregate returns the status with the highest precedence.
// An empty input aggregates to StatusSkipped.
func Aggregate(statuses ...Status) Status {
	result := StatusSkipped
	for _, s := range statuses {
		if s.Precedence() > result.Precedence() {
			result = s
		}
	}
	return result
}

// IsFailure returns true if this status represents a failure
func (s Status) IsFailure() bool {
	return s == StatusFail
}

// IsSuccess returns true if this status represents success
func (s Status) IsSuccess() bool {
	return s == StatusPass
}

// IsSkipped returns true if this status represents a skip
func (s Status) IsSkipped() bool {
	return s == StatusSkipped
}

// Validate returns an error if the status value is invalid
func (s Status) Validate() error {
	switch s {
	case StatusPass, StatusFail, StatusSkipped:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}
