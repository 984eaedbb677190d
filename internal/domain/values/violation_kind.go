package values

import (
	"fmt"
	"strings"
)

// ViolationKind classifies why a field failed validation.
type ViolationKind int

const (
	// KindNone marks a successful outcome
	KindNone ViolationKind = iota
	// KindEmptyInput means a required field had no text
	KindEmptyInput
	// KindFormatError means the text was not a number in the active locale
	KindFormatError
	// KindRangeError means the number fell outside the live bound,
	// or an enabled feature was given a zero magnitude
	KindRangeError
)

// NewViolationKind creates a ViolationKind from string
func NewViolationKind(s string) (ViolationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KindNone, nil
	case "empty_input":
		return KindEmptyInput, nil
	case "format_error":
		return KindFormatError, nil
	case "range_error":
		return KindRangeError, nil
	default:
		return KindNone, fmt.Errorf("invalid violation kind: %s", s)
	}
}

// String returns the string representation
func (k ViolationKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindFormatError:
		return "format_error"
	case KindRangeError:
		return "range_error"
	default:
		return "none"
	}
}

// IsViolation returns true for any kind except KindNone
func (k ViolationKind) IsViolation() bool {
	return k != KindNone
}

// MarshalText implements encoding.TextMarshaler
func (k ViolationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ViolationKind) UnmarshalText(data []byte) error {
	kind, err := NewViolationKind(string(data))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
