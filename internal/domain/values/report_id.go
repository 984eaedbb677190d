package values

import (
	"fmt"

	"github.com/google/uuid"
)

// ReportID uniquely identifies one validation run.
type ReportID struct {
	value uuid.UUID
}

// NewReportID creates a new random report ID
func NewReportID() ReportID {
	return ReportID{value: uuid.New()}
}

// ParseReportID parses a string into a ReportID
func ParseReportID(s string) (ReportID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ReportID{}, fmt.Errorf("invalid report ID: %w", err)
	}
	return ReportID{value: id}, nil
}

// MustParseReportID parses a string or panics (for tests only)
func MustParseReportID(s string) ReportID {
	id, err := ParseReportID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation
func (r ReportID) String() string {
	return r.value.String()
}

// IsZero returns true if this is the zero value
func (r ReportID) IsZero() bool {
	return r.value == uuid.Nil
}

// Equals checks if two ReportIDs are equal
func (r ReportID) Equals(other ReportID) bool {
	return r.value == other.value
}

// MarshalText implements encoding.TextMarshaler
func (r ReportID) MarshalText() ([]byte, error) {
	return []byte(r.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *ReportID) UnmarshalText(data []byte) error {
	id, err := ParseReportID(string(data))
	if err != nil {
		return err
	}
	*r = id
	return nil
}
