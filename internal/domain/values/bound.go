package values

import "fmt"

// Bound is an inclusive [Min, Max] range.
type Bound struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// NewBound creates a Bound, rejecting inverted ranges
func NewBound(lo, hi float64) (Bound, error) {
	if lo > hi {
		return Bound{}, fmt.Errorf("invalid bound: min %g greater than max %g", lo, hi)
	}
	return Bound{Min: lo, Max: hi}, nil
}

// Contains reports whether v lies inside the bound, both ends included
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Midpoint returns the center of the range
func (b Bound) Midpoint() float64 {
	return (b.Min + b.Max) / 2
}

// IsEmpty returns true when no value can satisfy the bound
func (b Bound) IsEmpty() bool {
	return b.Min > b.Max
}

// String returns the string representation
func (b Bound) String() string {
	return fmt.Sprintf("[%g, %g]", b.Min, b.Max)
}
