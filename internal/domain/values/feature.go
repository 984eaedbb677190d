package values

import (
	"fmt"
	"strings"
)

// Feature selects which optional drill feature is active.
// Cone and shank are mutually exclusive, so a single variant holds the choice.
type Feature int

const (
	FeatureNone Feature = iota
	FeatureCone
	FeatureShank
)

// NewFeature creates a Feature from string
func NewFeature(s string) (Feature, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FeatureNone, nil
	case "cone":
		return FeatureCone, nil
	case "shank":
		return FeatureShank, nil
	default:
		return FeatureNone, fmt.Errorf("invalid feature: %s", s)
	}
}

// FeatureFromFlags converts the legacy flag pair into a Feature.
// When both flags are set the shank wins, matching the order in which
// the flags are applied to a parameter set.
func FeatureFromFlags(cone, shank bool) Feature {
	switch {
	case shank:
		return FeatureShank
	case cone:
		return FeatureCone
	default:
		return FeatureNone
	}
}

// String returns the string representation
func (f Feature) String() string {
	switch f {
	case FeatureCone:
		return "cone"
	case FeatureShank:
		return "shank"
	default:
		return "none"
	}
}

// HasCone returns true when the clearance cone is selected
func (f Feature) HasCone() bool {
	return f == FeatureCone
}

// HasShank returns true when the shank is selected
func (f Feature) HasShank() bool {
	return f == FeatureShank
}

// MarshalText implements encoding.TextMarshaler
func (f Feature) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Feature) UnmarshalText(data []byte) error {
	feat, err := NewFeature(string(data))
	if err != nil {
		return err
	}
	*f = feat
	return nil
}
