package entities

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// Preset is a named bundle of drill parameters offered as a starting point.
// Presets are convenience data and are validated like any other input
// before they reach a model builder.
type Preset struct {
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	Diameter      float64 `json:"diameter" yaml:"diameter"`
	WorkingLength float64 `json:"working_length" yaml:"working_length"`
	TotalLength   float64 `json:"total_length" yaml:"total_length"`
	Angle         float64 `json:"angle" yaml:"angle"`
	Feature       string  `json:"feature,omitempty" yaml:"feature,omitempty"`
	ConeValue     float64 `json:"cone_value,omitempty" yaml:"cone_value,omitempty"`
	ShankDiameter float64 `json:"shank_diameter,omitempty" yaml:"shank_diameter,omitempty"`
	ShankLength   float64 `json:"shank_length,omitempty" yaml:"shank_length,omitempty"`
}

// FeatureValue parses the feature selection. Unknown values fall back to
// FeatureNone; PresetCatalog.Validate rejects them up front.
func (p Preset) FeatureValue() values.Feature {
	f, err := values.NewFeature(p.Feature)
	if err != nil {
		return values.FeatureNone
	}
	return f
}

// Raw renders the preset as user input, formatting numbers with format.
// Fields of a disabled feature are left empty.
func (p Preset) Raw(format func(float64) string) RawParameters {
	feature := p.FeatureValue()
	raw := RawParameters{
		Diameter:       format(p.Diameter),
		WorkingLength:  format(p.WorkingLength),
		TotalLength:    format(p.TotalLength),
		Angle:          format(p.Angle),
		ClearanceCone:  feature.HasCone(),
		ClearanceShank: feature.HasShank(),
	}
	if feature.HasCone() {
		raw.ConeValue = format(p.ConeValue)
	}
	if feature.HasShank() {
		raw.ShankDiameter = format(p.ShankDiameter)
		raw.ShankLength = format(p.ShankLength)
	}
	return raw
}

// Validate checks the preset's own structure (not its ranges).
func (p Preset) Validate() error {
	if _, err := values.NewPresetName(p.Name); err != nil {
		return err
	}
	if _, err := values.NewFeature(p.Feature); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if p.Diameter <= 0 || p.WorkingLength <= 0 || p.TotalLength <= 0 || p.Angle <= 0 {
		return fmt.Errorf("preset %q: dimensions must be positive", p.Name)
	}
	return nil
}

// PresetCatalog is a versioned list of presets.
//
// Invariants Enforced:
// - Catalog version is required
// - Preset names are unique, ignoring case
type PresetCatalog struct {
	Version string   `json:"version" yaml:"version"`
	Presets []Preset `json:"presets" yaml:"presets"`
}

// Validate enforces the catalog invariants.
func (c *PresetCatalog) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("preset catalog version is required")
	}

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %d: %w", i, err)
		}
		key := normalizePresetKey(p.Name)
		if seen[key] {
			return fmt.Errorf("duplicate preset name: %s", p.Name)
		}
		seen[key] = true
	}
	return nil
}

// Find looks up a preset by name, ignoring case.
func (c *PresetCatalog) Find(name string) (Preset, bool) {
	want, err := values.NewPresetName(name)
	if err != nil {
		return Preset{}, false
	}
	for _, p := range c.Presets {
		pn, err := values.NewPresetName(p.Name)
		if err == nil && pn.Equals(want) {
			return p, true
		}
	}
	return Preset{}, false
}

// Names returns every preset name in catalog order.
func (c *PresetCatalog) Names() []string {
	names := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		names[i] = p.Name
	}
	return names
}

// Merge overlays other onto c. Presets of other replace same-named
// presets in place; new ones are appended in their original order.
func (c *PresetCatalog) Merge(other *PresetCatalog) {
	if other == nil {
		return
	}
	index := make(map[string]int, len(c.Presets))
	for i, p := range c.Presets {
		index[normalizePresetKey(p.Name)] = i
	}
	for _, p := range other.Presets {
		key := normalizePresetKey(p.Name)
		if i, ok := index[key]; ok {
			c.Presets[i] = p
			continue
		}
		index[key] = len(c.Presets)
		c.Presets = append(c.Presets, p)
	}
}

// SortedNames returns the preset names in lexical order.
func (c *PresetCatalog) SortedNames() []string {
	names := c.Names()
	sort.Strings(names)
	return names
}

func normalizePresetKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
