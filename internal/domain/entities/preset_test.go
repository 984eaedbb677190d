package entities

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/drillspec/internal/domain/values"
)

func plainFormat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestPreset_Raw(t *testing.T) {
	tests := []struct {
		name   string
		preset Preset
		want   RawParameters
	}{
		{
			name:   "plain",
			preset: Preset{Name: "Сверло Ø10", Diameter: 10, WorkingLength: 55, TotalLength: 140, Angle: 45},
			want:   RawParameters{Diameter: "10", WorkingLength: "55", TotalLength: "140", Angle: "45"},
		},
		{
			name: "cone",
			preset: Preset{Name: "c", Diameter: 1, WorkingLength: 3, TotalLength: 23, Angle: 30,
				Feature: "cone", ConeValue: 0.25},
			want: RawParameters{Diameter: "1", WorkingLength: "3", TotalLength: "23", Angle: "30",
				ClearanceCone: true, ConeValue: "0.25"},
		},
		{
			name: "shank",
			preset: Preset{Name: "s", Diameter: 20, WorkingLength: 160, TotalLength: 205, Angle: 60,
				Feature: "shank", ShankDiameter: 40, ShankLength: 135, ConeValue: 9},
			want: RawParameters{Diameter: "20", WorkingLength: "160", TotalLength: "205", Angle: "60",
				ClearanceShank: true, ShankDiameter: "40", ShankLength: "135"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.preset.Raw(plainFormat))
		})
	}
}

func TestPresetCatalog_Validate(t *testing.T) {
	valid := Preset{Name: "a", Diameter: 10, WorkingLength: 55, TotalLength: 140, Angle: 45}

	tests := []struct {
		name    string
		catalog PresetCatalog
		wantErr string
	}{
		{"valid", PresetCatalog{Version: "1.0.0", Presets: []Preset{valid}}, ""},
		{"missing version", PresetCatalog{Presets: []Preset{valid}}, "version is required"},
		{"duplicate", PresetCatalog{Version: "1.0.0", Presets: []Preset{valid, {Name: "A", Diameter: 1, WorkingLength: 3, TotalLength: 23, Angle: 30}}}, "duplicate preset name"},
		{"bad feature", PresetCatalog{Version: "1.0.0", Presets: []Preset{{Name: "b", Diameter: 1, WorkingLength: 3, TotalLength: 23, Angle: 30, Feature: "both"}}}, "invalid feature"},
		{"empty name", PresetCatalog{Version: "1.0.0", Presets: []Preset{{Diameter: 1}}}, "cannot be empty"},
		{"non-positive", PresetCatalog{Version: "1.0.0", Presets: []Preset{{Name: "z", Diameter: 0, WorkingLength: 3, TotalLength: 23, Angle: 30}}}, "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPresetCatalog_FindAndMerge(t *testing.T) {
	c := &PresetCatalog{Version: "1.0.0", Presets: []Preset{
		{Name: "Сверло Ø10", Diameter: 10},
		{Name: "Пользовательский", Diameter: 10, TotalLength: 88},
	}}

	p, ok := c.Find("сверло ø10")
	require.True(t, ok)
	assert.Equal(t, 10.0, p.Diameter)

	_, ok = c.Find("  ")
	assert.False(t, ok)

	c.Merge(&PresetCatalog{Version: "1.1.0", Presets: []Preset{
		{Name: "пользовательский", Diameter: 12, TotalLength: 99},
		{Name: "Мой", Diameter: 5},
	}})
	assert.Equal(t, []string{"Сверло Ø10", "пользовательский", "Мой"}, c.Names())
	assert.Equal(t, 99.0, c.Presets[1].TotalLength)

	c.Merge(nil)
	assert.Len(t, c.Presets, 3)
}

func TestPreset_FeatureValue(t *testing.T) {
	assert.Equal(t, values.FeatureShank, Preset{Feature: "shank"}.FeatureValue())
	assert.Equal(t, values.FeatureNone, Preset{Feature: "bogus"}.FeatureValue())
}
