package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

func samplePresets() []entities.Preset {
	return []entities.Preset{
		{Name: "Сверло Ø10", Diameter: 10, WorkingLength: 55, TotalLength: 140, Angle: 45},
		{Name: "Сверло Ø20мм с конусом", Diameter: 20, WorkingLength: 160, TotalLength: 205, Angle: 60, Feature: "cone", ConeValue: 15},
		{Name: "Сверло Ø1мм с хвостовиком", Diameter: 1, WorkingLength: 3, TotalLength: 23, Angle: 30, Feature: "shank", ShankDiameter: 1.75, ShankLength: 40},
	}
}

func names(presets []entities.Preset) []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = p.Name
	}
	return out
}

func Test_PresetFilter_NoFilters(t *testing.T) {
	got := NewPresetFilter().Apply(samplePresets())
	assert.Len(t, got, 3)
}

func Test_PresetFilter_Features(t *testing.T) {
	got := NewPresetFilter().WithFeatures(values.FeatureCone, values.FeatureShank).Apply(samplePresets())
	assert.Equal(t, []string{"Сверло Ø20мм с конусом", "Сверло Ø1мм с хвостовиком"}, names(got))

	ok, reason := NewPresetFilter().WithFeatures(values.FeatureShank).Matches(samplePresets()[0])
	assert.False(t, ok)
	assert.Equal(t, "feature none not selected", reason)
}

func Test_PresetFilter_DiameterRange(t *testing.T) {
	got := NewPresetFilter().WithDiameterRange(values.Bound{Min: 5, Max: 20}).Apply(samplePresets())
	assert.Equal(t, []string{"Сверло Ø10", "Сверло Ø20мм с конусом"}, names(got))
}

func Test_PresetFilter_Expression(t *testing.T) {
	tests := []struct {
		expression string
		expected   []string
	}{
		{`diameter >= 10`, []string{"Сверло Ø10", "Сверло Ø20мм с конусом"}},
		{`feature == "shank" && shank_length == 40`, []string{"Сверло Ø1мм с хвостовиком"}},
		{`total_length - working_length > 80`, []string{"Сверло Ø10"}},
		{`name contains "конус"`, []string{"Сверло Ø20мм с конусом"}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			program, err := CompilePresetFilter(tt.expression)
			require.NoError(t, err)

			got := NewPresetFilter().WithFilterExpression(program).Apply(samplePresets())
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func Test_CompilePresetFilter_Invalid(t *testing.T) {
	for _, e := range []string{`diameter +`, `unknown_field > 1`, `diameter`} {
		_, err := CompilePresetFilter(e)
		assert.Error(t, err, e)
	}
}

func Test_Suggest(t *testing.T) {
	candidates := []string{"diameter", "working_length", "total_length", "angle", "cone_value", "shank_diameter", "shank_length"}

	assert.Equal(t, []string{"diameter"}, Suggest("diametr", candidates))
	assert.Equal(t, []string{"total_length"}, Suggest("totl_length", candidates))
	assert.Equal(t, []string{"shank_length"}, Suggest("shank_lenght", candidates))
	assert.Empty(t, Suggest("xyz", candidates))
	assert.Nil(t, Suggest("  ", candidates))
}
