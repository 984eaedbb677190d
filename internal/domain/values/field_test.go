package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AllFields_DeclarationOrder(t *testing.T) {
	fields := AllFields()
	require.Len(t, fields, 7)
	for i, f := range fields {
		assert.Equal(t, FieldID(i), f)
	}
}

func Test_FieldID_Metadata(t *testing.T) {
	tests := []struct {
		field   FieldID
		key     string
		display string
		unit    string
		feature Feature
	}{
		{FieldDiameter, "diameter", "Диаметр", UnitMillimeter, FeatureNone},
		{FieldWorkingLength, "working_length", "Длина рабочей части", UnitMillimeter, FeatureNone},
		{FieldTotalLength, "total_length", "Общая длина", UnitMillimeter, FeatureNone},
		{FieldAngle, "angle", "Угол при вершине", UnitDegree, FeatureNone},
		{FieldConeValue, "cone_value", "Обратный конус", UnitMillimeter, FeatureCone},
		{FieldShankDiameter, "shank_diameter", "Диаметр хвостовика", UnitMillimeter, FeatureShank},
		{FieldShankLength, "shank_length", "Длина хвостовика", UnitMillimeter, FeatureShank},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.field.String())
			assert.Equal(t, tt.display, tt.field.DisplayName())
			assert.Equal(t, tt.unit, tt.field.Unit())
			assert.Equal(t, tt.feature, tt.field.Feature())
			assert.Equal(t, tt.feature != FeatureNone, tt.field.IsOptional())

			parsed, err := ParseFieldID(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.field, parsed)
		})
	}
}

func Test_ParseFieldID_Invalid(t *testing.T) {
	for _, s := range []string{"", "length", "cone"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseFieldID(s)
			assert.Error(t, err)
		})
	}
	assert.Panics(t, func() { MustParseFieldID("nope") })
}

func Test_FieldID_InvalidPanics(t *testing.T) {
	assert.False(t, FieldID(42).IsValid())
	assert.Equal(t, "field(42)", FieldID(42).String())
	assert.Panics(t, func() { _ = FieldID(42).DisplayName() })
}

func Test_FieldID_JSONMapKey(t *testing.T) {
	data, err := json.Marshal(map[FieldID]float64{FieldAngle: 45})
	require.NoError(t, err)
	assert.JSONEq(t, `{"angle":45}`, string(data))

	var decoded map[FieldID]float64
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 45.0, decoded[FieldAngle])
}
