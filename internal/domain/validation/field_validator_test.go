package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

func newValidator() *FieldValidator {
	return NewFieldValidator(entities.NewParameterSet())
}

func TestFieldValidator_Validate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name     string
		text     string
		required bool
		want     FieldOutcome
	}{
		{"empty required", "", true, Failure(values.KindEmptyInput, "Диаметр не может быть пустым")},
		{"blank required", "  \t", true, Failure(values.KindEmptyInput, "Диаметр не может быть пустым")},
		{"empty optional", "", false, Success(0)},
		{"bad format", "1O", true, Failure(values.KindFormatError, "Неверный формат числа в поле 'Диаметр'")},
		{"below range", "0,5", true, Failure(values.KindRangeError, "Диаметр должен быть в диапазоне 1,00-20,00 мм")},
		{"above range", "25", true, Failure(values.KindRangeError, "Диаметр должен быть в диапазоне 1,00-20,00 мм")},
		{"inside range", "12,5", true, Success(12.5)},
		{"lower edge", "1", true, Success(1)},
		{"upper edge", "20", true, Success(20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.text, "Диаметр", 1, 20, "мм", tt.required)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldValidator_InclusiveBoundaries(t *testing.T) {
	const eps = 0.01
	params := entities.NewParameterSet()
	v := NewFieldValidator(params)
	f := v.Format()

	for _, field := range values.AllFields() {
		t.Run(field.String(), func(t *testing.T) {
			b := params.Bound(field)

			for _, edge := range []float64{b.Min, b.Max} {
				got := v.ValidateField(field, f.FormatValue(edge), true)
				assert.True(t, got.Valid, "edge %g must pass: %s", edge, got.Message)
				assert.Equal(t, edge, got.Value)
			}

			for _, outside := range []float64{b.Min - eps, b.Max + eps} {
				got := v.ValidateField(field, f.FormatValue(outside), true)
				assert.False(t, got.Valid, "%g must fail", outside)
				assert.Equal(t, values.KindRangeError, got.Kind)
			}
		})
	}
}

func TestFieldValidator_WrappersUseLiveBounds(t *testing.T) {
	params := entities.NewParameterSet()
	v := NewFieldValidator(params)

	assert.True(t, v.ValidateWorkingLength("80").Valid)
	params.SetDiameter(5)
	got := v.ValidateWorkingLength("80")
	assert.False(t, got.Valid)
	assert.Equal(t, "Длина рабочей части должен быть в диапазоне 15,00-40,00 мм", got.Message)

	assert.True(t, v.ValidateDiameter("5").Valid)
	assert.True(t, v.ValidateTotalLength("205").Valid)
	assert.Equal(t, "Угол при вершине должен быть в диапазоне 30,00-60,00 °", v.ValidateAngle("61").Message)
}

func TestFieldValidator_DisabledFieldsAreInert(t *testing.T) {
	v := newValidator()

	for _, text := range []string{"", "abc", "-999", "1e9"} {
		assert.Equal(t, Success(0), v.ValidateConeValue(text, false), text)
		assert.Equal(t, Success(0), v.ValidateShankDiameter(text, false), text)
		assert.Equal(t, Success(0), v.ValidateShankLength(text, false), text)
	}
}

func TestFieldValidator_OptionalFieldsRequiredWhenEnabled(t *testing.T) {
	v := newValidator()

	got := v.ValidateShankDiameter("", true)
	assert.Equal(t, values.KindEmptyInput, got.Kind)
	assert.Equal(t, "Диаметр хвостовика не может быть пустым", got.Message)

	assert.Equal(t, Success(16), v.ValidateShankDiameter("16", true))
	assert.Equal(t, Success(50), v.ValidateShankLength("50", true))
}

func TestFieldValidator_ConeUpperBoundInclusive(t *testing.T) {
	params := entities.NewParameterSet()
	params.SetDiameter(20)
	params.SetClearanceCone(true)
	v := NewFieldValidator(params)

	assert.Equal(t, Success(15), v.ValidateConeValue("15", true))
}

func TestFieldValidator_Locale(t *testing.T) {
	v := NewFieldValidator(entities.NewParameterSet(), WithLocale(language.English))

	assert.Equal(t, Success(12.5), v.ValidateDiameter("12.5"))
	assert.Equal(t, "Диаметр должен быть в диапазоне 1.00-20.00 мм", v.ValidateDiameter("21").Message)
}

func TestFieldValidator_CheckValue(t *testing.T) {
	v := newValidator()

	assert.True(t, v.CheckValue(values.FieldAngle, 45).Valid)
	got := v.CheckValue(values.FieldAngle, 29.9)
	assert.Equal(t, values.KindRangeError, got.Kind)
	assert.Contains(t, got.Message, "Угол при вершине")
}

func TestFieldValidator_UnknownFieldPanics(t *testing.T) {
	v := newValidator()
	assert.Panics(t, func() { v.ValidateField(values.FieldID(42), "1", true) })
	assert.Panics(t, func() { NewFieldValidator(nil) })
}
