package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

func validRaw() entities.RawParameters {
	return entities.RawParameters{
		Diameter:      "10",
		WorkingLength: "55",
		TotalLength:   "75",
		Angle:         "45",
		ClearanceCone: true,
		ConeValue:     "5",
	}
}

func newBatch(params *entities.ParameterSet) *BatchValidator {
	return NewBatchValidator(NewFieldValidator(params))
}

func countContaining(messages []string, substr string) int {
	n := 0
	for _, m := range messages {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

func TestBatchValidator_ValidateAll_Valid(t *testing.T) {
	b := newBatch(entities.NewParameterSet())
	assert.Empty(t, b.ValidateAll(validRaw()))
}

func TestBatchValidator_ScenarioA(t *testing.T) {
	params := entities.NewParameterSet()
	params.SetDiameter(10)
	params.SetWorkingLength(55)
	params.SetTotalLength(75)

	assert.Equal(t, 30.0, params.MinWorkingLength())
	assert.Equal(t, 80.0, params.MaxWorkingLength())
	assert.Equal(t, 75.0, params.MinTotalLength())
	assert.True(t, NewFieldValidator(params).ValidateTotalLength("75").Valid)
}

func TestBatchValidator_ScenarioB_SingleWorkingLengthError(t *testing.T) {
	b := newBatch(entities.NewParameterSet())
	raw := validRaw()
	raw.WorkingLength = "29,9"

	messages := b.ValidateAll(raw)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "рабочей части")
}

func TestBatchValidator_ScenarioC_ConeUpperBound(t *testing.T) {
	params := entities.NewParameterSet()
	params.SetDiameter(20)
	b := newBatch(params)

	raw := entities.RawParameters{
		Diameter:      "20",
		WorkingLength: "160",
		TotalLength:   "205",
		Angle:         "60",
		ClearanceCone: true,
		ConeValue:     "15",
	}

	assert.Empty(t, b.ValidateAll(raw))
}

func TestBatchValidator_StaleWorkingLengthSurfaces(t *testing.T) {
	params := entities.NewParameterSet()
	params.SetDiameter(10)
	params.SetWorkingLength(50)
	b := newBatch(params)

	raw := validRaw()
	raw.WorkingLength = "50"
	require.Empty(t, b.ValidateAll(raw))

	params.SetDiameter(20)
	raw.Diameter = "20"

	violations := b.Violations(raw)
	require.Len(t, violations, 1)
	assert.Equal(t, values.FieldWorkingLength, violations[0].Field)
	assert.Equal(t, values.KindRangeError, violations[0].Kind)
	assert.Equal(t, "Длина рабочей части должен быть в диапазоне 60,00-160,00 мм", violations[0].Message)

	assert.Equal(t, []string{violations[0].Message}, b.CheckParameters())
}

func TestBatchValidator_ZeroConeGuard(t *testing.T) {
	params := entities.NewParameterSet()
	params.SetDiameter(10)
	require.Equal(t, 2.5, params.MinConeValue())
	b := newBatch(params)

	raw := validRaw()
	raw.ConeValue = "0"
	messages := b.ValidateAll(raw)

	assert.Equal(t, 1, countContaining(messages, "не может быть равен 0"))
	assert.Contains(t, messages, "Обратный конус не может быть равен 0 при включенном флаге")

	violations := b.Violations(raw)
	guards := 0
	for _, v := range violations {
		if v.Guard {
			guards++
			assert.Equal(t, values.FieldConeValue, v.Field)
			assert.Equal(t, values.KindRangeError, v.Kind)
		}
	}
	assert.Equal(t, 1, guards)
}

func TestBatchValidator_ZeroGuardChain(t *testing.T) {
	tests := []struct {
		name  string
		raw   entities.RawParameters
		guard string
	}{
		{
			name: "cone suppresses shank guards",
			raw: entities.RawParameters{Diameter: "10", WorkingLength: "55", TotalLength: "75", Angle: "45",
				ClearanceCone: true, ConeValue: "0", ClearanceShank: true, ShankDiameter: "0", ShankLength: "0"},
			guard: "Обратный конус не может быть равен 0 при включенном флаге",
		},
		{
			name: "shank diameter before shank length",
			raw: entities.RawParameters{Diameter: "10", WorkingLength: "55", TotalLength: "75", Angle: "45",
				ClearanceShank: true, ShankDiameter: "0", ShankLength: "0"},
			guard: "Диаметр хвостовика не может быть равен 0 при включенном флаге",
		},
		{
			name: "shank length alone",
			raw: entities.RawParameters{Diameter: "10", WorkingLength: "55", TotalLength: "75", Angle: "45",
				ClearanceShank: true, ShankDiameter: "16", ShankLength: "0,0"},
			guard: "Длина хвостовика не может быть равен 0 при включенном флаге",
		},
		{
			name: "unparseable zero-ish text does not fire",
			raw: entities.RawParameters{Diameter: "10", WorkingLength: "55", TotalLength: "75", Angle: "45",
				ClearanceCone: true, ConeValue: "0.0"},
			guard: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := newBatch(entities.NewParameterSet()).ValidateAll(tt.raw)
			if tt.guard == "" {
				assert.Equal(t, 0, countContaining(messages, "не может быть равен 0"))
				return
			}
			assert.Equal(t, 1, countContaining(messages, "не может быть равен 0"))
			assert.Equal(t, tt.guard, messages[len(messages)-1])
		})
	}
}

func TestBatchValidator_DisabledFeatureExempt(t *testing.T) {
	b := newBatch(entities.NewParameterSet())

	raw := validRaw()
	raw.ClearanceCone = false
	raw.ConeValue = "0"
	raw.ShankDiameter = "abc"
	raw.ShankLength = "-1"

	assert.Empty(t, b.ValidateAll(raw))

	for _, o := range b.ValidateAllFields(raw) {
		if o.Field.IsOptional() {
			assert.False(t, o.Enabled)
			assert.Equal(t, Success(0), o.Outcome)
		}
	}
}

func TestBatchValidator_DeclarationOrder(t *testing.T) {
	b := newBatch(entities.NewParameterSet())
	raw := entities.RawParameters{
		Diameter:       "",
		WorkingLength:  "x",
		TotalLength:    "1000",
		Angle:          "10",
		ClearanceCone:  true,
		ConeValue:      "100",
		ClearanceShank: true,
		ShankDiameter:  "",
		ShankLength:    "1",
	}

	violations := b.Violations(raw)

	fields := make([]values.FieldID, 0, len(violations))
	kinds := make([]values.ViolationKind, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
		kinds = append(kinds, v.Kind)
	}
	assert.Equal(t, values.AllFields(), fields)
	assert.Equal(t, []values.ViolationKind{
		values.KindEmptyInput,
		values.KindFormatError,
		values.KindRangeError,
		values.KindRangeError,
		values.KindRangeError,
		values.KindEmptyInput,
		values.KindRangeError,
	}, kinds)
	assert.Equal(t, "Диаметр не может быть пустым", violations[0].Message)
	assert.Equal(t, "Неверный формат числа в поле 'Длина рабочей части'", violations[1].Message)
}

func TestBatchValidator_TryUpdateParameters(t *testing.T) {
	params := entities.NewParameterSet()
	b := newBatch(params)

	raw := entities.RawParameters{
		Diameter:      "20",
		WorkingLength: "160",
		TotalLength:   "205",
		Angle:         "60",
		ClearanceCone: true,
		ConeValue:     "15",
	}

	ok, messages := b.TryUpdateParameters(raw)

	require.True(t, ok, messages)
	assert.Empty(t, messages)
	assert.Equal(t, 20.0, params.Diameter())
	assert.Equal(t, 160.0, params.WorkingLength())
	assert.Equal(t, 205.0, params.TotalLength())
	assert.Equal(t, 60.0, params.Angle())
	assert.Equal(t, 15.0, params.ConeValue())
	assert.Equal(t, 180.0, params.MinTotalLength())
	assert.Empty(t, b.CheckParameters())
}

func TestBatchValidator_TryUpdateIsBestEffort(t *testing.T) {
	params := entities.NewParameterSet()
	b := newBatch(params)

	raw := validRaw()
	raw.Diameter = "20"
	raw.WorkingLength = "10"
	raw.TotalLength = "205"
	raw.Angle = "abc"
	raw.ConeValue = "10"

	ok, messages := b.TryUpdateParameters(raw)

	assert.False(t, ok)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "Длина рабочей части")
	assert.Equal(t, "Неверный формат числа в поле 'Угол при вершине'", messages[1])

	assert.Equal(t, 20.0, params.Diameter(), "valid diameter committed")
	assert.Equal(t, 55.0, params.WorkingLength(), "invalid working length kept")
	assert.Equal(t, 205.0, params.TotalLength(), "valid total length committed")
	assert.Equal(t, 45.0, params.Angle(), "invalid angle kept")
	assert.Equal(t, 10.0, params.ConeValue(), "cone checked against the new diameter")

	assert.Equal(t, []string{"Длина рабочей части должен быть в диапазоне 60,00-160,00 мм"}, b.CheckParameters())
}

func TestBatchValidator_CommitKeepsDisabledValues(t *testing.T) {
	params := entities.NewParameterSet()
	b := newBatch(params)

	raw := validRaw()
	raw.ClearanceCone = false
	raw.ConeValue = ""

	result := b.Commit(raw)

	assert.True(t, result.AllValid)
	assert.Equal(t, values.FeatureNone, params.Feature())
	assert.Equal(t, 5.0, params.ConeValue())
	assert.Equal(t, 16.25, params.ShankDiameter())
	require.Len(t, result.Outcomes, 7)
	assert.False(t, result.Outcomes[values.FieldConeValue].Enabled)
}

func TestBatchValidator_CommitBothFlagsSelectsShank(t *testing.T) {
	params := entities.NewParameterSet()
	b := newBatch(params)

	raw := validRaw()
	raw.ClearanceShank = true
	raw.ShankDiameter = "15"
	raw.ShankLength = "45"

	ok, messages := b.TryUpdateParameters(raw)

	require.True(t, ok, messages)
	assert.Equal(t, values.FeatureShank, params.Feature())
	assert.Equal(t, 15.0, params.ShankDiameter())
	assert.Equal(t, 45.0, params.ShankLength())
}

func TestBatchValidator_ResolvedFlagsLeaveConeInert(t *testing.T) {
	raw := validRaw()
	raw.ClearanceShank = true
	raw.ConeValue = "0"
	raw.ShankDiameter = "15"
	raw.ShankLength = "45"

	// both raw flags: the cone field is still checked
	assert.Equal(t, []string{
		"Обратный конус должен быть в диапазоне 2,50-7,50 мм",
		"Обратный конус не может быть равен 0 при включенном флаге",
	}, newBatch(entities.NewParameterSet()).ValidateAll(raw))

	resolved := raw.Resolved()
	assert.Empty(t, newBatch(entities.NewParameterSet()).ValidateAll(resolved))

	resolved.ConeValue = "abc"
	params := entities.NewParameterSet()
	ok, messages := newBatch(params).TryUpdateParameters(resolved)
	require.True(t, ok, messages)
	assert.Equal(t, values.FeatureShank, params.Feature())
	assert.Equal(t, 5.0, params.ConeValue())
}

func TestBatchValidator_CommitZeroGuard(t *testing.T) {
	b := newBatch(entities.NewParameterSet())
	raw := validRaw()
	raw.ConeValue = "0"

	ok, messages := b.TryUpdateParameters(raw)

	assert.False(t, ok)
	assert.Equal(t, 1, countContaining(messages, "не может быть равен 0"))
}

func TestBatchValidator_CheckParameters(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		assert.Empty(t, newBatch(entities.NewParameterSet()).CheckParameters())
	})

	t.Run("disabled shank is skipped", func(t *testing.T) {
		params := entities.NewParameterSet()
		params.SetShankDiameter(5)
		params.SetShankLength(10)
		assert.Empty(t, newBatch(params).CheckParameters())
	})

	t.Run("enabled shank reports both fields", func(t *testing.T) {
		params := entities.NewParameterSet()
		params.SetClearanceShank(true)
		params.SetShankDiameter(12.4)
		params.SetShankLength(70)

		violations := newBatch(params).CheckViolations()
		require.Len(t, violations, 2)
		assert.Equal(t, values.FieldShankDiameter, violations[0].Field)
		assert.Equal(t, values.FieldShankLength, violations[1].Field)
	})

	t.Run("re-enabled cone is checked again", func(t *testing.T) {
		params := entities.NewParameterSet()
		params.SetClearanceShank(true)
		params.SetConeValue(100)
		assert.Empty(t, newBatch(params).CheckParameters())

		params.SetClearanceCone(true)
		messages := newBatch(params).CheckParameters()
		require.Len(t, messages, 1)
		assert.Contains(t, messages[0], "Обратный конус")
	})
}

func TestBatchValidator_PrimeRoots(t *testing.T) {
	params := entities.NewParameterSet()
	b := newBatch(params)

	raw := validRaw()
	raw.Diameter = "20"
	raw.WorkingLength = "100"
	raw.TotalLength = "oops"

	b.PrimeRoots(raw)

	assert.Equal(t, 20.0, params.Diameter())
	assert.Equal(t, 100.0, params.WorkingLength())
	assert.Equal(t, 75.0, params.TotalLength(), "unparseable root is left alone")
	assert.Equal(t, 120.0, params.MinTotalLength())
}
