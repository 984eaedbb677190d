package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bound_ContainsInclusive(t *testing.T) {
	b := Bound{Min: 30, Max: 80}

	assert.True(t, b.Contains(30))
	assert.True(t, b.Contains(80))
	assert.True(t, b.Contains(55))
	assert.False(t, b.Contains(29.999))
	assert.False(t, b.Contains(80.001))
}

func Test_NewBound(t *testing.T) {
	b, err := NewBound(1, 20)
	require.NoError(t, err)
	assert.Equal(t, 10.5, b.Midpoint())
	assert.Equal(t, "[1, 20]", b.String())

	_, err = NewBound(5, 1)
	assert.Error(t, err)
}

func Test_Bound_IsEmpty(t *testing.T) {
	assert.False(t, Bound{Min: 1, Max: 1}.IsEmpty())
	assert.True(t, Bound{Min: 185, Max: 180}.IsEmpty())
}
