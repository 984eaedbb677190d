package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewReportID(t *testing.T) {
	id1 := NewReportID()
	id2 := NewReportID()

	assert.False(t, id1.IsZero(), "new ID should not be zero")
	assert.False(t, id1.Equals(id2), "two new IDs should be different")
}

func Test_ParseReportID(t *testing.T) {
	validUUID := "123e4567-e89b-12d3-a456-426614174000"

	id, err := ParseReportID(validUUID)
	require.NoError(t, err)
	assert.Equal(t, validUUID, id.String())

	for _, s := range []string{"", "invalid", "123"} {
		_, err := ParseReportID(s)
		assert.Error(t, err, s)
	}
	assert.Panics(t, func() { MustParseReportID("invalid") })
}

func Test_ReportID_JSON(t *testing.T) {
	id := MustParseReportID("123e4567-e89b-12d3-a456-426614174000")

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"123e4567-e89b-12d3-a456-426614174000"`, string(data))

	var decoded ReportID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equals(decoded))
}
