package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestArtifactName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(p *entities.ParameterSet)
		expected string
	}{
		{
			name:     "defaults",
			mutate:   func(*entities.ParameterSet) {},
			expected: "Drill_10x75_cone_20260314_092653.yaml",
		},
		{
			name: "fractional diameter with shank",
			mutate: func(p *entities.ParameterSet) {
				p.SetDiameter(2.5)
				p.SetTotalLength(120)
				p.SetClearanceShank(true)
			},
			expected: "Drill_2.5x120_shank_20260314_092653.yaml",
		},
		{
			name: "no feature",
			mutate: func(p *entities.ParameterSet) {
				p.SetClearanceCone(false)
			},
			expected: "Drill_10x75_none_20260314_092653.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := entities.NewParameterSet()
			tt.mutate(p)
			assert.Equal(t, tt.expected, ArtifactName(p, fixedTime))
		})
	}
}

func TestNewManifest_SkipsDisabledFields(t *testing.T) {
	t.Parallel()
	p := entities.NewParameterSet()

	m := NewManifest(p, fixedTime)

	assert.Equal(t, ManifestAPIVersion, m.APIVersion)
	assert.Equal(t, values.FeatureCone, m.Feature)
	require.Len(t, m.Parameters, 5)
	assert.Equal(t, values.FieldConeValue, m.Parameters[4].Field)
	assert.InDelta(t, 5.0, m.Parameters[4].Value, 1e-9)
	assert.InDelta(t, 2.5, m.Parameters[4].Min, 1e-9)
	assert.InDelta(t, 7.5, m.Parameters[4].Max, 1e-9)
}

func TestManifestBuilder_Build(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "build")
	b := NewManifestBuilder(dir, WithClock(func() time.Time { return fixedTime }))

	p := entities.NewParameterSet()
	p.SetClearanceShank(true)

	path, err := b.Build(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Drill_10x75_shank_20260314_092653.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		APIVersion string `yaml:"apiVersion"`
		Feature    string `yaml:"feature"`
		Parameters []struct {
			Field string  `yaml:"field"`
			Value float64 `yaml:"value"`
		} `yaml:"parameters"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, ManifestAPIVersion, decoded.APIVersion)
	assert.Equal(t, "shank", decoded.Feature)
	require.Len(t, decoded.Parameters, 6)
	assert.Equal(t, "shank_diameter", decoded.Parameters[4].Field)
	assert.Equal(t, "shank_length", decoded.Parameters[5].Field)
	assert.InDelta(t, 50.0, decoded.Parameters[5].Value, 1e-9)
}

func TestManifestBuilder_CancelledContext(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManifestBuilder(dir).Build(ctx, entities.NewParameterSet())
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
