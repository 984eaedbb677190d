// Package builder hands validated parameter sets to the external CAD
// model builder by writing build manifests it consumes.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/values"
	"github.com/reglet-dev/drillspec/internal/version"
)

// ManifestAPIVersion identifies the manifest layout read by the CAD builder.
const ManifestAPIVersion = "drillspec/v1"

var _ ports.ModelBuilder = (*ManifestBuilder)(nil)

// Manifest is the document written for the CAD builder.
type Manifest struct {
	APIVersion  string              `yaml:"apiVersion"`
	Generator   string              `yaml:"generator"`
	GeneratedAt time.Time           `yaml:"generated_at"`
	Feature     values.Feature      `yaml:"feature"`
	Parameters  []ManifestParameter `yaml:"parameters"`
}

// ManifestParameter is one dimension of the drill in the manifest.
// Fields of a disabled feature are omitted.
type ManifestParameter struct {
	Field values.FieldID `yaml:"field"`
	Value float64        `yaml:"value"`
	Unit  string         `yaml:"unit"`
	Min   float64        `yaml:"min"`
	Max   float64        `yaml:"max"`
}

// ManifestBuilder writes one YAML manifest per build into a directory.
type ManifestBuilder struct {
	outputDir string
	now       func() time.Time
}

// Option configures a ManifestBuilder.
type Option func(*ManifestBuilder)

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(b *ManifestBuilder) {
		b.now = now
	}
}

// NewManifestBuilder creates a builder writing into outputDir.
func NewManifestBuilder(outputDir string, opts ...Option) *ManifestBuilder {
	b := &ManifestBuilder{
		outputDir: outputDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build writes the manifest for params and returns its path.
func (b *ManifestBuilder) Build(ctx context.Context, params entities.ParameterReader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := b.now()
	manifest := NewManifest(params, now)

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.MkdirAll(b.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", b.outputDir, err)
	}

	path := filepath.Join(b.outputDir, ArtifactName(params, now))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return path, nil
}

// NewManifest captures the enabled values and live bounds of params.
func NewManifest(params entities.ParameterReader, at time.Time) Manifest {
	m := Manifest{
		APIVersion:  ManifestAPIVersion,
		Generator:   version.Get().UserAgent(),
		GeneratedAt: at.UTC(),
		Feature:     params.Feature(),
	}
	for _, f := range values.AllFields() {
		if !params.IsEnabled(f) {
			continue
		}
		bound := params.Bound(f)
		m.Parameters = append(m.Parameters, ManifestParameter{
			Field: f,
			Value: params.Value(f),
			Unit:  f.Unit(),
			Min:   bound.Min,
			Max:   bound.Max,
		})
	}
	return m
}

// ArtifactName names a manifest Drill_{d}x{L}_{feature}_{yyyyMMdd_HHmmss}.yaml.
func ArtifactName(params entities.ParameterReader, at time.Time) string {
	return fmt.Sprintf("Drill_%sx%s_%s_%s.yaml",
		formatDimension(params.Diameter()),
		formatDimension(params.TotalLength()),
		params.Feature(),
		at.Format("20060102_150405"))
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
