// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/infrastructure/system"
)

// CandidateLoader loads candidate parameter sets from storage.
type CandidateLoader interface {
	LoadCandidate(ctx context.Context, path string) (*entities.CandidateSet, error)
}

// PresetCatalogLoader loads preset catalogs.
type PresetCatalogLoader interface {
	// LoadBuiltin returns the catalog embedded in the binary.
	LoadBuiltin(ctx context.Context) (*entities.PresetCatalog, error)

	// LoadCatalog reads an additional catalog file.
	LoadCatalog(ctx context.Context, path string) (*entities.PresetCatalog, error)
}

// PathResolver expands user supplied paths and glob patterns into files.
type PathResolver interface {
	Expand(ctx context.Context, patterns []string) ([]string, error)
}

// ModelBuilder hands a validated parameter set to the model builder and
// returns the location of the produced artifact.
type ModelBuilder interface {
	Build(ctx context.Context, params entities.ParameterReader) (string, error)
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// MetricsRecorder records validation activity.
type MetricsRecorder interface {
	ObserveSet(set *execution.SetResult)
	ObserveRun(result *execution.RunResult)
}

// FileWatcher invokes onChange whenever one of paths is written.
// Watch blocks until ctx is cancelled.
type FileWatcher interface {
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}

// OutputFormatter formats run results.
type OutputFormatter interface {
	Format(result *execution.RunResult) error
}

// FormatterOptions configures output formatters.
type FormatterOptions struct {
	// Indent pretty-prints JSON output
	Indent bool

	// NoColor disables ANSI colors in table output
	NoColor bool
}

// OutputFormatterFactory creates output formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
