// Package container provides dependency injection for the application.
package container

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/application/services"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/infrastructure/adapters"
	"github.com/reglet-dev/drillspec/internal/infrastructure/builder"
	"github.com/reglet-dev/drillspec/internal/infrastructure/config"
	"github.com/reglet-dev/drillspec/internal/infrastructure/filesystem"
	"github.com/reglet-dev/drillspec/internal/infrastructure/metrics"
	"github.com/reglet-dev/drillspec/internal/infrastructure/output"
	"github.com/reglet-dev/drillspec/internal/infrastructure/system"
	"github.com/reglet-dev/drillspec/internal/version"
)

// Container holds all application dependencies.
type Container struct {
	candidateLoader  ports.CandidateLoader
	catalogLoader    ports.PresetCatalogLoader
	pathResolver     ports.PathResolver
	watcher          ports.FileWatcher
	formatterFactory ports.OutputFormatterFactory
	metrics          *metrics.Recorder
	evaluator        *services.SetEvaluator
	validateSets     *services.ValidateSetsUseCase
	presetService    *services.PresetService
	buildModel       *services.BuildModelUseCase
	systemCfg        *system.Config
	locale           language.Tag
	logger           *slog.Logger
}

// Options configure the container. Non-empty values override the
// system config file.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	Locale           string
	OutputDir        string
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	// Load system config
	systemConfigAdapter := adapters.NewSystemConfigAdapter()
	systemCfg, err := systemConfigAdapter.LoadConfig(context.TODO(), opts.SystemConfigPath)
	if err != nil {
		opts.Logger.Debug("failed to load system config, using defaults", "error", err)
		systemCfg = system.DefaultConfig()
	}

	// Command-line values take precedence over the config file
	if opts.Locale != "" {
		systemCfg.Locale = opts.Locale
	}
	if opts.OutputDir != "" {
		systemCfg.OutputDir = opts.OutputDir
	}

	locale, err := validation.ParseLocale(systemCfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", systemCfg.Locale, err)
	}

	// Candidate numbers are rendered in the run locale so the evaluator
	// parses them back unchanged.
	candidateLoader := config.NewCandidateLoader(locale)
	catalogLoader := config.NewCatalogLoader()
	pathResolver := filesystem.NewPathResolver()
	recorder := metrics.NewRecorder(systemCfg.Metrics.Namespace)
	modelBuilder := builder.NewManifestBuilder(systemCfg.OutputDir)

	evaluator := services.NewSetEvaluator(locale, opts.Logger)

	// Wire up use cases
	validateSets := services.NewValidateSetsUseCase(
		pathResolver,
		candidateLoader,
		recorder,
		version.Version,
		opts.Logger,
	)
	presetService := services.NewPresetService(catalogLoader, evaluator, opts.Logger)
	buildModel := services.NewBuildModelUseCase(
		candidateLoader,
		presetService,
		modelBuilder,
		evaluator,
		opts.Logger,
	)

	return &Container{
		candidateLoader:  candidateLoader,
		catalogLoader:    catalogLoader,
		pathResolver:     pathResolver,
		watcher:          filesystem.NewWatcher(filesystem.DefaultDebounce, opts.Logger),
		formatterFactory: output.NewFormatterFactory(),
		metrics:          recorder,
		evaluator:        evaluator,
		validateSets:     validateSets,
		presetService:    presetService,
		buildModel:       buildModel,
		systemCfg:        systemCfg,
		locale:           locale,
		logger:           opts.Logger,
	}, nil
}

// ValidateSetsUseCase returns the validate use case.
func (c *Container) ValidateSetsUseCase() *services.ValidateSetsUseCase {
	return c.validateSets
}

// PresetService returns the preset service.
func (c *Container) PresetService() *services.PresetService {
	return c.presetService
}

// BuildModelUseCase returns the build use case.
func (c *Container) BuildModelUseCase() *services.BuildModelUseCase {
	return c.buildModel
}

// Evaluator returns the set evaluator bound to the run locale.
func (c *Container) Evaluator() *services.SetEvaluator {
	return c.evaluator
}

// CandidateLoader returns the candidate loader port.
func (c *Container) CandidateLoader() ports.CandidateLoader {
	return c.candidateLoader
}

// PathResolver returns the path resolver port.
func (c *Container) PathResolver() ports.PathResolver {
	return c.pathResolver
}

// Watcher returns the file watcher port.
func (c *Container) Watcher() ports.FileWatcher {
	return c.watcher
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// Metrics returns the metrics recorder.
func (c *Container) Metrics() *metrics.Recorder {
	return c.metrics
}

// Locale returns the resolved run locale.
func (c *Container) Locale() language.Tag {
	return c.locale
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
