package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/drillspec/internal/application/dto"
	apperrors "github.com/reglet-dev/drillspec/internal/application/errors"
	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/services"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

// presetFilterExample is shown when a filter expression does not compile.
const presetFilterExample = "feature == 'shank' && diameter >= 10"

// PresetService lists, shows and applies presets.
type PresetService struct {
	loader    ports.PresetCatalogLoader
	evaluator *SetEvaluator
	logger    *slog.Logger
}

// NewPresetService creates a new preset service.
func NewPresetService(loader ports.PresetCatalogLoader, evaluator *SetEvaluator, logger *slog.Logger) *PresetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresetService{
		loader:    loader,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Catalog returns the builtin catalog with the catalog at extraPath, if
// any, merged over it.
func (s *PresetService) Catalog(ctx context.Context, extraPath string) (*entities.PresetCatalog, error) {
	catalog, err := s.loader.LoadBuiltin(ctx)
	if err != nil {
		return nil, apperrors.NewConfigurationError("presets", "failed to load builtin presets", err)
	}
	if extraPath == "" {
		return catalog, nil
	}

	extra, err := s.loader.LoadCatalog(ctx, extraPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("presets", fmt.Sprintf("failed to load preset catalog %s", extraPath), err)
	}
	catalog.Merge(extra)
	s.logger.Debug("preset catalog merged", "path", extraPath, "presets", len(catalog.Presets))
	return catalog, nil
}

// List returns the presets selected by query, in catalog order.
func (s *PresetService) List(ctx context.Context, query dto.PresetQuery) ([]entities.Preset, error) {
	filter := services.NewPresetFilter()

	if len(query.Features) > 0 {
		features := make([]values.Feature, 0, len(query.Features))
		for _, name := range query.Features {
			f, err := values.NewFeature(name)
			if err != nil {
				return nil, apperrors.NewValidationError("features", err.Error())
			}
			features = append(features, f)
		}
		filter.WithFeatures(features...)
	}

	if query.FilterExpression != "" {
		program, err := services.CompilePresetFilter(query.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError(
				"filter",
				fmt.Sprintf("invalid --filter expression: %v\nExample: %s", err, presetFilterExample),
			)
		}
		filter.WithFilterExpression(program)
	}

	catalog, err := s.Catalog(ctx, query.CatalogPath)
	if err != nil {
		return nil, err
	}
	return filter.Apply(catalog.Presets), nil
}

// Show looks up one preset by name, ignoring case. Unknown names produce
// a NotFoundError with the closest known names.
func (s *PresetService) Show(ctx context.Context, name, catalogPath string) (*entities.Preset, error) {
	catalog, err := s.Catalog(ctx, catalogPath)
	if err != nil {
		return nil, err
	}
	preset, ok := catalog.Find(name)
	if !ok {
		return nil, apperrors.NewNotFoundError("preset", name, services.Suggest(name, catalog.Names())...)
	}
	return &preset, nil
}

// Apply renders a preset as user input and commits it to a fresh
// parameter set. Presets are not trusted: the returned set result carries
// every violation the preset produces.
func (s *PresetService) Apply(ctx context.Context, req dto.ApplyPresetRequest) (*dto.PresetApplication, error) {
	preset, err := s.Show(ctx, req.Name, req.CatalogPath)
	if err != nil {
		return nil, err
	}

	evaluator := s.evaluator
	if req.Locale != "" {
		locale, err := validation.ParseLocale(req.Locale)
		if err != nil {
			return nil, apperrors.NewConfigurationError("locale", fmt.Sprintf("invalid locale %q", req.Locale), err)
		}
		evaluator = evaluator.WithLocale(locale)
	}

	sr, _, err := evaluator.Evaluate(0, CandidateFromPreset(*preset, evaluator.Locale()), execution.ModeCommit)
	if err != nil {
		return nil, err
	}

	s.logger.Info("preset applied", "preset", preset.Name, "status", string(sr.Status), "violations", len(sr.Violations))
	return &dto.PresetApplication{Preset: preset, Set: &sr}, nil
}
