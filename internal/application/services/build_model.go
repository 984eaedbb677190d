package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/drillspec/internal/application/dto"
	apperrors "github.com/reglet-dev/drillspec/internal/application/errors"
	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
)

// BuildModelUseCase validates one parameter set and, only when it is free
// of violations, hands it to the model builder.
type BuildModelUseCase struct {
	loader    ports.CandidateLoader
	presets   *PresetService
	builder   ports.ModelBuilder
	evaluator *SetEvaluator
	logger    *slog.Logger
}

// NewBuildModelUseCase creates a new build use case.
func NewBuildModelUseCase(
	loader ports.CandidateLoader,
	presets *PresetService,
	builder ports.ModelBuilder,
	evaluator *SetEvaluator,
	logger *slog.Logger,
) *BuildModelUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildModelUseCase{
		loader:    loader,
		presets:   presets,
		builder:   builder,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Execute commits the requested candidate, re-checks the stored values
// and builds the model. A set with violations is returned as a
// ValidationError listing every message, and the builder is not called.
func (uc *BuildModelUseCase) Execute(ctx context.Context, req dto.BuildRequest) (*dto.BuildResponse, error) {
	startTime := time.Now()

	if (req.CandidatePath == "") == (req.PresetName == "") {
		return nil, apperrors.NewValidationError("build", "exactly one of a candidate file or a preset name is required")
	}

	evaluator := uc.evaluator
	if req.Locale != "" {
		locale, err := validation.ParseLocale(req.Locale)
		if err != nil {
			return nil, apperrors.NewConfigurationError("locale", fmt.Sprintf("invalid locale %q", req.Locale), err)
		}
		evaluator = evaluator.WithLocale(locale)
	}

	cs, err := uc.candidate(ctx, req, evaluator)
	if err != nil {
		return nil, err
	}

	sr, params, err := evaluator.Evaluate(0, *cs, execution.ModeCommit)
	if err != nil {
		return nil, apperrors.NewValidationError("candidate", err.Error())
	}
	if sr.Status.IsFailure() {
		uc.logger.Info("build refused", "name", cs.Name, "violations", len(sr.Violations))
		return nil, apperrors.NewValidationError("parameters", fmt.Sprintf("%s has violations", cs.Name), sr.Messages()...)
	}

	path, err := uc.builder.Build(ctx, params)
	if err != nil {
		return nil, apperrors.NewBuildError(cs.Name, "model builder failed", err)
	}
	uc.logger.Info("model built", "name", cs.Name, "artifact", path)

	return &dto.BuildResponse{
		Set:          &sr,
		ArtifactPath: path,
		Built:        true,
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}, nil
}

func (uc *BuildModelUseCase) candidate(ctx context.Context, req dto.BuildRequest, evaluator *SetEvaluator) (*entities.CandidateSet, error) {
	if req.CandidatePath != "" {
		cs, err := uc.loader.LoadCandidate(ctx, req.CandidatePath)
		if err != nil {
			return nil, apperrors.NewValidationError("candidate", fmt.Sprintf("failed to load %s", req.CandidatePath), err.Error())
		}
		return cs, nil
	}

	preset, err := uc.presets.Show(ctx, req.PresetName, req.CatalogPath)
	if err != nil {
		return nil, err
	}
	cs := CandidateFromPreset(*preset, evaluator.Locale())
	return &cs, nil
}
