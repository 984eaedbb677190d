package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/drillspec/internal/application/dto"
	apperrors "github.com/reglet-dev/drillspec/internal/application/errors"
	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
)

// ValidateSetsUseCase validates candidate files concurrently and produces
// one run report. This is a pure application layer component that depends
// only on ports.
type ValidateSetsUseCase struct {
	resolver ports.PathResolver
	loader   ports.CandidateLoader
	metrics  ports.MetricsRecorder
	logger   *slog.Logger
	version  string
}

// NewValidateSetsUseCase creates a new validate use case. A nil metrics
// recorder disables metrics.
func NewValidateSetsUseCase(
	resolver ports.PathResolver,
	loader ports.CandidateLoader,
	metrics ports.MetricsRecorder,
	version string,
	logger *slog.Logger,
) *ValidateSetsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &ValidateSetsUseCase{
		resolver: resolver,
		loader:   loader,
		metrics:  metrics,
		logger:   logger,
		version:  version,
	}
}

// Execute runs the complete validation workflow.
func (uc *ValidateSetsUseCase) Execute(ctx context.Context, req dto.ValidateRequest) (*dto.ValidateResponse, error) {
	startTime := time.Now()

	// 1. Options
	locale, err := validation.ParseLocale(req.Locale)
	if err != nil {
		return nil, apperrors.NewConfigurationError("locale", fmt.Sprintf("invalid locale %q", req.Locale), err)
	}
	mode := req.Mode
	if mode == "" {
		mode = execution.ModeCommit
	}
	if mode != execution.ModeCommit && mode != execution.ModeCheck {
		return nil, apperrors.NewValidationError("mode", fmt.Sprintf("unknown mode %q", mode))
	}

	// 2. Files
	files, err := uc.resolver.Expand(ctx, req.Patterns)
	if err != nil {
		return nil, apperrors.NewConfigurationError("paths", "failed to expand candidate paths", err)
	}
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("paths", "no candidate files matched", req.Patterns...)
	}
	uc.logger.Info("validating candidates", "files", len(files), "mode", string(mode), "locale", locale.String())

	// 3. Validate
	result, err := uc.run(ctx, files, mode, NewSetEvaluator(locale, uc.logger), req.Concurrency)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("validation complete",
		"duration", result.Duration,
		"total_sets", result.Summary.TotalSets,
		"passed", result.Summary.PassedSets,
		"failed", result.Summary.FailedSets,
		"violations", result.Summary.TotalViolations)

	return &dto.ValidateResponse{
		Result: result,
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
		Diagnostics: dto.Diagnostics{
			Files: files,
		},
	}, nil
}

// run evaluates every file with at most concurrency sets in flight.
func (uc *ValidateSetsUseCase) run(
	ctx context.Context,
	files []string,
	mode execution.Mode,
	evaluator *SetEvaluator,
	concurrency int,
) (*execution.RunResult, error) {
	result := execution.NewRunResult(uc.version, mode, evaluator.Locale().String())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, concurrency))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			cs, err := uc.loader.LoadCandidate(gctx, path)
			if err != nil {
				return apperrors.NewValidationError("candidate", fmt.Sprintf("failed to load %s", path), err.Error())
			}

			sr, _, err := evaluator.Evaluate(i, *cs, mode)
			if err != nil {
				return apperrors.NewValidationError("candidate", fmt.Sprintf("failed to evaluate %s", path), err.Error())
			}

			result.AddSetResult(sr)
			uc.metrics.ObserveSet(&sr)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Finalize()
	uc.metrics.ObserveRun(result)
	return result, nil
}

// CheckFailed returns true if the run result has any failed set.
func (uc *ValidateSetsUseCase) CheckFailed(result *execution.RunResult) bool {
	return result.Summary.FailedSets > 0
}

type noopMetrics struct{}

func (noopMetrics) ObserveSet(*execution.SetResult) {}
func (noopMetrics) ObserveRun(*execution.RunResult) {}
