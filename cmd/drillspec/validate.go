package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/drillspec/internal/application/dto"
	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

// errViolations marks a run that completed but reported violations.
var errViolations = errors.New("validation failed")

type validateOptions struct {
	CommonOptions

	Commit          bool
	Watch           bool
	Concurrency     int
	MetricsTextfile string
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	opts := &validateOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "validate FILE|GLOB...",
		Short: "Validate candidate parameter sets",
		Long: `Validate one or more candidate parameter set files. Arguments are files,
directories (searched for *.yaml and *.yml) or doublestar patterns such as
'sets/**/*.yaml'.

By default every field is checked against the bounds derived from the
diameter, working length and total length as typed. With --commit each set
is applied field by field the way an editor commits it, so a rejected
value keeps the previous one and later bounds follow the committed values.

The command exits non-zero when any set has violations.`,
		Example: `  drillspec validate drill.yaml
  drillspec validate 'sets/**/*.yaml' --format junit -o report.xml
  drillspec validate sets --commit --locale en
  drillspec validate drill.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			return runValidate(cc, cmd, args, opts)
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().BoolVar(&opts.Commit, "commit", false, "Commit fields in order instead of checking them against the typed values")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Sets validated in parallel (default from config)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-validate whenever a candidate file changes")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write prometheus metrics to this file after every run")

	return cmd
}

// runValidate implements the core logic for the validate command
func runValidate(cc *CommandContext, cmd *cobra.Command, args []string, opts *validateOptions) error {
	cfg := cc.Container.SystemConfig()

	format := opts.ResolveFormat(cfg.Format)
	if err := opts.ValidateFlags(format, cc.Container.FormatterFactory().SupportedFormats()); err != nil {
		return err
	}
	if opts.Concurrency < 0 {
		return fmt.Errorf("--concurrency cannot be negative")
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = cfg.Concurrency
	}
	if opts.MetricsTextfile == "" {
		opts.MetricsTextfile = cfg.Metrics.Textfile
	}

	mode := execution.ModeCheck
	if opts.Commit {
		mode = execution.ModeCommit
	}

	req := dto.ValidateRequest{
		Patterns:    args,
		Mode:        mode,
		Locale:      cc.Container.Locale().String(),
		Concurrency: opts.Concurrency,
	}

	if !opts.Watch {
		ctx, cancel := opts.ApplyToContext(cc.Context)
		defer cancel()
		return validateOnce(ctx, cc, cmd, req, format, opts)
	}
	return watchAndValidate(cc, cmd, req, format, opts)
}

// validateOnce runs one validation and writes its report.
func validateOnce(ctx context.Context, cc *CommandContext, cmd *cobra.Command, req dto.ValidateRequest, format string, opts *validateOptions) error {
	req.Metadata = dto.RequestMetadata{RequestID: uuid.NewString()}

	resp, err := cc.Container.ValidateSetsUseCase().Execute(ctx, req)
	if err != nil {
		return err
	}
	result := resp.Result

	if opts.MetricsTextfile != "" {
		if err := cc.Container.Metrics().WriteTextfile(opts.MetricsTextfile); err != nil {
			cc.Logger.Warn("failed to export metrics", "error", err)
		}
	}

	writer, closeWriter, err := opts.OpenWriter(cmd)
	if err != nil {
		return err
	}
	defer closeWriter()

	formatter, err := cc.Container.FormatterFactory().Create(format, writer, ports.FormatterOptions{
		Indent:  true,
		NoColor: !opts.colorEnabled(),
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Return non-zero exit code if there were violations
	if cc.Container.ValidateSetsUseCase().CheckFailed(result) {
		return fmt.Errorf("%w: %d passed, %d failed, %d violations",
			errViolations,
			result.Summary.PassedSets,
			result.Summary.FailedSets,
			result.Summary.TotalViolations)
	}
	return nil
}

// watchAndValidate validates once and again after every change to one of
// the matched files, until interrupted.
func watchAndValidate(cc *CommandContext, cmd *cobra.Command, req dto.ValidateRequest, format string, opts *validateOptions) error {
	ctx, stop := signal.NotifyContext(cc.Context, os.Interrupt)
	defer stop()

	files, err := cc.Container.PathResolver().Expand(ctx, req.Patterns)
	if err != nil {
		return err
	}

	rerun := func() {
		runCtx, cancel := opts.ApplyToContext(ctx)
		defer cancel()
		err := validateOnce(runCtx, cc, cmd, req, format, opts)
		switch {
		case err == nil:
		case errors.Is(err, errViolations):
			cc.Logger.Info("violations found", "detail", err)
		default:
			cc.Logger.Error("validation failed", "error", err)
		}
	}

	rerun()
	cc.Logger.Info("watching for changes", "files", len(files))

	return cc.Container.Watcher().Watch(ctx, files, func(path string) {
		cc.Logger.Info("file changed", "path", path)
		rerun()
	})
}
