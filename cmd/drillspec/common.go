package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// CommonOptions contains output flags shared by the reporting commands.
type CommonOptions struct {
	// Output
	Format string
	Output string

	// Execution
	Timeout time.Duration

	NoColor bool
}

// DefaultCommonOptions returns sensible defaults. An empty format falls
// back to the configured one.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 2 * time.Minute,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Execution
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for entire execution (0 to disable)")

	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml, junit, sarif (default from config, then table)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", opts.Output,
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable colored table output")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ResolveFormat returns the format flag, or fallback when it is unset.
func (opts *CommonOptions) ResolveFormat(fallback string) string {
	if opts.Format != "" {
		return opts.Format
	}
	if fallback != "" {
		return fallback
	}
	return "table"
}

// ValidateFlags validates common options against the supported formats.
func (opts *CommonOptions) ValidateFlags(format string, supported []string) error {
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout cannot be negative")
	}
	if !slices.Contains(supported, format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", format, strings.Join(supported, ", "))
	}
	return nil
}

// OpenWriter returns the output file, or the command's stdout when no
// file is set. The returned function closes the file.
func (opts *CommonOptions) OpenWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	if opts.Output == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	slog.Debug("writing output", "file", opts.Output)
	return file, func() {
		_ = file.Close() // Best-effort cleanup
	}, nil
}

// colorEnabled reports whether table output may use ANSI colors.
func (opts *CommonOptions) colorEnabled() bool {
	return !opts.NoColor && opts.Output == ""
}
