package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats run results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	formats     map[string]validation.NumberFormat
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		formats:     make(map[string]validation.NumberFormat),
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// numberFormat returns the format bounds of a set are printed in.
func (f *TableFormatter) numberFormat(locale string) validation.NumberFormat {
	if nf, ok := f.formats[locale]; ok {
		return nf
	}
	tag, err := validation.ParseLocale(locale)
	if err != nil {
		tag = validation.DefaultLocale
	}
	nf := validation.NewNumberFormat(tag)
	f.formats[locale] = nf
	return nf
}

// Format writes the run result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *execution.RunResult) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Run: %s (mode %s, locale %s)\n", f.colorize(result.RunID.String(), colorBold), result.Mode, result.Locale)
	fmt.Fprintf(f.writer, "Executed: %s\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(result.Sets) == 0 {
		fmt.Fprintln(f.writer, "No parameter sets validated.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Parameter sets:", colorBold))
	fmt.Fprintln(f.writer, rule)

	for _, set := range result.Sets {
		f.formatSet(set)
	}

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintln(f.writer)

	f.formatSummary(result.Summary)
	return nil
}

// formatSet formats a single parameter set.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSet(set execution.SetResult) {
	symbol, color := f.getStatusInfo(set.Status)
	fmt.Fprintf(f.writer, "%s %s", f.colorize(symbol, color), f.colorize(set.Name, color))
	if set.Source != "" {
		fmt.Fprintf(f.writer, " %s", f.colorize("("+set.Source+")", colorGray))
	}
	fmt.Fprintln(f.writer)

	fmt.Fprintf(f.writer, "  Status: %s\n", f.colorize(strings.ToUpper(string(set.Status)), color))
	fmt.Fprintf(f.writer, "  Feature: %s\n", set.Feature)

	nf := f.numberFormat(set.Locale)
	fmt.Fprintln(f.writer, "  Fields:")
	for _, field := range set.Fields {
		f.formatField(field, nf)
	}

	if len(set.Violations) > 0 {
		fmt.Fprintf(f.writer, "  %s:\n", f.colorize("Violations", colorRed))
		for _, v := range set.Violations {
			fmt.Fprintf(f.writer, "    - %s\n", f.colorize(v.Message, colorYellow))
		}
	}
	fmt.Fprintln(f.writer)
}

// formatField formats one field line with its allowed range.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatField(field execution.FieldResult, nf validation.NumberFormat) {
	symbol, color := f.getStatusInfo(field.Status)

	input := field.Input
	if strings.TrimSpace(input) == "" {
		input = "—"
	}
	bound := fmt.Sprintf("[%s-%s %s]", nf.FormatBound(field.Bound.Min), nf.FormatBound(field.Bound.Max), field.Unit)

	switch field.Status {
	case values.StatusSkipped:
		fmt.Fprintf(f.writer, "    %s %-22s %s\n", f.colorize(symbol, color), field.Name, f.colorize("disabled", colorGray))
	default:
		fmt.Fprintf(f.writer, "    %s %-22s %-10s %s\n", f.colorize(symbol, color), field.Name, input, f.colorize(bound, colorCyan))
	}
}

// formatSummary formats the summary statistics.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(summary execution.RunSummary) {
	fmt.Fprintln(f.writer, f.colorize("Summary:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	fmt.Fprintf(f.writer, "Sets:       %d total\n", summary.TotalSets)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedSets)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedSets)
	fmt.Fprintln(f.writer)

	fmt.Fprintf(f.writer, "Fields:     %d total\n", summary.TotalFields)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedFields)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedFields)
	fmt.Fprintf(f.writer, "  %s Skipped:  %d\n", f.colorize("⊘", colorGray), summary.SkippedFields)
	fmt.Fprintln(f.writer)

	fmt.Fprintf(f.writer, "Violations: %d total (empty %d, format %d, range %d)\n",
		summary.TotalViolations, summary.EmptyInputs, summary.FormatErrors, summary.RangeErrors)

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

// getStatusInfo returns a symbol and color for the given status.
func (f *TableFormatter) getStatusInfo(status values.Status) (string, string) {
	switch status {
	case values.StatusPass:
		return "✓", colorGreen
	case values.StatusFail:
		return "✗", colorRed
	case values.StatusSkipped:
		return "⊘", colorGray
	default:
		return "?", colorReset
	}
}
