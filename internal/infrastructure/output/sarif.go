// Package output provides formatters for drillspec run results.
package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

const (
	sarifToolName = "drillspec"
	sarifToolURI  = "https://github.com/reglet-dev/drillspec"
)

// SARIFFormatter formats run results as SARIF 2.1.0 JSON.
// Every parameter field is a rule and every violation a result located
// in the candidate file it came from.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout)
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{
		writer: writer,
	}
}

// Format writes the run result as SARIF 2.1.0 JSON.
// Returns error if SARIF creation or marshaling fails.
func (f *SARIFFormatter) Format(result *execution.RunResult) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	if result.Version != "" {
		run.Tool.Driver.Version = ptrString(result.Version)
	}

	mapper := newSARIFMapper(result)
	mapper.mapToRun(run)

	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}
