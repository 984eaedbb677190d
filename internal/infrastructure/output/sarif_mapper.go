package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

type sarifMapper struct {
	result    *execution.RunResult
	cwd       string                     // Current working directory
	artifacts map[string]*sarif.Artifact // Deduplicated artifacts
	order     []string                   // Artifact URIs in first-seen order
}

func newSARIFMapper(result *execution.RunResult) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		result:    result,
		cwd:       cwd,
		artifacts: make(map[string]*sarif.Artifact),
	}
}

// mapToRun populates the SARIF run with rules, results, artifacts, and invocations.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifacts(run)
	m.addInvocation(run)
	m.addProperties(run)
}

// addRules declares one rule per parameter field.
func (m *sarifMapper) addRules(run *sarif.Run) {
	for _, field := range values.AllFields() {
		rule := sarif.NewReportingDescriptor().WithID(field.String())
		rule.WithName(field.DisplayName())

		short := fmt.Sprintf("%s is within its allowed range", field.DisplayName())
		rule.WithShortDescription(&sarif.MultiformatMessageString{
			Text: &short,
		})

		full := fmt.Sprintf("%s must be present, numeric and within its derived bound (%s).", field.DisplayName(), field.Unit())
		if field.IsOptional() {
			full += fmt.Sprintf(" Checked only when the %s feature is selected.", field.Feature())
		}
		rule.WithFullDescription(&sarif.MultiformatMessageString{
			Text: &full,
		})

		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: "error",
		})

		props := sarif.NewPropertyBag()
		props.Add("unit", field.Unit())
		if field.IsOptional() {
			props.Add("feature", field.Feature().String())
		}
		rule.WithProperties(props)

		run.Tool.Driver.AddRule(rule)
	}
}

// addResults emits one result per violation and one passing result per
// clean set.
func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, set := range m.result.Sets {
		if len(set.Violations) == 0 {
			run.AddResult(m.passResult(set))
			continue
		}
		for _, v := range set.Violations {
			run.AddResult(m.violationResult(set, v))
		}
	}
}

func (m *sarifMapper) violationResult(set execution.SetResult, v validation.Violation) *sarif.Result {
	result := sarif.NewRuleResult(v.Field.String())
	result.Level = "error"
	result.Kind = "fail"
	result.Message = sarif.NewTextMessage(v.Message)

	if loc := m.location(set); loc != nil {
		result.Locations = []*sarif.Location{loc}
	}

	props := sarif.NewPropertyBag()
	props.Add("set", set.Name)
	props.Add("violationKind", v.Kind.String())
	props.Add("input", set.Input(v.Field))
	if v.Guard {
		props.Add("zeroGuard", true)
	}
	result.WithProperties(props)

	return result
}

func (m *sarifMapper) passResult(set execution.SetResult) *sarif.Result {
	result := sarif.NewRuleResult(values.FieldDiameter.String())
	result.Level = "note"
	result.Kind = "pass"
	result.Message = sarif.NewTextMessage(fmt.Sprintf("Parameter set %s passed", set.Name))

	if loc := m.location(set); loc != nil {
		result.Locations = []*sarif.Location{loc}
	}

	props := sarif.NewPropertyBag()
	props.Add("set", set.Name)
	props.Add("feature", set.Feature.String())
	props.Add("duration_ms", set.Duration.Milliseconds())
	result.WithProperties(props)

	return result
}

// location points at the candidate file of a set. Sets that did not come
// from a file have no location.
func (m *sarifMapper) location(set execution.SetResult) *sarif.Location {
	if set.Source == "" || strings.HasPrefix(set.Source, "preset:") {
		return nil
	}

	uri := m.normalizeURI(set.Source)
	m.registerArtifact(set.Source, uri)

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri))
	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path) // Fallback to original
	}

	// Try to make relative to CWD
	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

// registerArtifact adds a candidate file to the artifacts (deduplicated).
func (m *sarifMapper) registerArtifact(path, uri string) {
	if _, exists := m.artifacts[uri]; exists {
		return
	}

	artifact := sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(uri))

	// Candidate files are small; embed them so viewers can show context
	const maxContentSize = 64 * 1024
	if info, err := os.Stat(path); err == nil && !info.IsDir() && info.Size() < maxContentSize {
		//nolint:gosec // G304: path is a candidate file the run just loaded
		if content, err := os.ReadFile(path); err == nil {
			artifact.WithContents(sarif.NewArtifactContent().WithText(string(content)))
			artifact.WithLength(len(content))
		}
	}

	m.artifacts[uri] = artifact
	m.order = append(m.order, uri)
}

// addArtifacts adds collected artifacts to the run.
func (m *sarifMapper) addArtifacts(run *sarif.Run) {
	for _, uri := range m.order {
		run.AddArtifact(m.artifacts[uri])
	}
}

// addInvocation adds run metadata.
func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()

	invocation.ExecutionSuccessful = ptrBool(m.result.Summary.FailedSets == 0)

	// Timestamps (UTC, ISO 8601 format)
	startTime := m.result.StartTime.UTC().Format("2006-01-02T15:04:05.000Z")
	endTime := m.result.EndTime.UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &startTime
	invocation.EndTimeUtc = &endTime

	if hostname, err := os.Hostname(); err == nil {
		invocation.Machine = &hostname
	}

	if m.cwd != "" {
		cwd := "file://" + filepath.ToSlash(m.cwd)
		invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI(cwd)
	}

	props := sarif.NewPropertyBag()
	props.Add("runId", m.result.RunID.String())
	props.Add("mode", string(m.result.Mode))
	props.Add("locale", m.result.Locale)
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

// addProperties adds summary statistics to run properties.
func (m *sarifMapper) addProperties(run *sarif.Run) {
	props := sarif.NewPropertyBag()
	props.Add("summary", m.result.Summary)
	run.WithProperties(props)
}

func ptrBool(b bool) *bool {
	return &b
}
