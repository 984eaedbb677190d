package dto

import (
	"time"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

// ValidateResponse contains the result of validating candidate sets.
type ValidateResponse struct {
	// Result contains the detailed run results
	Result *execution.RunResult

	// Metadata contains response metadata
	Metadata ResponseMetadata

	// Diagnostics contains additional diagnostic information
	Diagnostics Diagnostics
}

// BuildResponse contains the result of a build request.
type BuildResponse struct {
	// Set is the validation result the build decision was based on
	Set *execution.SetResult

	// ArtifactPath is where the builder wrote its output, empty when
	// the set did not validate
	ArtifactPath string

	Metadata ResponseMetadata

	// Built reports whether the model builder was invoked
	Built bool
}

// PresetApplication is the outcome of applying one preset.
type PresetApplication struct {
	Preset *entities.Preset
	Set    *execution.SetResult
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// RequestID from the original request
	RequestID string

	// Duration is how long the request took
	Duration time.Duration
}

// Diagnostics contains diagnostic information about a run.
type Diagnostics struct {
	// Warnings are non-fatal issues encountered
	Warnings []string

	// Files lists every candidate file that was validated
	Files []string
}
