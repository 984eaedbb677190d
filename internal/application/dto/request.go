// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

// ValidateRequest encapsulates all inputs needed to validate candidate sets.
type ValidateRequest struct {
	// Patterns are file paths or doublestar globs
	Patterns []string

	// Mode selects commit or check semantics
	Mode execution.Mode

	// Locale is the BCP 47 tag used for candidates that do not name one
	Locale string

	Metadata RequestMetadata

	// Concurrency limits parallel validation (0 = one set at a time)
	Concurrency int
}

// BuildRequest encapsulates inputs for building one drill model.
// Exactly one of CandidatePath and PresetName is set.
type BuildRequest struct {
	CandidatePath string
	PresetName    string
	Locale        string

	// CatalogPath is an optional catalog merged over the builtin one
	CatalogPath string
	Metadata    RequestMetadata
}

// PresetQuery selects presets from the catalog.
type PresetQuery struct {
	// FilterExpression is an expr-lang boolean expression over PresetEnv
	FilterExpression string

	// Features limits the result to the named feature variants
	Features []string

	// CatalogPath is an optional catalog merged over the builtin one
	CatalogPath string
}

// ApplyPresetRequest encapsulates inputs for applying a preset.
type ApplyPresetRequest struct {
	Name        string
	Locale      string
	CatalogPath string
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
