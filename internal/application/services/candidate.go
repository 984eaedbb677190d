package services

import (
	"golang.org/x/text/language"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
)

// presetSourcePrefix marks candidates that came from the preset catalog.
const presetSourcePrefix = "preset:"

// CandidateFromPreset renders a preset as a candidate set in locale, the
// same way a user would have typed its values.
func CandidateFromPreset(p entities.Preset, locale language.Tag) entities.CandidateSet {
	format := validation.NewNumberFormat(locale)
	return entities.CandidateSet{
		Name:       p.Name,
		Source:     presetSourcePrefix + p.Name,
		Locale:     locale.String(),
		Parameters: p.Raw(format.FormatValue),
	}
}
