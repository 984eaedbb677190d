package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"

	apperrors "github.com/reglet-dev/drillspec/internal/application/errors"
	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/services"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

const (
	clearanceConeKey  = "clearance_cone"
	clearanceShankKey = "clearance_shank"
)

// CandidateLoader loads candidate parameter sets from YAML files.
//
// Parameter values may be written as strings, which are kept verbatim, or
// as YAML numbers, which are rendered as text in the candidate's locale so
// the field validator reads them back unchanged.
type CandidateLoader struct {
	locale language.Tag
}

// NewCandidateLoader creates a loader rendering numbers in locale unless
// a file names its own.
func NewCandidateLoader(locale language.Tag) *CandidateLoader {
	return &CandidateLoader{locale: locale}
}

// LoadCandidate loads and parses a candidate from a YAML file.
func (l *CandidateLoader) LoadCandidate(_ context.Context, path string) (*entities.CandidateSet, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate %s: %w", path, err)
	}

	cs, err := l.parse(data, defaultCandidateName(path))
	if err != nil {
		return nil, err
	}
	cs.Source = path
	return cs, nil
}

// LoadCandidateFromReader loads a candidate from an io.Reader. name is
// used when the document does not carry one.
func (l *CandidateLoader) LoadCandidateFromReader(r io.Reader, name string) (*entities.CandidateSet, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return l.parse(data, name)
}

func (l *CandidateLoader) parse(data []byte, fallbackName string) (*entities.CandidateSet, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(candidateSchemaFile, doc); err != nil {
		return nil, err
	}

	// The schema guarantees the shape below.
	root := doc.(map[string]any)

	cs := &entities.CandidateSet{Name: fallbackName}
	if name, ok := root["name"].(string); ok && strings.TrimSpace(name) != "" {
		cs.Name = strings.TrimSpace(name)
	}

	locale := l.locale
	if s, ok := root["locale"].(string); ok {
		tag, err := validation.ParseLocale(s)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", s, err)
		}
		locale = tag
		cs.Locale = tag.String()
	}

	params, _ := root["parameters"].(map[string]any)
	raw, err := rawParameters(params, validation.NewNumberFormat(locale))
	if err != nil {
		return nil, err
	}
	cs.Parameters = raw
	return cs, nil
}

// rawParameters maps the parameters section onto RawParameters. Unknown
// keys are rejected with the closest known keys as suggestions.
func rawParameters(params map[string]any, format validation.NumberFormat) (entities.RawParameters, error) {
	var raw entities.RawParameters

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]
		switch key {
		case clearanceConeKey:
			raw.ClearanceCone, _ = value.(bool)
			continue
		case clearanceShankKey:
			raw.ClearanceShank, _ = value.(bool)
			continue
		}

		field, err := values.ParseFieldID(key)
		if err != nil {
			return raw, apperrors.NewNotFoundError("parameter", key, services.Suggest(key, parameterKeys())...)
		}

		text, err := valueText(value, format)
		if err != nil {
			return raw, fmt.Errorf("parameter %s: %w", key, err)
		}
		raw.SetText(field, text)
	}
	return raw, nil
}

func valueText(value any, format validation.NumberFormat) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return "", fmt.Errorf("invalid number %s: %w", v, err)
		}
		return format.FormatValue(f), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

// parameterKeys returns every key accepted in the parameters section.
func parameterKeys() []string {
	keys := []string{clearanceConeKey, clearanceShankKey}
	for _, f := range values.AllFields() {
		keys = append(keys, f.String())
	}
	return keys
}

func defaultCandidateName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
