package config

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
)

// SupportedCatalogVersions is the range of catalog format versions this
// build understands.
const SupportedCatalogVersions = ">= 1.0.0, < 2.0.0"

// CatalogLoader loads preset catalogs from the embedded builtin file or
// from disk.
type CatalogLoader struct {
	constraint *semver.Constraints
}

// NewCatalogLoader creates a new catalog loader.
func NewCatalogLoader() *CatalogLoader {
	c, err := semver.NewConstraint(SupportedCatalogVersions)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog version constraint: %v", err))
	}
	return &CatalogLoader{constraint: c}
}

// LoadBuiltin returns a fresh copy of the builtin catalog.
func (l *CatalogLoader) LoadBuiltin(_ context.Context) (*entities.PresetCatalog, error) {
	data, err := assets.ReadFile(builtinPresetsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read builtin presets: %w", err)
	}
	return l.parse(data)
}

// LoadCatalog loads a catalog file.
func (l *CatalogLoader) LoadCatalog(_ context.Context, path string) (*entities.PresetCatalog, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset catalog %s: %w", path, err)
	}
	return l.parse(data)
}

func (l *CatalogLoader) parse(data []byte) (*entities.PresetCatalog, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(catalogSchemaFile, doc); err != nil {
		return nil, err
	}

	var catalog entities.PresetCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode preset catalog: %w", err)
	}

	if err := l.checkVersion(catalog.Version); err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("preset catalog validation failed: %w", err)
	}
	return &catalog, nil
}

func (l *CatalogLoader) checkVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("preset catalog version %q is not valid semver: %w", version, err)
	}
	if !l.constraint.Check(v) {
		return fmt.Errorf("preset catalog version %s is not supported (want %s)", v, SupportedCatalogVersions)
	}
	return nil
}
