package config

import "embed"

// assets holds the JSON schemas and the builtin preset catalog.
//
//go:embed schemas/*.json presets/*.yaml
var assets embed.FS

const (
	candidateSchemaFile = "schemas/candidate.schema.json"
	catalogSchemaFile   = "schemas/preset_catalog.schema.json"
	builtinPresetsFile  = "presets/builtin.yaml"
)
