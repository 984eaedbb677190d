package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load_FileNotExists(t *testing.T) {
	loader := NewConfigLoader()
	cfg, err := loader.Load("/nonexistent/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigLoader_Load_EmptyPath(t *testing.T) {
	cfg, err := NewConfigLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Locale)
}

func TestConfigLoader_Load_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yaml := `
locale: en-US
concurrency: 8
presets_path: /etc/drillspec/presets.yaml
metrics:
  textfile: /var/lib/node_exporter/drillspec.prom
`
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0600))

	cfg, err := NewConfigLoader().Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "/etc/drillspec/presets.yaml", cfg.PresetsPath)
	assert.Equal(t, "/var/lib/node_exporter/drillspec.prom", cfg.Metrics.Textfile)
	// untouched keys keep their defaults
	assert.Equal(t, "table", cfg.Format)
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, "drillspec", cfg.Metrics.Namespace)
}

func TestConfigLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "locale: [", "failed to parse system config"},
		{"bad concurrency", "concurrency: 0", "concurrency must be at least 1"},
		{"bad locale", "locale: \"not a locale!\"", "invalid locale"},
		{"empty format", "format: \"\"", "format cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := NewConfigLoader().Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
