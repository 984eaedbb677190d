// Package system provides infrastructure for system-level configuration.
// This covers the optional system config file (~/.drillspec/config.yaml).
package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/drillspec/internal/domain/validation"
)

// Config represents the global configuration file (~/.drillspec/config.yaml).
// This is infrastructure-level configuration separate from candidate files.
type Config struct {
	Locale      string        `yaml:"locale"`
	Format      string        `yaml:"format"`
	Concurrency int           `yaml:"concurrency"`
	PresetsPath string        `yaml:"presets_path"`
	OutputDir   string        `yaml:"output_dir"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// MetricsConfig configures the prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written after every run when set
	Textfile string `yaml:"textfile"`
	// Namespace prefixes every metric name
	Namespace string `yaml:"namespace"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		Locale:      "ru",
		Format:      "table",
		Concurrency: 4,
		OutputDir:   "build",
		Metrics: MetricsConfig{
			Namespace: "drillspec",
		},
	}
}

// DefaultConfigPath returns ~/.drillspec/config.yaml, or an empty string
// when the home directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drillspec", "config.yaml")
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig(). Keys missing from
// the file keep their default values.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if _, err := validation.ParseLocale(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Format == "" {
		return fmt.Errorf("format cannot be empty")
	}
	return nil
}
