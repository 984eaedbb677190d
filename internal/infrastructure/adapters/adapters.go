// Package adapters provides infrastructure adapters that implement application ports.
// These adapters wrap existing infrastructure components to satisfy port interfaces.
package adapters

import (
	"context"

	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/infrastructure/system"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.SystemConfigProvider = (*SystemConfigAdapter)(nil)
)

// SystemConfigAdapter wraps system.ConfigLoader to implement ports.SystemConfigProvider.
type SystemConfigAdapter struct {
	loader *system.ConfigLoader
}

// NewSystemConfigAdapter creates a new system config adapter.
func NewSystemConfigAdapter() *SystemConfigAdapter {
	return &SystemConfigAdapter{
		loader: system.NewConfigLoader(),
	}
}

// LoadConfig loads system configuration from path, or from
// ~/.drillspec/config.yaml when path is empty.
func (a *SystemConfigAdapter) LoadConfig(ctx context.Context, path string) (*system.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		path = system.DefaultConfigPath()
	}
	return a.loader.Load(path)
}
