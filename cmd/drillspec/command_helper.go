package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/drillspec/internal/infrastructure/container"
)

// CommandContext provides common command dependencies.
// Eliminates repetitive container initialization across CLI commands.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
// Commands focus on business logic, not infrastructure setup.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// Handles common setup: config loading, logger creation, dependency injection.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "list",
//	    RunE: withContainer(g, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        presets, err := ctx.Container.PresetService().List(ctx.Context, dto.PresetQuery{})
//	        ...
//	    }),
//	}
func withContainer(g *globalOptions, handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		logger := slog.Default()

		// Flag > DRILLSPEC_LOCALE > config file; empty falls through to the system config
		locale := viper.GetString("locale")

		// Only build defines --output-dir; the lookup error is irrelevant elsewhere
		outputDir, _ := cmd.Flags().GetString("output-dir")

		// Initialize container with dependencies
		c, err := container.New(container.Options{
			SystemConfigPath: g.cfgFile,
			Locale:           locale,
			OutputDir:        outputDir,
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Create command context
		cc := &CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
		}

		// Execute handler
		return handler(cc, cmd, args)
	}
}
