package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix scopes environment overrides, e.g. DRILLSPEC_LOCALE=en.
const envPrefix = "drillspec"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	cfgFile string
	verbose bool
	quiet   bool
	locale  string
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "drillspec",
		Short: "Drill bit parameter validation",
		Long: `drillspec validates candidate drill bit parameter sets against the
dimensional constraints of the drill model. Every bound that depends on
another dimension is recomputed from the values entered, and every
violation is reported in one pass before a set is handed to the CAD model
builder.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if g.verbose && g.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			initConfig(g)
			setupLogging(cmd.ErrOrStderr(), g)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.cfgFile, "config", "", "config file (default is $HOME/.drillspec.yaml)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&g.quiet, "quiet", "q", false, "only log errors")
	flags.StringVar(&g.locale, "locale", "", "number locale as a BCP 47 tag (default from config, then ru)")
	_ = viper.BindPFlag("locale", flags.Lookup("locale"))

	rootCmd.AddCommand(
		newValidateCmd(g),
		newBuildCmd(g),
		newBoundsCmd(g),
		newPresetCmd(g),
		newConfigureCmd(g),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig loads configuration from the config file and environment.
func initConfig(g *globalOptions) {
	if g.cfgFile != "" {
		viper.SetConfigFile(g.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".drillspec")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging(w io.Writer, g *globalOptions) {
	level := slog.LevelInfo
	switch {
	case g.verbose:
		level = slog.LevelDebug
	case g.quiet:
		level = slog.LevelError
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
