package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/drillspec/internal/version"
)

// newVersionCmd implements the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of drillspec",
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "drillspec version %s\n", info.Full())
		},
	}
}
