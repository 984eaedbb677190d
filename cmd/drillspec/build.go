package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/drillspec/internal/application/dto"
	apperrors "github.com/reglet-dev/drillspec/internal/application/errors"
)

type buildOptions struct {
	Preset    string
	Catalog   string
	OutputDir string
}

func newBuildCmd(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build (FILE | --preset NAME)",
		Short: "Validate a parameter set and write its build manifest",
		Long: `Commit a candidate file or a named preset, re-check the stored values
against the final bounds and, only when no violation remains, write a
build manifest for the CAD model builder.

Manifests are named Drill_{d}x{L}_{feature}_{timestamp}.yaml and written
to --output-dir (default from config, then ./build).`,
		Example: `  drillspec build drill.yaml
  drillspec build --preset "Сверло Ø10мм с конусом" --output-dir models`,
		Args: cobra.MaximumNArgs(1),
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			return runBuild(cc, cmd, args, opts)
		}),
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", "", "Build a preset from the catalog instead of a file")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Additional preset catalog merged over the builtin one")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory for build manifests")

	return cmd
}

func runBuild(cc *CommandContext, cmd *cobra.Command, args []string, opts *buildOptions) error {
	req := dto.BuildRequest{
		PresetName:  opts.Preset,
		CatalogPath: opts.Catalog,
		Locale:      cc.Container.Locale().String(),
		Metadata:    dto.RequestMetadata{RequestID: uuid.NewString()},
	}
	if len(args) == 1 {
		req.CandidatePath = args[0]
	}

	resp, err := cc.Container.BuildModelUseCase().Execute(cc.Context, req)
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			for _, d := range verr.Details {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s\n", d)
			}
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: manifest written to %s\n", resp.Set.Name, resp.ArtifactPath)
	return nil
}
