package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/drillspec/internal/application/dto"
	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/version"
)

func newPresetCmd(g *globalOptions) *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Browse and apply drill presets",
		Long: `Presets are named parameter sets shipped with drillspec. A catalog file
given with --catalog is merged over the builtin presets; a preset with the
same name replaces the builtin one.`,
	}
	cmd.PersistentFlags().StringVar(&catalog, "catalog", "", "Additional preset catalog merged over the builtin one")

	cmd.AddCommand(
		newPresetListCmd(g, &catalog),
		newPresetShowCmd(g, &catalog),
		newPresetApplyCmd(g, &catalog),
	)
	return cmd
}

func newPresetListCmd(g *globalOptions, catalog *string) *cobra.Command {
	var filterExpr string
	var features []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Example: `  drillspec preset list
  drillspec preset list --feature shank
  drillspec preset list --filter "diameter >= 10 && feature == 'cone'"`,
		Args: cobra.NoArgs,
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			presets, err := cc.Container.PresetService().List(cc.Context, dto.PresetQuery{
				FilterExpression: filterExpr,
				Features:         features,
				CatalogPath:      *catalog,
			})
			if err != nil {
				return err
			}
			return writePresetTable(cmd.OutOrStdout(), presets, validation.NewNumberFormat(cc.Container.Locale()))
		}),
	}

	cmd.Flags().StringVar(&filterExpr, "filter", "", "Filter expression (e.g. \"diameter >= 10 && feature == 'shank'\")")
	cmd.Flags().StringSliceVar(&features, "feature", nil, "Only presets with these features: none, cone, shank")
	return cmd
}

func writePresetTable(w io.Writer, presets []entities.Preset, format validation.NumberFormat) error {
	if len(presets) == 0 {
		_, _ = fmt.Fprintln(w, "No presets match.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tD\tL\tTOTAL\tANGLE\tFEATURE")
	for _, p := range presets {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			format.FormatValue(p.Diameter),
			format.FormatValue(p.WorkingLength),
			format.FormatValue(p.TotalLength),
			format.FormatValue(p.Angle),
			p.FeatureValue())
	}
	return tw.Flush()
}

func newPresetShowCmd(g *globalOptions, catalog *string) *cobra.Command {
	return &cobra.Command{
		Use:     "show NAME",
		Short:   "Show one preset",
		Example: `  drillspec preset show "Сверло Ø10мм с хвостовиком"`,
		Args:    cobra.ExactArgs(1),
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			preset, err := cc.Container.PresetService().Show(cc.Context, args[0], *catalog)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(preset)
			if err != nil {
				return fmt.Errorf("failed to encode preset: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}),
	}
}

func newPresetApplyCmd(g *globalOptions, catalog *string) *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "apply NAME",
		Short: "Apply a preset to a new drill and report every violation",
		Long: `Apply a preset the way the editor does: its values are entered as text
in the active locale and committed field by field. Presets are not trusted,
so the report lists every violation the preset produces.`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			return runPresetApply(cc, cmd, args[0], *catalog, &opts)
		}),
	}
	opts.RegisterFlags(cmd)
	return cmd
}

func runPresetApply(cc *CommandContext, cmd *cobra.Command, name, catalog string, opts *CommonOptions) error {
	format := opts.ResolveFormat(cc.Container.SystemConfig().Format)
	if err := opts.ValidateFlags(format, cc.Container.FormatterFactory().SupportedFormats()); err != nil {
		return err
	}

	app, err := cc.Container.PresetService().Apply(cc.Context, dto.ApplyPresetRequest{
		Name:        name,
		Locale:      cc.Container.Locale().String(),
		CatalogPath: catalog,
	})
	if err != nil {
		return err
	}

	result := execution.NewRunResult(version.Version, execution.ModeCommit, cc.Container.Locale().String())
	result.AddSetResult(*app.Set)
	result.Finalize()

	writer, closeWriter, err := opts.OpenWriter(cmd)
	if err != nil {
		return err
	}
	defer closeWriter()

	formatter, err := cc.Container.FormatterFactory().Create(format, writer, ports.FormatterOptions{
		Indent:  true,
		NoColor: !opts.colorEnabled(),
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if result.HasFailures() {
		return fmt.Errorf("%w: preset %q has %d violations", errViolations, app.Preset.Name, len(app.Set.Violations))
	}
	return nil
}
