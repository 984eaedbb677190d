package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

type boundsOptions struct {
	Diameter      float64
	WorkingLength float64
	TotalLength   float64
	Format        string
}

// boundRow is one field of the bounds listing.
type boundRow struct {
	Field values.FieldID `json:"field" yaml:"field"`
	Name  string         `json:"name" yaml:"name"`
	Unit  string         `json:"unit" yaml:"unit"`
	Min   float64        `json:"min" yaml:"min"`
	Max   float64        `json:"max" yaml:"max"`
}

func newBoundsCmd(g *globalOptions) *cobra.Command {
	opts := &boundsOptions{Format: "table"}

	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the allowed range of every parameter",
		Long: `Print the lower and upper bound of every parameter for the given
diameter, working length and total length. Omitted values use the
defaults of a new drill (diameter 10, working length 55, total length 75).`,
		Example: `  drillspec bounds
  drillspec bounds --diameter 20 --working-length 100
  drillspec bounds --diameter 2.5 --locale en --format json`,
		Args: cobra.NoArgs,
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			return runBounds(cc, cmd, opts)
		}),
	}

	cmd.Flags().Float64Var(&opts.Diameter, "diameter", entities.DefaultDiameter, "Drill diameter d")
	cmd.Flags().Float64Var(&opts.WorkingLength, "working-length", 0, "Working length l (default 55)")
	cmd.Flags().Float64Var(&opts.TotalLength, "total-length", 0, "Total length L (default 75)")
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format, "Output format: table, json, yaml")

	return cmd
}

func runBounds(cc *CommandContext, cmd *cobra.Command, opts *boundsOptions) error {
	params := entities.NewParameterSet()
	if cmd.Flags().Changed("diameter") {
		params.SetDiameter(opts.Diameter)
	}
	if cmd.Flags().Changed("working-length") {
		params.SetWorkingLength(opts.WorkingLength)
	}
	if cmd.Flags().Changed("total-length") {
		params.SetTotalLength(opts.TotalLength)
	}

	rows := make([]boundRow, 0, len(values.AllFields()))
	for _, f := range values.AllFields() {
		b := params.Bound(f)
		rows = append(rows, boundRow{Field: f, Name: f.DisplayName(), Unit: f.Unit(), Min: b.Min, Max: b.Max})
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(out).Encode(rows)
	case "table":
		format := validation.NewNumberFormat(cc.Container.Locale())
		return writeBoundsTable(out, params, rows, format)
	default:
		return fmt.Errorf("invalid format: %s (valid: table, json, yaml)", opts.Format)
	}
}

// writeBoundsTable prints the bounds followed by any root value that is
// itself outside its range.
func writeBoundsTable(w io.Writer, params *entities.ParameterSet, rows []boundRow, format validation.NumberFormat) error {
	_, _ = fmt.Fprintf(w, "d = %s, l = %s, L = %s\n\n",
		format.FormatValue(params.Diameter()),
		format.FormatValue(params.WorkingLength()),
		format.FormatValue(params.TotalLength()))

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FIELD\tNAME\tMIN\tMAX\tUNIT")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Field, r.Name, format.FormatBound(r.Min), format.FormatBound(r.Max), r.Unit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	checker := validation.NewFieldValidator(params, validation.WithNumberFormat(format))
	for _, f := range []values.FieldID{values.FieldDiameter, values.FieldWorkingLength, values.FieldTotalLength} {
		if o := checker.CheckValue(f, params.Value(f)); !o.Valid {
			_, _ = fmt.Fprintf(w, "\n! %s", o.Message)
		}
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
