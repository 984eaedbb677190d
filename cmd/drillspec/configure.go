package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/drillspec/internal/domain/entities"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
	"github.com/reglet-dev/drillspec/internal/domain/validation"
	"github.com/reglet-dev/drillspec/internal/domain/values"
)

type configureOptions struct {
	OutputPath    string
	Name          string
	NoInteractive bool
}

// candidateFile is the document written by configure. It is read back by
// the candidate loader.
type candidateFile struct {
	Name       string                 `yaml:"name"`
	Locale     string                 `yaml:"locale"`
	Parameters entities.RawParameters `yaml:"parameters"`
}

// fieldHints describe each bound in terms of the root values.
var fieldHints = map[values.FieldID]string{
	values.FieldDiameter:      "1 to 20 mm",
	values.FieldWorkingLength: "3d to 8d mm",
	values.FieldTotalLength:   "l+20 to 205 mm",
	values.FieldAngle:         "30 to 60 degrees",
	values.FieldConeValue:     "0.25d to 0.75d mm",
	values.FieldShankDiameter: "1.25d to 2d mm",
	values.FieldShankLength:   "2(L-l) to 3(L-l) mm",
}

func newConfigureCmd(g *globalOptions) *cobra.Command {
	opts := &configureOptions{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Enter a parameter set interactively and save it as a candidate file",
		Long: `Prompt for every drill parameter. Each value is checked as soon as it is
entered, against bounds derived from the values entered before it, so a
working length is checked against the diameter just typed.

With --no-interactive the defaults of a new drill are written instead.`,
		Example: `  drillspec configure
  drillspec configure --name drill-12 --output sets/drill-12.yaml
  drillspec configure --no-interactive --locale en`,
		Args: cobra.NoArgs,
		RunE: withContainer(g, func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			return runConfigure(cc, cmd, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "drill.yaml", "Candidate file to write")
	cmd.Flags().StringVar(&opts.Name, "name", "drill", "Name of the parameter set")
	cmd.Flags().BoolVar(&opts.NoInteractive, "no-interactive", false, "Disable interactive prompts")

	return cmd
}

func runConfigure(cc *CommandContext, cmd *cobra.Command, opts *configureOptions) error {
	format := validation.NewNumberFormat(cc.Container.Locale())

	var raw entities.RawParameters
	if opts.NoInteractive {
		raw = defaultRaw(format)
	} else {
		var err error
		raw, err = promptParameters(format)
		if err != nil {
			return err
		}
	}

	cs := entities.CandidateSet{
		Name:       opts.Name,
		Source:     opts.OutputPath,
		Locale:     format.Tag().String(),
		Parameters: raw,
	}
	sr, _, err := cc.Container.Evaluator().Evaluate(0, cs, execution.ModeCommit)
	if err != nil {
		return err
	}
	if len(sr.Violations) > 0 {
		for _, msg := range sr.Messages() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s\n", msg)
		}
		return fmt.Errorf("%w: %d violations, nothing written", errViolations, len(sr.Violations))
	}

	data, err := yaml.Marshal(candidateFile{Name: cs.Name, Locale: cs.Locale, Parameters: raw})
	if err != nil {
		return fmt.Errorf("failed to encode candidate: %w", err)
	}
	if err := os.WriteFile(opts.OutputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Parameter set saved to %s\n", opts.OutputPath)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Run 'drillspec build %s' to write the build manifest.\n", opts.OutputPath)
	return nil
}

// defaultRaw renders the defaults of a new drill as user input.
func defaultRaw(format validation.NumberFormat) entities.RawParameters {
	p := entities.NewParameterSet()
	var raw entities.RawParameters
	for _, f := range values.AllFields() {
		raw.SetText(f, format.FormatValue(p.Value(f)))
	}
	raw.ClearanceCone = p.ClearanceConeEnabled()
	raw.ClearanceShank = p.ClearanceShankEnabled()
	return raw
}

// promptParameters runs the interactive form. Every input is validated
// on submit against a live parameter set that follows the accepted values.
func promptParameters(format validation.NumberFormat) (entities.RawParameters, error) {
	params := entities.NewParameterSet()
	fields := validation.NewFieldValidator(params, validation.WithNumberFormat(format))

	raw := defaultRaw(format)
	texts := make(map[values.FieldID]*string, len(values.AllFields()))
	for _, f := range values.AllFields() {
		text := raw.Text(f)
		texts[f] = &text
	}
	feature := params.Feature().String()

	input := func(f values.FieldID) huh.Field {
		return huh.NewInput().
			Title(f.DisplayName()).
			Description(fieldHints[f]).
			Value(texts[f]).
			Validate(liveValidator(fields, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Optional feature").
				Options(
					huh.NewOption("Clearance cone", values.FeatureCone.String()),
					huh.NewOption("Shank", values.FeatureShank.String()),
					huh.NewOption("None", values.FeatureNone.String()),
				).
				Value(&feature),
		),
		huh.NewGroup(
			input(values.FieldDiameter),
			input(values.FieldWorkingLength),
			input(values.FieldTotalLength),
			input(values.FieldAngle),
		),
		huh.NewGroup(
			input(values.FieldConeValue),
		).WithHideFunc(func() bool { return feature != values.FeatureCone.String() }),
		huh.NewGroup(
			input(values.FieldShankDiameter),
			input(values.FieldShankLength),
		).WithHideFunc(func() bool { return feature != values.FeatureShank.String() }),
	)
	if err := form.Run(); err != nil {
		return entities.RawParameters{}, err
	}

	selected, err := values.NewFeature(feature)
	if err != nil {
		return entities.RawParameters{}, err
	}

	var out entities.RawParameters
	for _, f := range values.AllFields() {
		if f.IsOptional() && f.Feature() != selected {
			continue
		}
		out.SetText(f, *texts[f])
	}
	out.ClearanceCone = selected.HasCone()
	out.ClearanceShank = selected.HasShank()
	return out, nil
}

// liveValidator checks one input and, when it passes, stores the value so
// bounds of later inputs follow it.
func liveValidator(fields *validation.FieldValidator, f values.FieldID) func(string) error {
	return func(text string) error {
		o := fields.ValidateField(f, text, true)
		if !o.Valid {
			return errors.New(o.Message)
		}
		fields.Params().SetValue(f, o.Value)
		return nil
	}
}
