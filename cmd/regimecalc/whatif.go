package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/output"
	"github.com/jusliketht/bbofficial-sub003/internal/transform"
)

func newWhatIfCmd(a *app) *cobra.Command {
	in := &inputFlags{}
	var specs, templateNames []string
	var listTemplates bool

	cmd := &cobra.Command{
		Use:   "whatif [input-file]",
		Short: "Compare a taxpayer before and after planned changes",
		Example: `  regimecalc whatif taxpayer.yaml --template max_nps
  regimecalc whatif taxpayer.yaml --transform set_claim:section=80C,amount=150000 --transform set_income:amount=1500000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := transform.CreateBuiltInTemplates()
			out := cmd.OutOrStdout()

			if listTemplates {
				fmt.Fprintln(out, "Available templates:")
				for _, name := range templates.List() {
					t, _ := templates.Get(name)
					fmt.Fprintf(out, "  %-16s %s\n", t.Name, t.Description)
				}
				fmt.Fprintf(out, "\nTransforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}

			transforms, err := buildTransforms(templates, templateNames, specs)
			if err != nil {
				return err
			}
			if len(transforms) == 0 {
				return fmt.Errorf("at least one --template or --transform is required")
			}

			base, err := in.request(args)
			if err != nil {
				return err
			}
			scenario, err := transform.ApplyTransforms(base, transforms)
			if err != nil {
				return err
			}

			baseResult, err := a.engine.Compare(base.Income, base.Claims)
			if err != nil {
				return err
			}
			scenarioResult, err := a.engine.Compare(scenario.Income, scenario.Claims)
			if err != nil {
				return err
			}

			rows := []output.BatchRow{
				{Label: "base", Comparison: baseResult},
				{Label: "what-if", Comparison: scenarioResult},
			}
			if err := a.emit(cmd, func(f output.Formatter) ([]byte, error) {
				return f.FormatBatch(rows)
			}); err != nil {
				return err
			}

			if strings.EqualFold(a.settings.Output.Format, "console") {
				fmt.Fprintln(out, "\nChanges:")
				for _, d := range transform.Describe(transforms) {
					fmt.Fprintf(out, "  • %s\n", d)
				}
				fmt.Fprintln(out, whatIfSummary(baseResult, scenarioResult))
			}
			return nil
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&specs, "transform", nil, "Transform as name:key=value,... (repeatable)")
	cmd.Flags().StringSliceVar(&templateNames, "template", nil, "Built-in template names, applied before --transform")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List built-in templates and transforms")
	return cmd
}

func buildTransforms(templates *transform.TemplateRegistry, names, specs []string) ([]transform.RequestTransform, error) {
	var transforms []transform.RequestTransform
	for _, name := range names {
		t, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(templates.List(), ", "))
		}
		transforms = append(transforms, t.Transforms...)
	}
	parsed, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
	if err != nil {
		return nil, err
	}
	return append(transforms, parsed...), nil
}

// whatIfSummary compares the best available tax before and after
func whatIfSummary(base, scenario *domain.RegimeComparisonResult) string {
	before := base.Recommended().TotalTax
	after := scenario.Recommended().TotalTax
	diff := before.Sub(after)
	switch {
	case diff.IsPositive():
		return fmt.Sprintf("Best tax falls from ₹%s to ₹%s (%s regime), saving ₹%s.",
			domain.FormatRupees(before), domain.FormatRupees(after), scenario.RecommendedRegime, domain.FormatRupees(diff))
	case diff.IsNegative():
		return fmt.Sprintf("Best tax rises from ₹%s to ₹%s (%s regime).",
			domain.FormatRupees(before), domain.FormatRupees(after), scenario.RecommendedRegime)
	default:
		return fmt.Sprintf("Best tax is unchanged at ₹%s.", domain.FormatRupees(before))
	}
}
