package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jusliketht/bbofficial-sub003/internal/compare"
)

func newPlanCmd(a *app) *cobra.Command {
	in := &inputFlags{}
	var templates []string
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "plan [input-file]",
		Short: "Rank planning templates against the taxpayer's current claims",
		Long: "Applies each template to the taxpayer on its own and compares the best available " +
			"tax against the unchanged base. Use 'whatif --list-templates' to see the templates.",
		Example: `  regimecalc plan taxpayer.yaml --with max_80c,max_nps,home_loan`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := in.request(args)
			if err != nil {
				return err
			}

			ce := compare.NewCompareEngine(a.engine)
			set, err := ce.Compare(contextOrBackground(cmd), base, compare.CompareOptions{
				BaseName:  base.Label,
				Templates: templates,
			})
			if err != nil {
				return err
			}
			if len(args) > 0 {
				set.InputPath = args[0]
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(a.settings.Output.Format) {
			case "", "console":
				_, err = io.WriteString(out, (&compare.TableFormatter{}).Format(set))
			case "csv":
				var s string
				if s, err = (&compare.CSVFormatter{}).Format(set); err == nil {
					_, err = io.WriteString(out, s)
				}
			case "json":
				var s string
				if s, err = (&compare.JSONFormatter{Pretty: true, SummaryOnly: summaryOnly}).Format(set); err == nil {
					_, err = fmt.Fprintln(out, s)
				}
			default:
				err = fmt.Errorf("unsupported format: %s", a.settings.Output.Format)
			}
			return err
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&templates, "with", nil, "Comma-separated templates to compare (required)")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Omit the full regime breakdowns from JSON output")
	_ = cmd.MarkFlagRequired("with")
	return cmd
}
