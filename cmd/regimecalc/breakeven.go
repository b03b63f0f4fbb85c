package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jusliketht/bbofficial-sub003/internal/breakeven"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

func newBreakEvenCmd(a *app) *cobra.Command {
	in := &inputFlags{}
	var curveFrom, curveTo, curveStep string
	var maxIterations int

	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the old regime deductions needed to match the new regime",
		Long: "Finds the smallest total old regime deduction at which the old regime costs no more " +
			"than the new regime for the taxpayer's income. With --curve-to the search is repeated " +
			"across a range of gross incomes.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := in.request(args)
			if err != nil {
				return err
			}

			opts := breakeven.DefaultSolverOptions()
			opts.MaxIterations = maxIterations
			solver := breakeven.NewSolver(a.engine, opts)
			ctx := contextOrBackground(cmd)
			out := cmd.OutOrStdout()
			format := strings.ToLower(a.settings.Output.Format)

			if curveTo != "" {
				from, to, step, err := curveRange(req.Income.GrossIncome.String(), curveFrom, curveTo, curveStep)
				if err != nil {
					return err
				}
				curve, err := solver.Curve(ctx, req.Income, req.Claims, from, to, step)
				if err != nil {
					return err
				}
				return writeBreakEven(out, format,
					func() string { return (&breakeven.TableFormatter{}).FormatCurve(curve) },
					func() (string, error) { return (&breakeven.JSONFormatter{Pretty: true}).FormatCurve(curve) })
			}

			result, err := solver.DeductionBreakEven(ctx, req.Income, req.Claims)
			if err != nil {
				return err
			}
			return writeBreakEven(out, format,
				func() string { return (&breakeven.TableFormatter{}).Format(result) },
				func() (string, error) { return (&breakeven.JSONFormatter{Pretty: true}).Format(result) })
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringVar(&curveFrom, "curve-from", "", "Lowest gross income of the sweep (default: the taxpayer's gross income)")
	cmd.Flags().StringVar(&curveTo, "curve-to", "", "Highest gross income of the sweep; enables the sweep")
	cmd.Flags().StringVar(&curveStep, "curve-step", "100000", "Gross income increment of the sweep")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", breakeven.DefaultSolverOptions().MaxIterations, "Bisection step limit")
	return cmd
}

func curveRange(gross, from, to, step string) (f, t, s decimal.Decimal, err error) {
	if from == "" {
		from = gross
	}
	if f, err = domain.ParseMoney("curve-from", from); err != nil {
		return
	}
	if t, err = domain.ParseMoney("curve-to", to); err != nil {
		return
	}
	s, err = domain.ParseMoney("curve-step", step)
	return
}

func writeBreakEven(w io.Writer, format string, table func() string, jsonOut func() (string, error)) error {
	switch format {
	case "", "console":
		_, err := io.WriteString(w, table())
		return err
	case "json":
		s, err := jsonOut()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	default:
		return fmt.Errorf("breakeven supports console and json output, not %s", format)
	}
}
