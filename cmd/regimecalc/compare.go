package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jusliketht/bbofficial-sub003/internal/config"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/output"
)

func newCompareCmd(a *app) *cobra.Command {
	in := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the old and new regimes for one taxpayer",
		Example: `  regimecalc compare taxpayer.yaml
  regimecalc compare --gross 12,00,000 --fy 2024-25 --claim 80C=150000 --claim 80D=25000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := in.request(args)
			if err != nil {
				return err
			}
			result, err := a.engine.Compare(req.Income, req.Claims)
			if err != nil {
				return err
			}
			a.logger.Info("compared regimes",
				zap.String("label", req.Label),
				zap.String("recommended", result.RecommendedRegime.String()),
				zap.String("savings", result.Savings.StringFixed(2)))
			return a.emit(cmd, func(f output.Formatter) ([]byte, error) {
				return f.FormatComparison(result)
			})
		},
	}
	in.register(cmd.Flags())
	return cmd
}

func newComputeCmd(a *app) *cobra.Command {
	in := &inputFlags{}
	var regimeName string
	cmd := &cobra.Command{
		Use:   "compute [input-file]",
		Short: "Compute the liability under a single regime",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regime, err := domain.ParseRegime(regimeName)
			if err != nil {
				return err
			}
			req, err := in.request(args)
			if err != nil {
				return err
			}
			result, err := a.engine.ComputeRegime(req.Income, req.Claims, regime)
			if err != nil {
				return err
			}
			return a.emit(cmd, func(f output.Formatter) ([]byte, error) {
				return f.FormatComputation(result)
			})
		},
	}
	in.register(cmd.Flags())
	cmd.Flags().StringVar(&regimeName, "regime", "", "Regime to compute (old or new)")
	_ = cmd.MarkFlagRequired("regime")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [batch-file]",
		Short: "Compare regimes for every taxpayer in a batch file",
		Long: "Reads a YAML file with a top-level 'taxpayers' list and compares each one on a " +
			"bounded worker pool. A failing taxpayer is reported in its row and does not stop the others.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := config.NewInputParser().LoadBatchFromFile(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			results, err := a.engine.CompareBatch(ctx, reqs, a.settings.Batch.Workers)
			if err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}

			rows := make([]output.BatchRow, len(results))
			for i, r := range results {
				rows[i] = output.BatchRow{Label: r.Label, Comparison: r.Comparison, Err: r.Err}
				if r.Err != nil {
					a.logger.Warn("taxpayer failed", zap.String("label", r.Label), zap.Error(r.Err))
				}
			}
			return a.emit(cmd, func(f output.Formatter) ([]byte, error) {
				return f.FormatBatch(rows)
			})
		},
	}
	cmd.Flags().Int("workers", 0, "Concurrent comparisons (0 means one per CPU)")
	_ = a.viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	return cmd
}

// contextOrBackground guards against commands executed without a context
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
