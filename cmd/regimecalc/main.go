package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
	"github.com/jusliketht/bbofficial-sub003/internal/config"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/jusliketht/bbofficial-sub003/internal/slabs"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs once flags and settings are resolved
type app struct {
	viper       *viper.Viper
	configFile  string
	metricsFile string

	settings *config.Settings
	logger   *zap.Logger
	registry *slabs.Registry
	engine   *calculation.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{viper: config.NewViper()}

	root := &cobra.Command{
		Use:   "regimecalc",
		Short: "Indian income tax regime calculator",
		Long: "Computes income tax under the old and new regimes, recommends the cheaper one " +
			"and points at unused deduction headroom.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.finish,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Settings file (default: ./regimecalc.yaml if it exists)")
	pf.String("tables-file", "", "YAML document with additional slab tables and deduction caps")
	pf.StringP("format", "f", "", "Output format (console, json, csv)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (console, json)")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file on exit")

	_ = a.viper.BindPFlag("tables_file", pf.Lookup("tables-file"))
	_ = a.viper.BindPFlag("output.format", pf.Lookup("format"))
	_ = a.viper.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.viper.BindPFlag("logging.format", pf.Lookup("log-format"))

	root.AddCommand(
		newCompareCmd(a),
		newComputeCmd(a),
		newBatchCmd(a),
		newBreakEvenCmd(a),
		newWhatIfCmd(a),
		newPlanCmd(a),
		newValidateCmd(a),
		newTablesCmd(a),
		newTUICmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads settings, builds the logger and the engine over the built-in
// tables plus any onboarded tables file
func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.viper, a.configFile)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(settings.Logging, "")
	if err != nil {
		return err
	}

	registry := slabs.Builtin()
	catalog := domain.DefaultDeductionCatalog()
	if settings.TablesFile != "" {
		ob, err := slabs.LoadFile(settings.TablesFile)
		if err != nil {
			return err
		}
		catalog, err = ob.Apply(registry, catalog)
		if err != nil {
			return fmt.Errorf("%s: %w", settings.TablesFile, err)
		}
		logger.Info("onboarded slab tables",
			zap.String("file", settings.TablesFile),
			zap.Int("tables", len(ob.Tables)),
			zap.Int("deduction_overrides", len(ob.Deductions)))
	}

	engine := calculation.NewEngine(registry, catalog)
	engine.SetLogger(logger.Sugar())

	a.settings = settings
	a.logger = logger
	a.registry = registry
	a.engine = engine
	logger.Debug("ready", zap.String("command", cmd.Name()), zap.Int("tables", registry.Len()))
	return nil
}

func (a *app) finish(cmd *cobra.Command, args []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "regimecalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// describeError turns engine errors into messages for the terminal
func describeError(err error) string {
	var notFound *domain.NotFoundError
	var unknown *domain.UnknownDeductionSectionError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("%v\nRun 'regimecalc tables' to list the fiscal years and categories that are available.", err)
	case errors.As(err, &unknown):
		return fmt.Sprintf("%v\nKnown sections: %s", err, sectionList())
	default:
		return err.Error()
	}
}

// exitCode is 2 for bad input and 1 for everything else
func exitCode(err error) int {
	var invalid *domain.InvalidInputError
	var notFound *domain.NotFoundError
	var unknown *domain.UnknownDeductionSectionError
	if errors.As(err, &invalid) || errors.As(err, &notFound) || errors.As(err, &unknown) {
		return 2
	}
	return 1
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", describeError(err))
		return exitCode(err)
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
