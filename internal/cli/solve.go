package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/MaxLap/indonesia-calc/internal/logging"
	"github.com/MaxLap/indonesia-calc/internal/observability"
	"github.com/MaxLap/indonesia-calc/render"
	"github.com/MaxLap/indonesia-calc/scenario"
	"github.com/MaxLap/indonesia-calc/shipping"
	"github.com/MaxLap/indonesia-calc/topology"
)

var (
	solveFarm          string
	solveFormat        string
	solveMaxExpansions int
	solveMetricsFile   string
	solveTrace         bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <scenario.yaml>",
	Short: "Ship as much as possible from one farm",
	Long: `Search every shipping plan of a YAML scenario and print the first one
found that delivers the most units at the lowest cost.

Examples:
  indonesia solve archipelago.yaml
  indonesia solve archipelago.yaml --farm ricefield --format json
  indonesia solve archipelago.yaml --max-expansions 100000 --metrics-file search.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

var solveLegacyCmd = &cobra.Command{
	Use:   "solve-legacy <map.txt> <game.txt>",
	Short: "Solve a map and game file pair in the legacy text format",
	Args:  cobra.ExactArgs(2),
	RunE:  runSolveLegacy,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(solveLegacyCmd)
	addSolveFlags(solveCmd)
	addSolveFlags(solveLegacyCmd)
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&solveFarm, "farm", "", "Farm to ship from (default: the scenario's shipment)")
	cmd.Flags().StringVar(&solveFormat, "format", "", "Output format: text, json (default from config)")
	cmd.Flags().IntVar(&solveMaxExpansions, "max-expansions", -1, "Stop after N expanded states, 0 for no limit (default from config)")
	cmd.Flags().StringVar(&solveMetricsFile, "metrics-file", "", "Write Prometheus metrics of the search to this file")
	cmd.Flags().BoolVar(&solveTrace, "trace", false, "Print an OpenTelemetry span of the search to stderr")
}

func runSolve(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	return solveScenario(cmd, sc)
}

func runSolveLegacy(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadLegacy(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to load legacy files: %w", err)
	}

	return solveScenario(cmd, sc)
}

// solveScenario applies flags over settings, runs the search and prints the
// plan. A search stopped by the expansion limit still prints its best plan.
func solveScenario(cmd *cobra.Command, sc *scenario.Scenario) error {
	ctx := commandContext(cmd)
	log := commandLogger(ctx)

	format := settings.Search.Format
	if solveFormat != "" {
		format = solveFormat
	}
	var write func(io.Writer, *topology.Topology, *shipping.Plan) error
	switch format {
	case "text":
		write = render.Text
	case "json":
		write = render.JSON
	default:
		return fmt.Errorf("unsupported format: %s (use 'text' or 'json')", format)
	}
	maxExpansions := settings.Search.MaxExpansions
	if solveMaxExpansions >= 0 {
		maxExpansions = solveMaxExpansions
	}
	metricsFile := settings.Metrics.File
	if solveMetricsFile != "" {
		metricsFile = solveMetricsFile
	}

	farm := solveFarm
	if farm == "" {
		name, err := sc.DefaultSource()
		if err != nil {
			return err
		}
		farm = name
	}
	topo, err := sc.Build()
	if err != nil {
		return err
	}

	tracing := settings.TracingConfig(cmd.ErrOrStderr())
	tracing.Enabled = tracing.Enabled || solveTrace
	shutdown, err := observability.InitTracing(ctx, tracing, log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.WithoutCancel(ctx), shutdown, log)

	collector, err := observability.NewSearchCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	plan, res, err := shipping.Solve(topo, farm,
		shipping.WithContext(ctx),
		shipping.WithLogger(log),
		shipping.WithRecorder(collector),
		shipping.WithMaxExpansions(maxExpansions),
	)
	if metricsFile != "" {
		if werr := collector.WriteTextfile(metricsFile); werr != nil {
			log.Warn(ctx, "failed to write metrics file", logging.String("path", metricsFile), logging.Err(werr))
		}
	}
	switch {
	case errors.Is(err, shipping.ErrExpansionLimit):
		log.Warn(ctx, "expansion limit reached; the plan may not be optimal",
			logging.Int("max_expansions", maxExpansions),
			logging.Int("visited", res.Visited),
		)
	case err != nil:
		return err
	}

	return write(cmd.OutOrStdout(), topo, plan)
}
