// Package cli implements the indonesia command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MaxLap/indonesia-calc/internal/config"
	"github.com/MaxLap/indonesia-calc/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// settings is replaced by setup before any subcommand runs.
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "indonesia",
	Short: "Plan shipments across an archipelago",
	Long: `Find the plan that ships the most units from a farm to the cities that
want them, paying one per hop on boats owned by someone else.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json (overrides config)")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup loads settings and attaches a run-scoped logger to the command context.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Log.Output = cmd.ErrOrStderr()
	settings = cfg

	ctx := commandContext(cmd)
	log := logging.ForRun(logging.New(cfg.Log))
	cmd.SetContext(logging.NewContext(ctx, log))
	log.Debug(ctx, "configuration loaded", logging.String("config", configPath))

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func commandLogger(ctx context.Context) logging.Logger {
	return logging.FromContext(ctx)
}
