// Package cmd implements the CLI commands for recipepipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/config"
	"github.com/gaurav-prasanna/recipepipe/logging"
)

// Shared state prepared by the root command before any subcommand runs.
var (
	cfg    config.Config
	logger *slog.Logger

	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "recipepipe",
	Short: "recipepipe — scrape recipe pages into structured data",
	Long: `recipepipe fetches recipe web pages, reads their schema.org data and
normalizes ingredients into quantity and name pairs.

Usage:
  recipepipe serve
  recipepipe scrape <url> [flags]
  recipepipe parse <line>...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json (env "+config.EnvLogFormat+")")
}

// setup loads configuration and builds the logger. Flags win over env.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}

	logger, err = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
