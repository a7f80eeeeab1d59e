// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/logging"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// settings holds the configuration loaded before any subcommand runs.
	settings types.Settings

	// logger is the structured logger built from settings.
	logger *log.Logger
)

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Collect recent arXiv papers for a set of topics",
	Long: `arxiv-digest searches arXiv for each topic, keeps the papers submitted within
the recency window, removes papers found under more than one topic, and prints
the result newest first.

Settings come from the environment (ARXIV_MAX_RESULTS, ARXIV_DELAY_SECONDS,
ARXIV_HOURS_BACK, LOG_LEVEL, LOG_FORMAT), a .env file, and an optional YAML
config file, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		envFile, _ := cmd.Flags().GetString("env-file")

		s, err := config.Load(config.Options{ConfigFile: cfgFile, EnvFile: envFile})
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			s.LogLevel = lvl
		}
		settings = s
		logger = logging.New(s.LogLevel, s.LogFormat, os.Stderr)
		if cfgFile != "" {
			logger.WithField("path", cfgFile).Debug("using config file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().String("env-file", config.DefaultEnvFile, "dotenv file read at startup")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
