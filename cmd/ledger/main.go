package main

import (
	"fmt" // Error output
	"os"  // Exit codes

	"household_ledger/internal/api"    // Version string
	"household_ledger/internal/config" // Application configuration

	"github.com/sirupsen/logrus" // Structured logging
	"github.com/spf13/cobra"     // Command line interface
)

var rootCmd = &cobra.Command{
	Use:          "ledger",
	Short:        "Household ledger API server",
	Long:         `Household ledger keeps categories, income and expense transactions and monthly budgets per user behind a JWT protected REST API.`,
	Version:      api.Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Main entry point
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger: text with full timestamps in
// development, JSON in production.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.IsProd {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	return log, nil
}

// setup loads the configuration and the logger shared by every command
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
