// ABOUTME: Root command, global flags, and shared wiring for subcommands
// ABOUTME: Loads configuration, sets up logging, and builds the pipeline
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/stoneledger/config"
	"github.com/harperreed/stoneledger/db"
	"github.com/harperreed/stoneledger/pipeline"
	"github.com/harperreed/stoneledger/sheets"
)

var (
	configPath string
	logLevel   string

	cfg        *config.Config
	logger     *log.Logger
	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "stoneledger",
	Short: "Company dashboard over order, contact and note spreadsheets",
	Long: `StoneLedger reads orders, contacts and notes from Google Sheets,
normalizes them, rolls orders up into companies, and serves the result
as JSON, HTML, a terminal UI, or MCP tools.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		l, err := newLogger(level)
		if err != nil {
			return err
		}
		logger = l
		log.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./stoneledger.yaml or $XDG_CONFIG_HOME/stoneledger/stoneledger.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// Execute runs the CLI.
func Execute(version string) error {
	appVersion = version
	return rootCmd.Execute()
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	// stdout carries command output and the MCP stdio transport.
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openRunLog opens the run log database, or returns nil when disabled.
func openRunLog() (*sql.DB, error) {
	if cfg.Database.Path == "" {
		return nil, nil
	}
	database, err := db.OpenDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	return database, nil
}

// newPipeline builds the pipeline from configuration. The returned cleanup
// closes the run log.
func newPipeline(ctx context.Context) (*pipeline.Pipeline, *sql.DB, func(), error) {
	specs, err := cfg.Sources()
	if err != nil {
		return nil, nil, nil, err
	}

	source, err := sheets.New(ctx, cfg.SheetsOptions())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create row source: %w", err)
	}

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	database, err := openRunLog()
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {}
	if database != nil {
		opts = append(opts, pipeline.WithRecorder(db.NewRunLog(database)))
		cleanup = func() { _ = database.Close() }
	}

	return pipeline.New(source, specs, opts...), database, cleanup, nil
}
