// Package cmd wires the mica subcommands: analyze, estimate, document,
// status, and config. Running without a subcommand launches the wizard.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/logging"
	"github.com/micatools/mica/internal/wizard"
)

var (
	cfgFile  string
	logLevel string
	closeLog func() error
	version  = "dev"
	commit   = "none"
	date     = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mica",
	Short: "Mica - Migration effort calculator for cloud data warehouses",
	Long: `Mica estimates the effort, complexity, and risk of migrating a
relational database (Oracle, SQL Server, PostgreSQL, Teradata, Databricks
Lakehouse, Snowflake) to a cloud data warehouse, and renders the result as
a migration strategy document.

Running without a subcommand launches the interactive wizard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logDir := ""
		if cfg, err := loadConfig(); err == nil {
			logDir = cfg.Logging.Directory
			if logLevel == "info" && cfg.Logging.Level != "" {
				logLevel = cfg.Logging.Level
			}
		}
		logger, closer, err := logging.Setup(logLevel, logDir)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		slog.SetDefault(logger)
		closeLog = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			_ = closeLog()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println("Launching interactive wizard...")
		w, err := wizard.New(cfg, "")
		if err != nil {
			return err
		}
		return w.Run()
	},
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file; a missing file yields the shipped
// defaults so first runs work without `mica config init`.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.ExpandHome(config.DefaultPath)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.mica/mica.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
