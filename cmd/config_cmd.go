package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and manage the mica configuration: source connection, effort rules, and complexity thresholds.`,
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.ExpandHome(config.DefaultPath)
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		if err := config.Default().Save(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Default configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current config (secrets masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Println("Current configuration:")
		fmt.Println()
		fmt.Printf("  Source:\n")
		fmt.Printf("    Dialect:        %s\n", cfg.Source.Dialect)
		fmt.Printf("    Host:           %s\n", cfg.Source.Host)
		fmt.Printf("    Port:           %d\n", cfg.Source.Port)
		fmt.Printf("    Database:       %s\n", cfg.Source.Database)
		if cfg.Source.Schema != "" {
			fmt.Printf("    Schema:         %s\n", cfg.Source.Schema)
		}
		fmt.Printf("    Username:       %s\n", cfg.Source.Username)
		fmt.Printf("    Password:       %s\n", maskSecret(cfg.Source.Password))
		if cfg.Source.Account != "" {
			fmt.Printf("    Account:        %s\n", cfg.Source.Account)
		}
		if cfg.Source.Token != "" {
			fmt.Printf("    Token:          %s\n", maskSecret(cfg.Source.Token))
		}
		fmt.Println()
		fmt.Printf("  Effort rules (hours per object):\n")
		for _, d := range dialect.All {
			byType, ok := cfg.Effort.Rules[d]
			if !ok {
				continue
			}
			fmt.Printf("    %-12s", d)
			for _, t := range inventory.ObjectTypes {
				fmt.Printf("  %s=%g", t, byType[t])
			}
			fmt.Println()
		}
		fmt.Printf("  Thresholds:     %v\n", cfg.Effort.Thresholds)
		fmt.Println()
		fmt.Printf("  Logging:        %s (%s)\n", cfg.Logging.Level, cfg.Logging.Directory)
		fmt.Printf("  Output:         %s\n", cfg.Output.Directory)

		return nil
	},
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(configCmd)
}
