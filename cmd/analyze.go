package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/micatools/mica/internal/introspect"
	"github.com/micatools/mica/internal/inventory"
	"github.com/micatools/mica/internal/state"
)

var (
	analyzeInput  string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Count migratable objects in the source database",
	Long: `Connect to the configured source database and count its tables, views,
procedures, and functions per schema.

Dialects without a bundled driver (Teradata, Databricks Lakehouse, Snowflake)
are analyzed from a raw count file supplied with --input instead of a live
connection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var raw inventory.Raw
		if analyzeInput != "" {
			raw, err = inventory.LoadRawYAML(analyzeInput)
			if err != nil {
				return err
			}
		} else {
			in, err := introspect.New(&cfg.Source)
			if err != nil {
				return fmt.Errorf("initializing introspector: %w", err)
			}
			defer in.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			fmt.Printf("Connecting to %s at %s:%d/%s...\n",
				cfg.Source.Dialect.Display(), cfg.Source.Host, cfg.Source.Port, cfg.Source.Database)
			if err := in.Connect(ctx); err != nil {
				return fmt.Errorf("connecting to source: %w", err)
			}

			fmt.Println("Counting objects...")
			raw, err = in.Introspect(ctx)
			if err != nil {
				return fmt.Errorf("introspecting source: %w", err)
			}
		}

		agg, schemas, err := inventory.Normalize(cfg.Source.Dialect, raw, cfg.Source.Schema)
		if err != nil {
			return fmt.Errorf("normalizing counts: %w", err)
		}

		inv := &inventory.Inventory{
			Dialect:     cfg.Source.Dialect,
			Database:    cfg.Source.Database,
			Schema:      cfg.Source.Schema,
			GeneratedAt: time.Now().UTC(),
			Aggregate:   agg,
			Schemas:     schemas,
		}

		outputPath := analyzeOutput
		if outputPath == "" {
			outputPath = filepath.Join(cfg.Output.Directory, "inventory.yaml")
		}
		if err := inv.WriteYAML(outputPath); err != nil {
			return fmt.Errorf("writing inventory: %w", err)
		}

		slog.Info("analysis complete",
			"dialect", inv.Dialect,
			"objects", inv.Aggregate.Total(),
			"schemas", len(inv.Schemas))

		for _, t := range inventory.ObjectTypes {
			fmt.Printf("  %-12s %d\n", t, inv.Aggregate.Get(t))
		}
		fmt.Printf("\nInventory written to %s\n", outputPath)

		st, err := state.Load("")
		if err != nil {
			return fmt.Errorf("loading state: %w", err)
		}
		st.SourceDialect = cfg.Source.Dialect
		st.SourceConfig = &cfg.Source
		st.InventoryPath = outputPath
		st.CurrentStep = state.StepEstimate
		if err := st.Save(""); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "raw count YAML for dialects without a bundled driver")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output path for the inventory YAML")
	rootCmd.AddCommand(analyzeCmd)
}
