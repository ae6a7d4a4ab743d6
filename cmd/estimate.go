package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/inventory"
	"github.com/micatools/mica/internal/narrative"
	"github.com/micatools/mica/internal/state"
)

var (
	estimateInput  string
	estimateOutput string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate migration effort from an inventory",
	Long: `Apply the configured effort rules and complexity thresholds to an
object inventory, producing total hours, a complexity tier, and the
dialect-specific narrative content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := state.Load("")
		if err != nil {
			return fmt.Errorf("loading state: %w", err)
		}

		inputPath := estimateInput
		if inputPath == "" {
			inputPath = st.InventoryPath
		}
		if inputPath == "" {
			return fmt.Errorf("no inventory available; run `mica analyze` first")
		}

		inv, err := inventory.LoadYAML(inputPath)
		if err != nil {
			return fmt.Errorf("loading inventory: %w", err)
		}

		est, err := effort.NewEstimator(cfg.Effort.Rules, cfg.Effort.Thresholds, narrative.Default())
		if err != nil {
			return fmt.Errorf("building estimator: %w", err)
		}

		result, err := est.Estimate(inv.Dialect, inv.Aggregate)
		if err != nil {
			return fmt.Errorf("estimating effort: %w", err)
		}
		if st.SourceConfig != nil {
			result.Connection = st.SourceConfig.Summary()
		}
		result.Schemas = inv.Schemas

		fmt.Println()
		for _, oe := range result.Efforts {
			if oe.Count == 0 {
				continue
			}
			fmt.Printf("  %-12s %6d × %4gh = %8gh\n", oe.Type, oe.Count, oe.HoursPerObject, oe.TotalHours)
		}
		fmt.Printf("\n  Total effort: %g hours\n", result.TotalHours)
		fmt.Printf("  Complexity:   %s\n", result.Complexity)

		outputPath := estimateOutput
		if outputPath == "" {
			outputPath = filepath.Join(cfg.Output.Directory, "estimate.yaml")
		}
		if err := result.WriteYAML(outputPath); err != nil {
			return fmt.Errorf("writing estimate: %w", err)
		}
		fmt.Printf("\nEstimate written to %s\n", outputPath)

		st.EstimatePath = outputPath
		st.CurrentStep = state.StepDocument
		if err := st.Save(""); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}

		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateInput, "input", "i", "", "inventory YAML (default: last analyzed)")
	estimateCmd.Flags().StringVarP(&estimateOutput, "output", "o", "", "output path for the estimate YAML")
	rootCmd.AddCommand(estimateCmd)
}
