package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/micatools/mica/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show run progress and artifact locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := state.Load("")
		if err != nil {
			return fmt.Errorf("loading state: %w", err)
		}

		fmt.Printf("Current step: %s\n\n", st.CurrentStep)

		steps := []state.Step{
			state.StepConnect,
			state.StepEstimate,
			state.StepDocument,
			state.StepComplete,
		}

		labels := map[state.Step]string{
			state.StepConnect:  "1. Source Analysis",
			state.StepEstimate: "2. Effort Estimate",
			state.StepDocument: "3. Strategy Document",
			state.StepComplete: "4. Complete",
		}

		current := 0
		for i, step := range steps {
			if step == st.CurrentStep {
				current = i
			}
		}
		// StepAnalyze shares the first row with StepConnect.
		if st.CurrentStep == state.StepAnalyze {
			current = 0
		}

		for i, step := range steps {
			status := "  "
			if i < current || st.CurrentStep == state.StepComplete {
				status = "OK"
			} else if i == current {
				status = ">>"
			}
			fmt.Printf("  [%s] %s\n", status, labels[step])
		}

		fmt.Println()
		if st.SourceConfig != nil {
			fmt.Printf("Source:    %s (%s:%d/%s)\n", st.SourceDialect.Display(),
				st.SourceConfig.Host, st.SourceConfig.Port, st.SourceConfig.Database)
		}
		if st.InventoryPath != "" {
			fmt.Printf("Inventory: %s\n", st.InventoryPath)
		}
		if st.EstimatePath != "" {
			fmt.Printf("Estimate:  %s\n", st.EstimatePath)
		}
		if st.DocumentPath != "" {
			fmt.Printf("Document:  %s\n", st.DocumentPath)
		}
		if !st.LastUpdated.IsZero() {
			fmt.Printf("Updated:   %s\n", st.LastUpdated.Format("2006-01-02 15:04:05"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
