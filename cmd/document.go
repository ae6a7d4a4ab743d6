package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/micatools/mica/internal/document"
	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/state"
)

var (
	documentInput  string
	documentOutput string
	documentStdout bool
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Render the migration strategy document",
	Long: `Render an estimation result as a markdown strategy document: object
counts, effort breakdown, business value, risks, recommendations, and
next steps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := state.Load("")
		if err != nil {
			return fmt.Errorf("loading state: %w", err)
		}

		inputPath := documentInput
		if inputPath == "" {
			inputPath = st.EstimatePath
		}
		if inputPath == "" {
			return fmt.Errorf("no estimate available; run `mica estimate` first")
		}

		result, err := effort.LoadYAML(inputPath)
		if err != nil {
			return fmt.Errorf("loading estimate: %w", err)
		}

		if documentStdout {
			fmt.Print(document.Render(result))
			return nil
		}

		outputPath := documentOutput
		if outputPath == "" {
			outputPath = filepath.Join(cfg.Output.Directory, "migration-strategy.md")
		}
		if err := document.WriteMarkdown(result, outputPath); err != nil {
			return fmt.Errorf("writing strategy document: %w", err)
		}
		fmt.Printf("Strategy document written to %s\n", outputPath)

		st.DocumentPath = outputPath
		st.CurrentStep = state.StepComplete
		if err := st.Save(""); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}

		return nil
	},
}

func init() {
	documentCmd.Flags().StringVarP(&documentInput, "input", "i", "", "estimate YAML (default: last estimated)")
	documentCmd.Flags().StringVarP(&documentOutput, "output", "o", "", "output path for the markdown document")
	documentCmd.Flags().BoolVar(&documentStdout, "stdout", false, "print the document instead of writing a file")
	rootCmd.AddCommand(documentCmd)
}
