// Package wizard drives the interactive estimation flow: connect to a
// source, review the computed estimate, and generate the strategy document.
// Each step persists its artifact so a run can resume where it left off.
package wizard

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/document"
	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/inventory"
	"github.com/micatools/mica/internal/narrative"
	"github.com/micatools/mica/internal/state"
)

// Wizard orchestrates the multi-step interactive estimation flow.
type Wizard struct {
	cfg       *config.Config
	state     *state.State
	statePath string

	// Accumulated data
	sourceConfig *config.SourceConfig
	inventory    *inventory.Inventory
	estimate     *effort.Result
}

// New creates a new Wizard, loading any saved state for resume.
func New(cfg *config.Config, statePath string) (*Wizard, error) {
	s, err := state.Load(statePath)
	if err != nil {
		return nil, fmt.Errorf("loading wizard state: %w", err)
	}
	return &Wizard{
		cfg:       cfg,
		state:     s,
		statePath: statePath,
	}, nil
}

// Run executes the wizard from the current step through document generation.
func (w *Wizard) Run() error {
	step := w.state.CurrentStep

	// Step 1: Source connection + analysis
	if step == state.StepConnect || step == state.StepAnalyze {
		if err := w.runConnect(); err != nil {
			return err
		}
		step = w.state.CurrentStep
	}

	// Step 2: Estimate + review
	if step == state.StepEstimate {
		if err := w.runEstimate(); err != nil {
			return err
		}
		step = w.state.CurrentStep
	}

	// Step 3: Strategy document
	if step == state.StepDocument {
		if err := w.runDocument(); err != nil {
			return err
		}
	}

	return nil
}

func (w *Wizard) runConnect() error {
	m := NewConnectModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running connection wizard: %w", err)
	}

	cm := finalModel.(ConnectModel)
	if cm.Cancelled() {
		return fmt.Errorf("cancelled")
	}

	result := cm.Result()
	if result == nil {
		return fmt.Errorf("no connection result")
	}

	w.sourceConfig = result.Config
	w.inventory = result.Inventory

	invPath := filepath.Join(w.cfg.Output.Directory, "inventory.yaml")
	if err := w.inventory.WriteYAML(invPath); err != nil {
		return fmt.Errorf("saving inventory: %w", err)
	}

	w.state.SourceDialect = result.Config.Dialect
	w.state.SourceConfig = result.Config
	w.state.InventoryPath = invPath
	w.state.CurrentStep = state.StepEstimate
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	fmt.Printf("\n%s\n\n", successStyle.Render(fmt.Sprintf(
		"Counted %d objects across %d schemas.",
		w.inventory.Aggregate.Total(), len(w.inventory.Schemas))))
	return nil
}

func (w *Wizard) runEstimate() error {
	if err := w.ensureInventory(); err != nil {
		return err
	}

	est, err := effort.NewEstimator(w.cfg.Effort.Rules, w.cfg.Effort.Thresholds, narrative.Default())
	if err != nil {
		return fmt.Errorf("building estimator: %w", err)
	}

	result, err := est.Estimate(w.inventory.Dialect, w.inventory.Aggregate)
	if err != nil {
		return fmt.Errorf("estimating effort: %w", err)
	}
	if w.state.SourceConfig != nil {
		result.Connection = w.state.SourceConfig.Summary()
	}
	result.Schemas = w.inventory.Schemas

	m := NewReviewModel(result)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running estimate review: %w", err)
	}

	rm := finalModel.(ReviewModel)
	if rm.Cancelled() {
		return fmt.Errorf("cancelled")
	}
	if !rm.Confirmed() {
		return fmt.Errorf("not confirmed")
	}

	w.estimate = result

	estPath := filepath.Join(w.cfg.Output.Directory, "estimate.yaml")
	if err := result.WriteYAML(estPath); err != nil {
		return fmt.Errorf("saving estimate: %w", err)
	}

	w.state.EstimatePath = estPath
	w.state.CurrentStep = state.StepDocument
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	return nil
}

func (w *Wizard) runDocument() error {
	if w.estimate == nil {
		if w.state.EstimatePath == "" {
			return fmt.Errorf("no estimate available; run the estimate step first")
		}
		r, err := effort.LoadYAML(w.state.EstimatePath)
		if err != nil {
			return fmt.Errorf("loading estimate: %w", err)
		}
		w.estimate = r
	}

	docPath := filepath.Join(w.cfg.Output.Directory, "migration-strategy.md")
	if err := document.WriteMarkdown(w.estimate, docPath); err != nil {
		return fmt.Errorf("writing strategy document: %w", err)
	}

	w.state.DocumentPath = docPath
	w.state.CurrentStep = state.StepComplete
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	fmt.Printf("\n%s\n", successStyle.Render("Strategy document written to "+docPath))
	return nil
}

func (w *Wizard) ensureInventory() error {
	if w.inventory != nil {
		return nil
	}
	if w.state.InventoryPath == "" {
		return fmt.Errorf("no inventory available; run source analysis first")
	}
	inv, err := inventory.LoadYAML(w.state.InventoryPath)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	w.inventory = inv
	return nil
}
