// Package state persists run progress between the analyze, estimate, and
// document commands so each can pick up the previous step's artifact.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
)

const DefaultPath = "~/.mica/state.yaml"

// Step identifies a stage of the estimation flow.
type Step string

const (
	StepConnect  Step = "connect"
	StepAnalyze  Step = "analyze"
	StepEstimate Step = "estimate"
	StepDocument Step = "document"
	StepComplete Step = "complete"
)

// State holds the current run's progress and artifact locations.
type State struct {
	CurrentStep Step      `yaml:"current_step"`
	LastUpdated time.Time `yaml:"last_updated"`

	SourceDialect dialect.Dialect      `yaml:"source_dialect,omitempty"`
	SourceConfig  *config.SourceConfig `yaml:"source_config,omitempty"`

	InventoryPath string `yaml:"inventory_path,omitempty"`
	EstimatePath  string `yaml:"estimate_path,omitempty"`
	DocumentPath  string `yaml:"document_path,omitempty"`
}

// Load reads the run state from disk, returning a fresh state when none
// exists yet.
func Load(path string) (*State, error) {
	if path == "" {
		path = config.ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	s := &State{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	return s, nil
}

// Save writes the run state to disk.
func (s *State) Save(path string) error {
	if path == "" {
		path = config.ExpandHome(DefaultPath)
	}

	s.LastUpdated = time.Now()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// New creates a fresh run state.
func New() *State {
	return &State{
		CurrentStep: StepConnect,
		LastUpdated: time.Now(),
	}
}

// Reset discards artifacts from a previous run, keeping the connection.
func (s *State) Reset() {
	s.CurrentStep = StepConnect
	s.InventoryPath = ""
	s.EstimatePath = ""
	s.DocumentPath = ""
}
