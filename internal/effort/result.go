package effort

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

// ConnectionSummary describes where the inventory came from. Descriptive
// only; it never carries credentials.
type ConnectionSummary struct {
	Host     string `yaml:"host,omitempty" json:"host,omitempty"`
	Port     int    `yaml:"port,omitempty" json:"port,omitempty"`
	Database string `yaml:"database,omitempty" json:"database,omitempty"`
	Account  string `yaml:"account,omitempty" json:"account,omitempty"`
	Schema   string `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Result is the single output of an estimation run. It is created once,
// never mutated afterwards, and owned by the caller that requested the run.
type Result struct {
	Dialect    dialect.Dialect   `yaml:"dialect"`
	Connection ConnectionSummary `yaml:"connection,omitempty"`
	Aggregate  inventory.Counts  `yaml:"aggregate"`
	// Schemas is present only when the run was not restricted to a single
	// schema.
	Schemas         []inventory.SchemaObjectCount `yaml:"schemas,omitempty"`
	Efforts         []ObjectTypeEffort            `yaml:"efforts"`
	TotalHours      float64                       `yaml:"total_hours"`
	Complexity      Tier                          `yaml:"complexity"`
	BusinessValue   []string                      `yaml:"business_value"`
	Risks           []string                      `yaml:"risks"`
	Recommendations []string                      `yaml:"recommendations"`
	GeneratedAt     time.Time                     `yaml:"generated_at"`
}

// WriteYAML writes the estimation result artifact.
func (r *Result) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling estimation result: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadYAML reads an estimation result artifact.
func LoadYAML(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading estimation result: %w", err)
	}

	r := &Result{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing estimation result: %w", err)
	}

	return r, nil
}
