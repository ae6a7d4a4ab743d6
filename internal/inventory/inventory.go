// Package inventory holds the canonical per-schema object counts produced by
// normalizing a source introspection result, and the YAML artifact the
// analyze step writes for later estimation.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micatools/mica/internal/dialect"
)

// ObjectType is one of the four migratable object categories.
type ObjectType string

const (
	Tables     ObjectType = "tables"
	Views      ObjectType = "views"
	Procedures ObjectType = "procedures"
	Functions  ObjectType = "functions"
)

// ObjectTypes lists the categories in document order.
var ObjectTypes = []ObjectType{Tables, Views, Procedures, Functions}

// Counts is a non-negative tally of objects per category.
type Counts struct {
	Tables     int `yaml:"tables" json:"tables"`
	Views      int `yaml:"views" json:"views"`
	Procedures int `yaml:"procedures" json:"procedures"`
	Functions  int `yaml:"functions" json:"functions"`
}

// Get returns the count for a single object type.
func (c Counts) Get(t ObjectType) int {
	switch t {
	case Tables:
		return c.Tables
	case Views:
		return c.Views
	case Procedures:
		return c.Procedures
	case Functions:
		return c.Functions
	}
	return 0
}

func (c *Counts) add(t ObjectType, n int) {
	switch t {
	case Tables:
		c.Tables += n
	case Views:
		c.Views += n
	case Procedures:
		c.Procedures += n
	case Functions:
		c.Functions += n
	}
}

// Total returns the grand total across all four categories.
func (c Counts) Total() int {
	return c.Tables + c.Views + c.Procedures + c.Functions
}

// validate rejects negative tallies. Normalize never produces them; they can
// only enter through a hand-edited artifact.
func (c Counts) validate() error {
	for _, t := range ObjectTypes {
		if c.Get(t) < 0 {
			return fmt.Errorf("negative %s count %d", t, c.Get(t))
		}
	}
	return nil
}

// SchemaObjectCount is the canonical record for one discovered schema.
type SchemaObjectCount struct {
	Name   string `yaml:"name" json:"name"`
	Counts `yaml:",inline" json:",inline"`
}

// Inventory is the normalized analysis artifact for one run.
type Inventory struct {
	Dialect  dialect.Dialect `yaml:"dialect"`
	Database string          `yaml:"database,omitempty"`
	// Schema is set when the run was restricted to a single schema; the
	// all-schemas summary is then omitted.
	Schema      string              `yaml:"schema,omitempty"`
	GeneratedAt time.Time           `yaml:"generated_at"`
	Aggregate   Counts              `yaml:"aggregate"`
	Schemas     []SchemaObjectCount `yaml:"schemas,omitempty"`
}

// WriteYAML writes the inventory artifact.
func (inv *Inventory) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshaling inventory: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadYAML reads an inventory artifact.
func LoadYAML(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}

	inv := &Inventory{}
	if err := yaml.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}
	if !inv.Dialect.Valid() {
		return nil, fmt.Errorf("inventory has unsupported dialect %q", inv.Dialect)
	}
	if err := inv.Aggregate.validate(); err != nil {
		return nil, fmt.Errorf("inventory aggregate: %w", err)
	}
	for _, sc := range inv.Schemas {
		if sc.Name == "" {
			return nil, fmt.Errorf("inventory has a schema entry with an empty name")
		}
		if err := sc.Counts.validate(); err != nil {
			return nil, fmt.Errorf("inventory schema %q: %w", sc.Name, err)
		}
	}

	return inv, nil
}
