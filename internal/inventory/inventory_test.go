package inventory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/micatools/mica/internal/dialect"
)

func TestCountsGetAndTotal(t *testing.T) {
	c := Counts{Tables: 10, Views: 5, Procedures: 3, Functions: 2}

	if c.Get(Tables) != 10 {
		t.Errorf("expected 10 tables, got %d", c.Get(Tables))
	}
	if c.Get(Functions) != 2 {
		t.Errorf("expected 2 functions, got %d", c.Get(Functions))
	}
	if c.Get(ObjectType("sequences")) != 0 {
		t.Error("unknown type should count zero")
	}
	if c.Total() != 20 {
		t.Errorf("expected total 20, got %d", c.Total())
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")

	inv := &Inventory{
		Dialect:     dialect.Oracle,
		Database:    "ORCL",
		Schema:      "HR",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Aggregate:   Counts{Tables: 40, Views: 12, Procedures: 8, Functions: 3},
	}

	if err := inv.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Dialect != dialect.Oracle {
		t.Errorf("expected oracle, got %s", got.Dialect)
	}
	if got.Aggregate != inv.Aggregate {
		t.Errorf("aggregate mismatch: %+v vs %+v", got.Aggregate, inv.Aggregate)
	}
	if got.Schema != "HR" {
		t.Errorf("expected schema HR, got %s", got.Schema)
	}
}

func TestLoadYAML_MissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadYAML_BadDialect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	inv := &Inventory{Dialect: dialect.Dialect("db2")}
	if err := inv.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadYAML(path); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestLoadYAML_NegativeAggregateCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	inv := &Inventory{
		Dialect:   dialect.PostgreSQL,
		Aggregate: Counts{Tables: -5},
	}
	if err := inv.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadYAML(path); err == nil {
		t.Fatal("expected error for negative aggregate count")
	}
}

func TestLoadYAML_BadSchemaEntries(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		schema SchemaObjectCount
	}{
		{"negative count", SchemaObjectCount{Name: "hr", Counts: Counts{Views: -1}}},
		{"empty name", SchemaObjectCount{Counts: Counts{Tables: 3}}},
	}

	for _, tc := range cases {
		path := filepath.Join(dir, "inventory.yaml")
		inv := &Inventory{
			Dialect: dialect.PostgreSQL,
			Schemas: []SchemaObjectCount{tc.schema},
		}
		if err := inv.WriteYAML(path); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadYAML(path); err == nil {
			t.Errorf("%s: expected load error", tc.name)
		}
	}
}
