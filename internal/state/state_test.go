package state

import (
	"path/filepath"
	"testing"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
)

func TestLoad_FreshWhenMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if s.CurrentStep != StepConnect {
		t.Errorf("fresh state should start at connect, got %s", s.CurrentStep)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s := New()
	s.CurrentStep = StepEstimate
	s.SourceDialect = dialect.SQLServer
	s.SourceConfig = &config.SourceConfig{
		Dialect:  dialect.SQLServer,
		Host:     "db01",
		Port:     1433,
		Database: "erp",
	}
	s.InventoryPath = "/tmp/inventory.yaml"
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentStep != StepEstimate {
		t.Errorf("expected estimate step, got %s", got.CurrentStep)
	}
	if got.SourceDialect != dialect.SQLServer {
		t.Errorf("expected sqlserver, got %s", got.SourceDialect)
	}
	if got.SourceConfig == nil || got.SourceConfig.Host != "db01" {
		t.Errorf("source config lost: %+v", got.SourceConfig)
	}
	if got.InventoryPath != "/tmp/inventory.yaml" {
		t.Errorf("inventory path lost: %s", got.InventoryPath)
	}
	if got.LastUpdated.IsZero() {
		t.Error("save should stamp last_updated")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.CurrentStep = StepComplete
	s.SourceDialect = dialect.Oracle
	s.SourceConfig = &config.SourceConfig{Dialect: dialect.Oracle}
	s.InventoryPath = "a"
	s.EstimatePath = "b"
	s.DocumentPath = "c"

	s.Reset()

	if s.CurrentStep != StepConnect {
		t.Errorf("reset should return to connect, got %s", s.CurrentStep)
	}
	if s.InventoryPath != "" || s.EstimatePath != "" || s.DocumentPath != "" {
		t.Error("reset should drop artifact paths")
	}
	if s.SourceConfig == nil {
		t.Error("reset should keep the connection")
	}
}
