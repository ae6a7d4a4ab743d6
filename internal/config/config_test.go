package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/inventory"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != CurrentVersion {
		t.Errorf("expected version %d, got %d", CurrentVersion, cfg.Version)
	}
	if cfg.Source.Dialect != dialect.PostgreSQL {
		t.Errorf("expected postgresql default, got %s", cfg.Source.Dialect)
	}
	if len(cfg.Effort.Thresholds) != 3 {
		t.Errorf("expected 3 thresholds, got %d", len(cfg.Effort.Thresholds))
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info level, got %s", cfg.Logging.Level)
	}
	if cfg.Output.Directory == "" {
		t.Error("expected non-empty output directory")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mica.yaml")

	cfg := Default()
	cfg.Source.Dialect = dialect.Teradata
	cfg.Source.Host = "td.example.com"
	cfg.Source.Port = 1025
	cfg.Source.Database = "dw"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Config files hold credentials; mode must stay private.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected 0600 mode, got %o", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Source.Dialect != dialect.Teradata {
		t.Errorf("expected teradata, got %s", got.Source.Dialect)
	}
	if got.Source.Host != "td.example.com" {
		t.Errorf("host mismatch: %s", got.Source.Host)
	}
}

func TestLoad_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mica.yaml")
	if err := os.WriteFile(path, []byte("version: 99\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestLoad_BadDialect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mica.yaml")
	content := "version: 1\nsource:\n  dialect: db2\n  database: legacy\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mica.yaml")
	content := "version: 1\nsource:\n  dialect: oracle\n  database: ORCL\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Effort.Rules == nil {
		t.Fatal("expected default effort rules")
	}
	if cfg.Effort.Rules[dialect.Oracle][inventory.Procedures] != 5 {
		t.Errorf("expected shipped Oracle procedure rule, got %g",
			cfg.Effort.Rules[dialect.Oracle][inventory.Procedures])
	}
	if len(cfg.Effort.Thresholds) != 3 {
		t.Errorf("expected default thresholds, got %v", cfg.Effort.Thresholds)
	}
}

func TestLoad_EnvSecret(t *testing.T) {
	t.Setenv("MICA_TEST_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "mica.yaml")
	content := `version: 1
source:
  dialect: postgresql
  database: app
  username: app
  password: ${ENV:MICA_TEST_DB_PASSWORD}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Source.Password != "s3cret" {
		t.Errorf("expected resolved secret, got %q", cfg.Source.Password)
	}
}

func TestLoad_EnvSecretMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mica.yaml")
	content := `version: 1
source:
  dialect: postgresql
  database: app
  password: ${ENV:MICA_TEST_UNSET_VAR}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unset environment variable")
	}
}

func TestResolveValue_Passthrough(t *testing.T) {
	got, err := ResolveValue("plain-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain-password" {
		t.Errorf("plain values should pass through, got %q", got)
	}
}

func TestSummary_NoCredentials(t *testing.T) {
	src := SourceConfig{
		Dialect:  dialect.Snowflake,
		Account:  "xy12345",
		Database: "analytics",
		Schema:   "PUBLIC",
		Username: "svc",
		Password: "hunter2",
		Token:    "tok",
	}

	want := effort.ConnectionSummary{Account: "xy12345", Database: "analytics", Schema: "PUBLIC"}
	if got := src.Summary(); got != want {
		t.Errorf("summary mismatch: %+v", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := ExpandHome("~/.mica/mica.yaml")
	if got != filepath.Join(home, ".mica/mica.yaml") {
		t.Errorf("unexpected expansion: %s", got)
	}
	if ExpandHome("/abs/path") != "/abs/path" {
		t.Error("absolute paths should pass through")
	}
}
