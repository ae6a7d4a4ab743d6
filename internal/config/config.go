// Package config loads the calculator's deployment configuration: the
// source connection, the effort-multiplier table, and the complexity
// thresholds. Credentials may be secret references resolved at load time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/effort"
)

const (
	CurrentVersion = 1
	DefaultPath    = "~/.mica/mica.yaml"
)

// Config is the top-level configuration.
type Config struct {
	Version int          `yaml:"version"`
	Source  SourceConfig `yaml:"source"`
	Effort  EffortConfig `yaml:"effort,omitempty"`
	Logging LogConfig    `yaml:"logging,omitempty"`
	Output  OutputConfig `yaml:"output,omitempty"`
}

// SourceConfig defines the source database connection.
type SourceConfig struct {
	Dialect  dialect.Dialect `yaml:"dialect"`
	Host     string          `yaml:"host,omitempty"`
	Port     int             `yaml:"port,omitempty"`
	Database string          `yaml:"database"`
	// Schema restricts analysis to a single schema when set.
	Schema   string `yaml:"schema,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	// Account identifies a Snowflake source account.
	Account string `yaml:"account,omitempty"`
	// HTTPPath and Token apply to Lakehouse SQL warehouse endpoints.
	HTTPPath string `yaml:"http_path,omitempty"`
	Token    string `yaml:"token,omitempty"`
	SSL      bool   `yaml:"ssl,omitempty"`
}

// Summary returns the credential-free connection description attached to
// estimation results.
func (s *SourceConfig) Summary() effort.ConnectionSummary {
	return effort.ConnectionSummary{
		Host:     s.Host,
		Port:     s.Port,
		Database: s.Database,
		Account:  s.Account,
		Schema:   s.Schema,
	}
}

// EffortConfig holds the estimation rule data. Empty sections fall back to
// the shipped defaults; a partially filled rule table is a deployment defect
// surfaced by the estimator's construction-time validation.
type EffortConfig struct {
	Rules      effort.Rules `yaml:"rules,omitempty"`
	Thresholds []float64    `yaml:"thresholds,omitempty,flow"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level     string `yaml:"level,omitempty"`     // debug, info, warn, error
	Directory string `yaml:"directory,omitempty"` // default ~/.mica/logs/
}

// OutputConfig defines where run artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty"` // default ~/.mica/output/
}

// Load reads, parses, and resolves the config file at the given path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
	}
	if cfg.Source.Dialect != "" && !cfg.Source.Dialect.Valid() {
		return nil, fmt.Errorf("unsupported source dialect %q", cfg.Source.Dialect)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// May hold resolved credentials; keep it private.
	return os.WriteFile(path, data, 0o600)
}

// Default returns a complete configuration with the shipped effort rules,
// suitable for `mica config init`.
func Default() *Config {
	cfg := &Config{
		Version: CurrentVersion,
		Source: SourceConfig{
			Dialect: dialect.PostgreSQL,
			Host:    "localhost",
			Port:    5432,
		},
		Effort: EffortConfig{
			Rules:      effort.DefaultRules(),
			Thresholds: effort.DefaultThresholds(),
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Effort.Rules == nil {
		c.Effort.Rules = effort.DefaultRules()
	}
	if len(c.Effort.Thresholds) == 0 {
		c.Effort.Thresholds = effort.DefaultThresholds()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Directory == "" {
		c.Logging.Directory = ExpandHome("~/.mica/logs/")
	}
	if c.Output.Directory == "" {
		c.Output.Directory = ExpandHome("~/.mica/output/")
	}
}

var secretPattern = regexp.MustCompile(`\$\{(ENV|VAULT|AWS_SM):([^}]+)\}`)

func (c *Config) resolveSecrets() error {
	var err error
	c.Source.Password, err = ResolveValue(c.Source.Password)
	if err != nil {
		return fmt.Errorf("source password: %w", err)
	}
	c.Source.Token, err = ResolveValue(c.Source.Token)
	if err != nil {
		return fmt.Errorf("source token: %w", err)
	}
	return nil
}

// ResolveValue resolves a secret reference of the form ${PROVIDER:ref}.
// Plain values pass through unchanged.
func ResolveValue(val string) (string, error) {
	matches := secretPattern.FindStringSubmatch(val)
	if matches == nil {
		return val, nil
	}

	provider, ref := matches[1], matches[2]

	switch provider {
	case "ENV":
		v := os.Getenv(ref)
		if v == "" {
			return "", fmt.Errorf("environment variable %s not set", ref)
		}
		return v, nil
	case "VAULT":
		return resolveVault(ref)
	case "AWS_SM":
		return resolveAWSSecretsManager(ref)
	default:
		return "", fmt.Errorf("unknown secrets provider: %s", provider)
	}
}

// ExpandHome expands ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
