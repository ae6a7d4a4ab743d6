// Package introspect connects to a source database and fetches the raw
// per-schema object counts that the inventory normalizer consumes. Adapters
// perform the only I/O in the system; everything downstream is pure.
package introspect

import (
	"context"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

// Introspector fetches raw object counts from a source database.
type Introspector interface {
	// Connect establishes a read-only connection to the source.
	Connect(ctx context.Context) error

	// Introspect returns the raw, dialect-native object counts per schema.
	Introspect(ctx context.Context) (inventory.Raw, error)

	// Close closes the connection.
	Close() error
}

// New creates an Introspector for the configured source. Dialects without a
// bundled driver (Teradata, Lakehouse, Snowflake) return
// *UnsupportedDialectError; their inventories are supplied as YAML instead.
func New(cfg *config.SourceConfig) (Introspector, error) {
	switch cfg.Dialect {
	case dialect.PostgreSQL:
		return NewPostgres(cfg), nil
	case dialect.Oracle:
		return NewOracle(cfg), nil
	case dialect.SQLServer:
		return NewSQLServer(cfg), nil
	default:
		return nil, &UnsupportedDialectError{Dialect: cfg.Dialect}
	}
}

// UnsupportedDialectError is returned when no introspection driver is
// bundled for the requested dialect.
type UnsupportedDialectError struct {
	Dialect dialect.Dialect
}

func (e *UnsupportedDialectError) Error() string {
	return "no introspection driver for dialect: " + string(e.Dialect)
}
