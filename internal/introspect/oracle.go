package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

// Oracle introspects Oracle sources through the ALL_* dictionary views,
// using go-ora (pure Go, no Instant Client).
type Oracle struct {
	cfg   *config.SourceConfig
	db    *sql.DB
	owner string // Oracle schema owner, defaults to username uppercased
}

// NewOracle creates an Oracle introspector.
func NewOracle(cfg *config.SourceConfig) *Oracle {
	owner := strings.ToUpper(cfg.Schema)
	if owner == "" {
		owner = strings.ToUpper(cfg.Username)
	}
	return &Oracle{cfg: cfg, owner: owner}
}

// ConnString returns the go-ora connection string.
func (o *Oracle) ConnString() string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		o.cfg.Username, o.cfg.Password, o.cfg.Host, o.cfg.Port, o.cfg.Database)
}

func (o *Oracle) Connect(ctx context.Context) error {
	if o.cfg.Username == "" || o.cfg.Password == "" {
		return &AuthenticationError{Dialect: dialect.Oracle, Reason: "username and password are required"}
	}

	db, err := sql.Open("oracle", o.ConnString())
	if err != nil {
		return &ConnectionError{Dialect: dialect.Oracle, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &ConnectionError{Dialect: dialect.Oracle, Err: err}
	}

	o.db = db
	return nil
}

// Introspect counts objects owned by the target schema. Oracle conflates
// user and schema, so the result always describes a single schema: the
// configured one or the current session schema.
func (o *Oracle) Introspect(ctx context.Context) (inventory.Raw, error) {
	if o.db == nil {
		return inventory.Raw{}, fmt.Errorf("not connected; call Connect first")
	}

	owner := o.owner
	if owner == "" {
		if err := o.db.QueryRowContext(ctx,
			"SELECT SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA') FROM DUAL").Scan(&owner); err != nil {
			return inventory.Raw{}, &QueryError{Dialect: dialect.Oracle, Op: "current schema", Err: err}
		}
		owner = strings.ToUpper(owner)
	}

	objects := make(map[string]int)

	counts := []struct {
		label string
		query string
	}{
		{"TABLE", "SELECT COUNT(*) FROM ALL_TABLES WHERE OWNER = :1"},
		{"VIEW", "SELECT COUNT(*) FROM ALL_VIEWS WHERE OWNER = :1"},
		{"PROCEDURE", "SELECT COUNT(*) FROM ALL_PROCEDURES WHERE OWNER = :1 AND OBJECT_TYPE = 'PROCEDURE'"},
		{"FUNCTION", "SELECT COUNT(*) FROM ALL_PROCEDURES WHERE OWNER = :1 AND OBJECT_TYPE = 'FUNCTION'"},
	}

	for _, c := range counts {
		var n int
		if err := o.db.QueryRowContext(ctx, c.query, owner).Scan(&n); err != nil {
			return inventory.Raw{}, &QueryError{Dialect: dialect.Oracle, Op: strings.ToLower(c.label) + " count", Err: err}
		}
		objects[c.label] = n
	}

	return inventory.Raw{
		Schemas: []inventory.RawSchema{{Name: owner, Objects: objects}},
	}, nil
}

func (o *Oracle) Close() error {
	if o.db != nil {
		err := o.db.Close()
		o.db = nil
		return err
	}
	return nil
}

var _ Introspector = (*Oracle)(nil)
