package introspect

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

// Postgres introspects PostgreSQL sources through information_schema.
type Postgres struct {
	cfg  *config.SourceConfig
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL introspector.
func NewPostgres(cfg *config.SourceConfig) *Postgres {
	return &Postgres{cfg: cfg}
}

func (p *Postgres) Connect(ctx context.Context) error {
	if p.cfg.Username == "" || p.cfg.Password == "" {
		return &AuthenticationError{Dialect: dialect.PostgreSQL, Reason: "username and password are required"}
	}

	connStr := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s default_query_exec_mode=simple_protocol",
		p.cfg.Host, p.cfg.Port, p.cfg.Database, p.cfg.Username, p.cfg.Password,
	)
	if p.cfg.SSL {
		connStr += " sslmode=require"
	} else {
		connStr += " sslmode=disable"
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return &ConnectionError{Dialect: dialect.PostgreSQL, Err: err}
	}
	// Metadata counting needs a single connection.
	poolCfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return &ConnectionError{Dialect: dialect.PostgreSQL, Err: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return &ConnectionError{Dialect: dialect.PostgreSQL, Err: err}
	}

	p.pool = pool
	return nil
}

func (p *Postgres) Introspect(ctx context.Context) (inventory.Raw, error) {
	if p.pool == nil {
		return inventory.Raw{}, fmt.Errorf("not connected; call Connect first")
	}

	// Seed every user schema so empty schemas still appear in the summary.
	byName := make(map[string]map[string]int)

	rows, err := p.pool.Query(ctx, `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT LIKE 'pg\_%' AND schema_name <> 'information_schema'
		ORDER BY schema_name`)
	if err != nil {
		return inventory.Raw{}, &QueryError{Dialect: dialect.PostgreSQL, Op: "schemata", Err: err}
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return inventory.Raw{}, &QueryError{Dialect: dialect.PostgreSQL, Op: "schemata", Err: err}
		}
		byName[name] = make(map[string]int)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return inventory.Raw{}, &QueryError{Dialect: dialect.PostgreSQL, Op: "schemata", Err: err}
	}

	if err := p.countInto(ctx, byName, "tables", `
		SELECT table_schema, table_type, COUNT(*)
		FROM information_schema.tables
		WHERE table_schema NOT LIKE 'pg\_%' AND table_schema <> 'information_schema'
		GROUP BY table_schema, table_type`); err != nil {
		return inventory.Raw{}, err
	}

	if err := p.countInto(ctx, byName, "routines", `
		SELECT specific_schema, routine_type, COUNT(*)
		FROM information_schema.routines
		WHERE specific_schema NOT LIKE 'pg\_%' AND specific_schema <> 'information_schema'
		  AND routine_type IS NOT NULL
		GROUP BY specific_schema, routine_type`); err != nil {
		return inventory.Raw{}, err
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	raw := inventory.Raw{}
	for _, name := range names {
		raw.Schemas = append(raw.Schemas, inventory.RawSchema{Name: name, Objects: byName[name]})
	}
	return raw, nil
}

func (p *Postgres) countInto(ctx context.Context, byName map[string]map[string]int, op, query string) error {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return &QueryError{Dialect: dialect.PostgreSQL, Op: op, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var schemaName, label string
		var n int
		if err := rows.Scan(&schemaName, &label, &n); err != nil {
			return &QueryError{Dialect: dialect.PostgreSQL, Op: op, Err: err}
		}
		objects, ok := byName[schemaName]
		if !ok {
			objects = make(map[string]int)
			byName[schemaName] = objects
		}
		objects[label] += n
	}
	return rows.Err()
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

var _ Introspector = (*Postgres)(nil)
