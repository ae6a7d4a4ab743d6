package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/micatools/mica/internal/config"
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

// SQLServer introspects SQL Server sources through sys.objects.
type SQLServer struct {
	cfg *config.SourceConfig
	db  *sql.DB
}

// NewSQLServer creates a SQL Server introspector.
func NewSQLServer(cfg *config.SourceConfig) *SQLServer {
	return &SQLServer{cfg: cfg}
}

// ConnString returns the go-mssqldb connection URL.
func (s *SQLServer) ConnString() string {
	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(s.cfg.Username, s.cfg.Password),
		Host:   fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
	}
	q := url.Values{}
	q.Set("database", s.cfg.Database)
	if !s.cfg.SSL {
		q.Set("encrypt", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *SQLServer) Connect(ctx context.Context) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return &AuthenticationError{Dialect: dialect.SQLServer, Reason: "username and password are required"}
	}

	db, err := sql.Open("sqlserver", s.ConnString())
	if err != nil {
		return &ConnectionError{Dialect: dialect.SQLServer, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &ConnectionError{Dialect: dialect.SQLServer, Err: err}
	}

	s.db = db
	return nil
}

func (s *SQLServer) Introspect(ctx context.Context) (inventory.Raw, error) {
	if s.db == nil {
		return inventory.Raw{}, fmt.Errorf("not connected; call Connect first")
	}

	// sys.objects type is CHAR(2); RTRIM keeps the labels stable.
	rows, err := s.db.QueryContext(ctx, `
		SELECT sch.name, RTRIM(o.type), COUNT(*)
		FROM sys.objects o
		JOIN sys.schemas sch ON o.schema_id = sch.schema_id
		WHERE o.type IN ('U', 'V', 'P', 'FN', 'IF', 'TF')
		  AND o.is_ms_shipped = 0
		GROUP BY sch.name, o.type
		ORDER BY sch.name`)
	if err != nil {
		return inventory.Raw{}, &QueryError{Dialect: dialect.SQLServer, Op: "object counts", Err: err}
	}
	defer rows.Close()

	byName := make(map[string]map[string]int)
	for rows.Next() {
		var schemaName, label string
		var n int
		if err := rows.Scan(&schemaName, &label, &n); err != nil {
			return inventory.Raw{}, &QueryError{Dialect: dialect.SQLServer, Op: "object counts", Err: err}
		}
		label = strings.TrimSpace(label)
		objects, ok := byName[schemaName]
		if !ok {
			objects = make(map[string]int)
			byName[schemaName] = objects
		}
		objects[label] += n
	}
	if err := rows.Err(); err != nil {
		return inventory.Raw{}, &QueryError{Dialect: dialect.SQLServer, Op: "object counts", Err: err}
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

func (s *SQLServer) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

var _ Introspector = (*SQLServer)(nil)
