// Package dialect defines the closed set of supported source database
// systems. Every effort rule, narrative table, and introspection adapter is
// keyed by one of these values.
package dialect

import "fmt"

// Dialect identifies a source database system family.
type Dialect string

const (
	Oracle     Dialect = "oracle"
	SQLServer  Dialect = "sqlserver"
	PostgreSQL Dialect = "postgresql"
	Teradata   Dialect = "teradata"
	Lakehouse  Dialect = "lakehouse"
	// Snowflake covers migrations where the source is itself a Snowflake
	// account (consolidation or re-platforming).
	Snowflake Dialect = "snowflake"
)

// All lists every supported dialect in stable order.
var All = []Dialect{Oracle, SQLServer, PostgreSQL, Teradata, Lakehouse, Snowflake}

var displayNames = map[Dialect]string{
	Oracle:     "Oracle",
	SQLServer:  "SQL Server",
	PostgreSQL: "PostgreSQL",
	Teradata:   "Teradata",
	Lakehouse:  "Databricks Lakehouse",
	Snowflake:  "Snowflake",
}

// Parse validates a user-supplied dialect name.
func Parse(s string) (Dialect, error) {
	d := Dialect(s)
	if _, ok := displayNames[d]; !ok {
		return "", fmt.Errorf("unsupported source dialect: %q", s)
	}
	return d, nil
}

// Display returns the human-readable name used in documents.
func (d Dialect) Display() string {
	if name, ok := displayNames[d]; ok {
		return name
	}
	return string(d)
}

// Valid reports whether d is one of the supported dialects.
func (d Dialect) Valid() bool {
	_, ok := displayNames[d]
	return ok
}
