package inventory

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/micatools/mica/internal/dialect"
)

// Raw is the dialect-specific introspection result handed over by an
// adapter: one entry per discovered schema, with counts keyed by the
// dialect's native object-kind labels (e.g. Teradata TableKind codes,
// information_schema table/routine types, Oracle OBJECT_TYPE values).
type Raw struct {
	Schemas []RawSchema `yaml:"schemas"`
}

// RawSchema is one schema as reported by the source database.
type RawSchema struct {
	Name    string         `yaml:"name"`
	Objects map[string]int `yaml:"objects"`
}

// LoadRawYAML reads a raw count file supplied in place of live
// introspection, for sources without a bundled driver.
func LoadRawYAML(path string) (Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Raw{}, fmt.Errorf("reading raw counts: %w", err)
	}

	raw := Raw{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Raw{}, fmt.Errorf("parsing raw counts: %w", err)
	}

	return raw, nil
}

// NormalizationError indicates that a raw introspection result could not be
// interpreted for the declared dialect. It is terminal for the run.
type NormalizationError struct {
	Dialect dialect.Dialect
	Reason  string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %s introspection result: %s", e.Dialect, e.Reason)
}

// objectKinds maps each dialect's native object-kind labels onto the
// canonical categories. Labels absent from a dialect's table are counted
// toward nothing: sources report kinds (packages, macros' siblings, synonyms)
// that this estimate deliberately ignores.
var objectKinds = map[dialect.Dialect]map[string]ObjectType{
	dialect.PostgreSQL: {
		"BASE TABLE": Tables,
		"VIEW":       Views,
		"PROCEDURE":  Procedures,
		"FUNCTION":   Functions,
	},
	dialect.Oracle: {
		"TABLE":     Tables,
		"VIEW":      Views,
		"PROCEDURE": Procedures,
		"FUNCTION":  Functions,
	},
	// sys.objects type codes. Scalar, inline and table-valued functions all
	// count as functions.
	dialect.SQLServer: {
		"U":  Tables,
		"V":  Views,
		"P":  Procedures,
		"FN": Functions,
		"IF": Functions,
		"TF": Functions,
	},
	// DBC.TablesV TableKind codes. Macros behave like procedures in
	// practice; the many UDF kinds collapse into functions.
	dialect.Teradata: {
		"T": Tables,
		"O": Tables,
		"V": Views,
		"P": Procedures,
		"M": Procedures,
		"F": Functions,
		"A": Functions,
		"R": Functions,
		"S": Functions,
		"U": Functions,
		"E": Functions,
		"G": Functions,
		"N": Functions,
		"1": Functions,
	},
	dialect.Lakehouse: {
		"TABLE":      Tables,
		"BASE TABLE": Tables,
		"VIEW":       Views,
		"PROCEDURE":  Procedures,
		"FUNCTION":   Functions,
	},
	dialect.Snowflake: {
		"BASE TABLE": Tables,
		"VIEW":       Views,
		"PROCEDURE":  Procedures,
		"FUNCTION":   Functions,
	},
}

// Normalize converts a dialect-specific raw introspection result into the
// canonical counts. With no target schema it returns one SchemaObjectCount
// per discovered schema ordered by name, plus their sum as the aggregate.
// With a target schema it filters to that schema, returns its counts as the
// aggregate, and omits the all-schemas summary.
//
// Normalize is a pure transformation; it fails with *NormalizationError when
// the raw result is malformed for the dialect.
func Normalize(d dialect.Dialect, raw Raw, targetSchema string) (Counts, []SchemaObjectCount, error) {
	kinds, ok := objectKinds[d]
	if !ok {
		return Counts{}, nil, &NormalizationError{Dialect: d, Reason: "unsupported dialect"}
	}

	seen := make(map[string]bool, len(raw.Schemas))
	schemas := make([]SchemaObjectCount, 0, len(raw.Schemas))

	for _, rs := range raw.Schemas {
		if rs.Name == "" {
			return Counts{}, nil, &NormalizationError{Dialect: d, Reason: "schema with empty name"}
		}
		if seen[rs.Name] {
			return Counts{}, nil, &NormalizationError{Dialect: d, Reason: fmt.Sprintf("duplicate schema %q", rs.Name)}
		}
		seen[rs.Name] = true

		sc := SchemaObjectCount{Name: rs.Name}
		for label, n := range rs.Objects {
			if n < 0 {
				return Counts{}, nil, &NormalizationError{
					Dialect: d,
					Reason:  fmt.Sprintf("negative count %d for %q in schema %q", n, label, rs.Name),
				}
			}
			kind, counted := kinds[label]
			if !counted {
				continue
			}
			sc.add(kind, n)
		}
		schemas = append(schemas, sc)
	}

	if targetSchema != "" {
		for _, sc := range schemas {
			if strings.EqualFold(sc.Name, targetSchema) {
				return sc.Counts, nil, nil
			}
		}
		// The requested schema exists but holds nothing the source reported.
		// An empty schema is still a valid run.
		return Counts{}, nil, nil
	}

	sort.Slice(schemas, func(i, j int) bool { return schemas[i].Name < schemas[j].Name })

	var agg Counts
	for _, sc := range schemas {
		agg.Tables += sc.Tables
		agg.Views += sc.Views
		agg.Procedures += sc.Procedures
		agg.Functions += sc.Functions
	}

	return agg, schemas, nil
}
