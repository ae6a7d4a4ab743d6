package effort

import (
	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
)

// DefaultThresholds are the shipped complexity boundaries: below 100 hours
// LOW, below 500 MEDIUM, below 2000 HIGH, otherwise VERY_HIGH.
func DefaultThresholds() Thresholds {
	return Thresholds{100, 500, 2000}
}

// DefaultRules returns the shipped effort-multiplier table. The baseline is
// 2h per table, 1h per view, 4h per procedure, 3h per function; dialects
// with heavier procedural conversion (Oracle PL/SQL, Teradata stored
// procedures and macros) carry 5h per procedure, while the Lakehouse has no
// stored-procedure dialect to convert and carries 2h.
func DefaultRules() Rules {
	base := func(procHours float64) map[inventory.ObjectType]float64 {
		return map[inventory.ObjectType]float64{
			inventory.Tables:     2,
			inventory.Views:      1,
			inventory.Procedures: procHours,
			inventory.Functions:  3,
		}
	}

	return Rules{
		dialect.Oracle:     base(5),
		dialect.SQLServer:  base(4),
		dialect.PostgreSQL: base(4),
		dialect.Teradata:   base(5),
		dialect.Lakehouse:  base(2),
		dialect.Snowflake:  base(4),
	}
}
