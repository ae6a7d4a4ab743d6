package narrative

import (
	"strings"
	"testing"

	"github.com/micatools/mica/internal/dialect"
)

func TestDefault_CoversAllDialects(t *testing.T) {
	tables := Default()

	for _, d := range dialect.All {
		if len(tables.BusinessValueFor(d)) == 0 {
			t.Errorf("%s: empty business value", d)
		}
		if len(tables.RisksFor(d)) == 0 {
			t.Errorf("%s: empty risks", d)
		}
		if len(tables.RecommendationsFor(d)) == 0 {
			t.Errorf("%s: empty recommendations", d)
		}
	}
}

func TestDefault_SharedOpeners(t *testing.T) {
	tables := Default()

	// Every dialect's risk list starts with the shared openers.
	for _, d := range dialect.All {
		risks := tables.RisksFor(d)
		if len(risks) < len(baseRisks) {
			t.Errorf("%s: fewer risks than the shared openers", d)
			continue
		}
		for i, want := range baseRisks {
			if risks[i] != want {
				t.Errorf("%s risk %d: got %q, want %q", d, i, risks[i], want)
			}
		}
	}
}

func TestDefault_DialectSpecificContent(t *testing.T) {
	tables := Default()

	oracleRisks := strings.Join(tables.RisksFor(dialect.Oracle), " ")
	if !strings.Contains(oracleRisks, "PL/SQL") {
		t.Error("Oracle risks should mention PL/SQL")
	}

	teradataRisks := strings.Join(tables.RisksFor(dialect.Teradata), " ")
	if !strings.Contains(teradataRisks, "BTEQ") {
		t.Error("Teradata risks should mention BTEQ")
	}

	// Snowflake-to-Snowflake carries only the shared lists.
	if len(tables.RisksFor(dialect.Snowflake)) != len(baseRisks) {
		t.Errorf("Snowflake risks should be the shared openers only, got %d",
			len(tables.RisksFor(dialect.Snowflake)))
	}
}

func TestFallbacks(t *testing.T) {
	empty := Tables{}

	bv := empty.BusinessValueFor(dialect.Oracle)
	if len(bv) != len(GenericBusinessValue) {
		t.Errorf("expected generic business value, got %d items", len(bv))
	}
	if &bv[0] != &GenericBusinessValue[0] {
		t.Error("fallback should return the shared slice, not a copy")
	}
	if len(empty.RisksFor(dialect.Teradata)) != len(GenericRisks) {
		t.Error("expected generic risks")
	}
	if len(empty.RecommendationsFor(dialect.Lakehouse)) != len(GenericRecommendations) {
		t.Error("expected generic recommendations")
	}
}

func TestSelectionIsStable(t *testing.T) {
	tables := Default()

	a := tables.RecommendationsFor(dialect.SQLServer)
	b := tables.RecommendationsFor(dialect.SQLServer)
	if len(a) != len(b) {
		t.Fatal("selection length changed between calls")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("item %d differs between calls", i)
		}
	}
}
