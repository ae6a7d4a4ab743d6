package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/inventory"
	"github.com/micatools/mica/internal/narrative"
)

func sampleResult() *effort.Result {
	return &effort.Result{
		Dialect:    dialect.Oracle,
		Connection: effort.ConnectionSummary{Host: "db01", Port: 1521, Database: "ORCL"},
		Aggregate:  inventory.Counts{Tables: 5, Views: 0, Procedures: 2, Functions: 0},
		Schemas: []inventory.SchemaObjectCount{
			{Name: "HR", Counts: inventory.Counts{Tables: 3, Procedures: 1}},
			{Name: "SALES", Counts: inventory.Counts{Tables: 2, Procedures: 1}},
		},
		Efforts: []effort.ObjectTypeEffort{
			{Type: inventory.Tables, Count: 5, HoursPerObject: 2, TotalHours: 10},
			{Type: inventory.Views, Count: 0, HoursPerObject: 1, TotalHours: 0},
			{Type: inventory.Procedures, Count: 2, HoursPerObject: 5, TotalHours: 10},
			{Type: inventory.Functions, Count: 0, HoursPerObject: 3, TotalHours: 0},
		},
		TotalHours:      20,
		Complexity:      effort.TierLow,
		BusinessValue:   []string{"Lower licensing costs."},
		Risks:           []string{"PL/SQL conversion effort."},
		Recommendations: []string{"Pilot one schema first."},
		GeneratedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRender_Header(t *testing.T) {
	doc := Render(sampleResult())

	if !strings.Contains(doc, "# Oracle to Snowflake Migration Strategy") {
		t.Error("missing title with display name")
	}
	if !strings.Contains(doc, "2026-03-01T12:00:00Z") {
		t.Error("missing RFC3339 timestamp")
	}
	if !strings.Contains(doc, "**Total Estimated Hours:** 20") {
		t.Error("missing total hours")
	}
	if !strings.Contains(doc, "**Complexity:** LOW") {
		t.Error("missing complexity tier")
	}
}

func TestRender_EffortRowsOnlyForPositiveCounts(t *testing.T) {
	doc := Render(sampleResult())

	idx := strings.Index(doc, "## Effort Breakdown")
	if idx < 0 {
		t.Fatal("missing effort breakdown section")
	}
	end := strings.Index(doc[idx:], "## Business Value")
	if end < 0 {
		t.Fatal("missing business value section after the breakdown")
	}
	breakdown := doc[idx : idx+end]

	if !strings.Contains(breakdown, "| Tables | 5 | 2 | 10 |") {
		t.Error("missing tables effort row")
	}
	if !strings.Contains(breakdown, "| Procedures | 2 | 5 | 10 |") {
		t.Error("missing procedures effort row")
	}
	if strings.Contains(breakdown, "| Views |") {
		t.Error("zero-count views should not appear in the breakdown")
	}
	if strings.Contains(breakdown, "| Functions |") {
		t.Error("zero-count functions should not appear in the breakdown")
	}
}

func TestRender_EmptyBreakdown(t *testing.T) {
	r := sampleResult()
	r.Aggregate = inventory.Counts{}
	for i := range r.Efforts {
		r.Efforts[i].Count = 0
		r.Efforts[i].TotalHours = 0
	}

	doc := Render(r)
	if !strings.Contains(doc, "No objects with a positive count were found.") {
		t.Error("empty breakdown should explain itself")
	}
}

func TestRender_InventoryAlwaysComplete(t *testing.T) {
	doc := Render(sampleResult())

	// The inventory table keeps all four rows even at zero.
	if !strings.Contains(doc, "| Views | 0 |") {
		t.Error("inventory should list views even at zero")
	}
	if !strings.Contains(doc, "| **Total** | **7** |") {
		t.Error("inventory should carry the grand total")
	}
}

func TestRender_SchemaSummary(t *testing.T) {
	doc := Render(sampleResult())

	if !strings.Contains(doc, "## Schemas") {
		t.Fatal("missing schema summary")
	}
	if !strings.Contains(doc, "| HR | 3 | 0 | 1 | 0 |") {
		t.Error("missing HR row")
	}
}

func TestRender_SchemaSummarySuppressedForFilteredSnowflake(t *testing.T) {
	r := sampleResult()
	r.Dialect = dialect.Snowflake
	r.Connection.Schema = "ANALYTICS"

	doc := Render(r)
	if strings.Contains(doc, "## Schemas") {
		t.Error("filtered snowflake run should omit the schema summary")
	}

	// The same schemas reappear as soon as the filter is absent.
	r.Connection.Schema = ""
	doc = Render(r)
	if !strings.Contains(doc, "## Schemas") {
		t.Error("unfiltered snowflake run should keep the schema summary")
	}
}

func TestRender_GenericFallbacks(t *testing.T) {
	r := sampleResult()
	r.BusinessValue = nil
	r.Risks = nil
	r.Recommendations = nil

	doc := Render(r)

	// Empty sections fall back to the same generic sequences the estimator
	// would have selected.
	for _, item := range narrative.GenericBusinessValue {
		if !strings.Contains(doc, "- "+item) {
			t.Errorf("missing generic business value item: %s", item)
		}
	}
	for _, item := range narrative.GenericRisks {
		if !strings.Contains(doc, "- "+item) {
			t.Errorf("missing generic risk item: %s", item)
		}
	}
	for _, item := range narrative.GenericRecommendations {
		if !strings.Contains(doc, "- "+item) {
			t.Errorf("missing generic recommendation item: %s", item)
		}
	}
}

func TestRender_NextSteps(t *testing.T) {
	doc := Render(sampleResult())

	idx := strings.Index(doc, "## Next Steps")
	if idx < 0 {
		t.Fatal("missing next steps section")
	}
	tail := doc[idx:]
	for i := 1; i <= 4; i++ {
		marker := string(rune('0'+i)) + ". "
		if !strings.Contains(tail, marker) {
			t.Errorf("missing step %d", i)
		}
	}

	// The checklist is fixed; a second render is byte-identical.
	if Render(sampleResult()) != doc {
		t.Error("rendering is not deterministic")
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		2:      "2",
		2.5:    "2.5",
		0.25:   "0.25",
		1234.5: "1234.5",
	}
	for in, want := range cases {
		if got := formatHours(in); got != want {
			t.Errorf("formatHours(%g) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "strategy.md")
	if err := WriteMarkdown(sampleResult(), path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "# Oracle to Snowflake Migration Strategy") {
		t.Error("written file missing title")
	}
}
