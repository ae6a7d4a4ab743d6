// Package document renders an estimation result into the markdown migration
// strategy document handed to stakeholders.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/effort"
	"github.com/micatools/mica/internal/narrative"
)

// nextSteps is the fixed closing checklist, identical across all runs.
var nextSteps = []string{
	"Review this preliminary estimate with application owners and adjust effort multipliers for local conditions.",
	"Run a detailed assessment of stored procedure and function code for the highest-count schemas.",
	"Execute a pilot migration of one representative schema to validate tooling and timings.",
	"Finalize the migration plan, timeline, and resourcing based on pilot results.",
}

// Render produces the complete markdown strategy document.
func Render(r *effort.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s to Snowflake Migration Strategy\n\n", r.Dialect.Display())
	fmt.Fprintf(&b, "- **Generated:** %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Total Estimated Hours:** %s\n", formatHours(r.TotalHours))
	fmt.Fprintf(&b, "- **Complexity:** %s\n\n", r.Complexity)

	writeConnection(&b, r)
	writeObjectCounts(&b, r)
	writeSchemaSummary(&b, r)
	writeEffortBreakdown(&b, r)

	writeBullets(&b, "Business Value", r.BusinessValue, narrative.GenericBusinessValue)
	writeBullets(&b, "Potential Risks", r.Risks, narrative.GenericRisks)
	writeBullets(&b, "Recommendations", r.Recommendations, narrative.GenericRecommendations)

	b.WriteString("## Next Steps\n\n")
	for i, s := range nextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	return b.String()
}

// WriteMarkdown renders the document and writes it to path.
func WriteMarkdown(r *effort.Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}
	return os.WriteFile(path, []byte(Render(r)), 0o644)
}

func writeConnection(b *strings.Builder, r *effort.Result) {
	c := r.Connection
	if c.Host == "" && c.Database == "" && c.Account == "" {
		return
	}

	b.WriteString("## Source Environment\n\n")
	if c.Host != "" {
		if c.Port != 0 {
			fmt.Fprintf(b, "- Host: %s:%d\n", c.Host, c.Port)
		} else {
			fmt.Fprintf(b, "- Host: %s\n", c.Host)
		}
	}
	if c.Account != "" {
		fmt.Fprintf(b, "- Account: %s\n", c.Account)
	}
	if c.Database != "" {
		fmt.Fprintf(b, "- Database: %s\n", c.Database)
	}
	if c.Schema != "" {
		fmt.Fprintf(b, "- Schema: %s\n", c.Schema)
	}
	b.WriteString("\n")
}

func writeObjectCounts(b *strings.Builder, r *effort.Result) {
	b.WriteString("## Object Inventory\n\n")
	b.WriteString("| Object Type | Count |\n")
	b.WriteString("|-------------|-------|\n")
	fmt.Fprintf(b, "| Tables | %d |\n", r.Aggregate.Tables)
	fmt.Fprintf(b, "| Views | %d |\n", r.Aggregate.Views)
	fmt.Fprintf(b, "| Procedures | %d |\n", r.Aggregate.Procedures)
	fmt.Fprintf(b, "| Functions | %d |\n", r.Aggregate.Functions)
	fmt.Fprintf(b, "| **Total** | **%d** |\n\n", r.Aggregate.Total())
}

func writeSchemaSummary(b *strings.Builder, r *effort.Result) {
	// The all-schemas table is suppressed when the source is itself the
	// target platform and a schema filter constrained the run: the
	// single-schema view already tells the whole story.
	if len(r.Schemas) == 0 {
		return
	}
	if r.Dialect == dialect.Snowflake && r.Connection.Schema != "" {
		return
	}

	b.WriteString("## Schemas\n\n")
	b.WriteString("| Schema | Tables | Views | Procedures | Functions |\n")
	b.WriteString("|--------|--------|-------|------------|-----------|\n")
	for _, s := range r.Schemas {
		fmt.Fprintf(b, "| %s | %d | %d | %d | %d |\n",
			s.Name, s.Tables, s.Views, s.Procedures, s.Functions)
	}
	b.WriteString("\n")
}

func writeEffortBreakdown(b *strings.Builder, r *effort.Result) {
	b.WriteString("## Effort Breakdown\n\n")

	rows := 0
	for _, oe := range r.Efforts {
		if oe.Count > 0 {
			rows++
		}
	}
	if rows == 0 {
		b.WriteString("No objects with a positive count were found.\n\n")
		return
	}

	b.WriteString("| Object Type | Count | Hours/Object | Total Hours |\n")
	b.WriteString("|-------------|-------|--------------|-------------|\n")
	for _, oe := range r.Efforts {
		if oe.Count == 0 {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %s | %s |\n",
			titleCase(string(oe.Type)), oe.Count,
			formatHours(oe.HoursPerObject), formatHours(oe.TotalHours))
	}
	b.WriteString("\n")
}

func writeBullets(b *strings.Builder, heading string, items, fallback []string) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if len(items) == 0 {
		items = fallback
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// formatHours trims trailing zeros so whole-hour values render without a
// decimal point.
func formatHours(h float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", h), "0")
	return strings.TrimRight(s, ".")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
