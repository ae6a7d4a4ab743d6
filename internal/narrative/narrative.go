// Package narrative holds the curated business-value, risk, and
// recommendation text selected into a migration strategy document. Content
// is dialect-keyed data, not logic: selection returns the same ordered
// sequence for the same dialect on every run.
package narrative

import "github.com/micatools/mica/internal/dialect"

// Tables maps each dialect to its curated narrative sequences. A dialect
// absent from a table falls back to the generic sequence for that section.
type Tables struct {
	BusinessValue   map[dialect.Dialect][]string
	Risks           map[dialect.Dialect][]string
	Recommendations map[dialect.Dialect][]string
}

// Generic fallbacks, used both when a dialect has no curated entries and by
// the document renderer when a result carries empty sections. The two
// fallback paths must stay in lockstep; sharing these slices keeps them
// identical by construction.
var (
	GenericBusinessValue = []string{
		"Enhanced scalability and performance: independently scale compute and storage for any data volume.",
		"Simplified data management: consolidate data, streamline administration, and improve governance.",
		"Faster analytics and insights: accelerate data-driven decisions with high-performance SQL.",
		"Lower total cost of ownership through pay-per-second compute and separate storage pricing.",
	}

	GenericRisks = []string{
		"Data type and SQL dialect compatibility issues during conversion.",
	}

	GenericRecommendations = []string{
		"Create a comprehensive backup of source data before migration begins.",
		"Implement a dedicated testing environment for thorough migration validation.",
	}
)

// BusinessValueFor returns the ordered business-value sequence for a dialect.
func (t Tables) BusinessValueFor(d dialect.Dialect) []string {
	if v, ok := t.BusinessValue[d]; ok && len(v) > 0 {
		return v
	}
	return GenericBusinessValue
}

// RisksFor returns the ordered risk sequence for a dialect.
func (t Tables) RisksFor(d dialect.Dialect) []string {
	if v, ok := t.Risks[d]; ok && len(v) > 0 {
		return v
	}
	return GenericRisks
}

// RecommendationsFor returns the ordered recommendation sequence for a dialect.
func (t Tables) RecommendationsFor(d dialect.Dialect) []string {
	if v, ok := t.Recommendations[d]; ok && len(v) > 0 {
		return v
	}
	return GenericRecommendations
}
