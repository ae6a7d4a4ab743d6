// Package effort turns normalized object counts into a quantified migration
// estimate: per-object-type hours, a total, a complexity tier, and the
// narrative sections of the strategy document.
package effort

import (
	"fmt"
	"time"

	"github.com/micatools/mica/internal/dialect"
	"github.com/micatools/mica/internal/inventory"
	"github.com/micatools/mica/internal/narrative"
)

// Rules is the complete effort-multiplier table: hours per migrated object,
// keyed by (dialect, object type). It is deployment configuration and must
// be total: every dialect and object type has an entry, even if zero.
type Rules map[dialect.Dialect]map[inventory.ObjectType]float64

// Thresholds are the three strictly-increasing hour boundaries separating
// the four complexity tiers.
type Thresholds []float64

// Tier classifies total estimated effort into an ordered band.
type Tier string

const (
	TierLow      Tier = "LOW"
	TierMedium   Tier = "MEDIUM"
	TierHigh     Tier = "HIGH"
	TierVeryHigh Tier = "VERY_HIGH"
)

var tiers = []Tier{TierLow, TierMedium, TierHigh, TierVeryHigh}

// ConfigurationError marks a deployment defect: an incomplete rule table or
// a malformed threshold list. It is never suppressed or defaulted around.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "effort configuration invalid: " + e.Reason
}

// ObjectTypeEffort is one line item of the effort breakdown.
type ObjectTypeEffort struct {
	Type           inventory.ObjectType `yaml:"type" json:"type"`
	Count          int                  `yaml:"count" json:"count"`
	HoursPerObject float64              `yaml:"hours_per_object" json:"hours_per_object"`
	TotalHours     float64              `yaml:"total_hours" json:"total_hours"`
}

// Estimator applies an effort rule table and complexity thresholds to
// aggregate object counts. It is stateless per call and safe for concurrent
// use: the tables are read-only after construction.
type Estimator struct {
	rules      Rules
	thresholds Thresholds
	narratives narrative.Tables

	// Now stamps the generation timestamp; overridable in tests.
	Now func() time.Time
}

// NewEstimator validates the configuration and returns a ready estimator.
// Validation failures are *ConfigurationError; a misconfigured deployment
// must fail here, before any run starts.
func NewEstimator(rules Rules, thresholds Thresholds, narratives narrative.Tables) (*Estimator, error) {
	for _, d := range dialect.All {
		byType, ok := rules[d]
		if !ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("no effort rules for dialect %s", d)}
		}
		for _, t := range inventory.ObjectTypes {
			hours, ok := byType[t]
			if !ok {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("missing effort rule for %s %s", d, t)}
			}
			if hours < 0 {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("negative effort rule for %s %s", d, t)}
			}
		}
	}

	if len(thresholds) != len(tiers)-1 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("expected %d complexity thresholds, got %d", len(tiers)-1, len(thresholds)),
		}
	}
	for i, t := range thresholds {
		if t < 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("negative complexity threshold %v", t)}
		}
		if i > 0 && t <= thresholds[i-1] {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("complexity thresholds not strictly increasing at %v", t),
			}
		}
	}

	return &Estimator{
		rules:      rules,
		thresholds: thresholds,
		narratives: narratives,
		Now:        time.Now,
	}, nil
}

// Estimate produces the estimation result for one run. Fields owned by the
// caller (connection summary, all-schemas summary) are left empty for it to
// attach. Any failure is terminal; no partial result is returned.
func (e *Estimator) Estimate(d dialect.Dialect, agg inventory.Counts) (*Result, error) {
	byType, ok := e.rules[d]
	if !ok {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no effort rules for dialect %s", d)}
	}

	efforts := make([]ObjectTypeEffort, 0, len(inventory.ObjectTypes))
	for _, t := range inventory.ObjectTypes {
		hours, ok := byType[t]
		if !ok {
			// A hole in the table is a configuration defect, not a zero
			// multiplier.
			return nil, &ConfigurationError{Reason: fmt.Sprintf("missing effort rule for %s %s", d, t)}
		}
		count := agg.Get(t)
		if count < 0 {
			return nil, fmt.Errorf("negative %s count %d", t, count)
		}
		efforts = append(efforts, ObjectTypeEffort{
			Type:           t,
			Count:          count,
			HoursPerObject: hours,
			TotalHours:     float64(count) * hours,
		})
	}

	var total float64
	for _, oe := range efforts {
		total += oe.TotalHours
	}

	return &Result{
		Dialect:         d,
		Aggregate:       agg,
		Efforts:         efforts,
		TotalHours:      total,
		Complexity:      e.classify(total),
		BusinessValue:   e.narratives.BusinessValueFor(d),
		Risks:           e.narratives.RisksFor(d),
		Recommendations: e.narratives.RecommendationsFor(d),
		GeneratedAt:     e.Now().UTC(),
	}, nil
}

// classify maps total hours onto a tier. Thresholds are evaluated in
// ascending order; a boundary value belongs to the higher tier.
func (e *Estimator) classify(totalHours float64) Tier {
	for i, t := range e.thresholds {
		if totalHours < t {
			return tiers[i]
		}
	}
	return tiers[len(tiers)-1]
}
