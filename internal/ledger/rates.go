package ledger

import (
	"strings"

	"github.com/pdroz/sitewise/internal/mode"
)

// Rate is the daily per-unit price of a resource type.
type Rate struct {
	Cost   float64 // currency per unit per day
	Carbon float64 // kg CO2 per unit per day
}

// Base rates by equipment class.
var (
	rateCrane   = Rate{Cost: 1000, Carbon: 50}
	rateLabor   = Rate{Cost: 100, Carbon: 5}
	rateDefault = Rate{Cost: 200, Carbon: 10}
)

// RateTable resolves resource type names to daily rates, scaled by a
// mode's cost and carbon multipliers. Explicit per-name overrides take
// precedence; names without an override fall back to classification by
// case-insensitive substring match.
type RateTable struct {
	Overrides        map[string]Rate
	CostMultiplier   float64
	CarbonMultiplier float64
}

// DefaultTable builds the rate table for a mode with no overrides, i.e.
// pure substring classification.
func DefaultTable(p mode.Profile) RateTable {
	return RateTable{
		CostMultiplier:   p.CostMultiplier,
		CarbonMultiplier: p.CarbonMultiplier,
	}
}

// For returns the effective (multiplier-scaled) rate for a resource
// type name.
func (t RateTable) For(name string) Rate {
	base, ok := t.Overrides[name]
	if !ok {
		base = classify(name)
	}
	return Rate{
		Cost:   base.Cost * t.CostMultiplier,
		Carbon: base.Carbon * t.CarbonMultiplier,
	}
}

// classify derives a base rate from the resource name: anything
// crane-like is heavy equipment, anything crew-like is labor, the rest
// is general equipment.
func classify(name string) Rate {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "crane"):
		return rateCrane
	case strings.Contains(n, "worker"), strings.Contains(n, "team"), strings.Contains(n, "labor"):
		return rateLabor
	default:
		return rateDefault
	}
}
