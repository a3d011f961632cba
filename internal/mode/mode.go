// Package mode defines the optimization profiles. A profile scales task
// durations, resource costs, and carbon output, and weights the three
// objectives against each other during dominance comparison.
package mode

import "fmt"

// Name identifies an optimization profile.
type Name string

const (
	Eco         Name = "eco"
	Standard    Name = "standard"
	Performance Name = "performance"
)

// Weights are the per-objective dominance weights, applied as
// multipliers to (makespan, cost, carbon) before comparison.
type Weights struct {
	Makespan float64
	Cost     float64
	Carbon   float64
}

// Profile is the full configuration of one optimization mode. Fixed for
// a run; passed explicitly wherever it is needed rather than held in
// any global registry.
type Profile struct {
	Name               Name
	DurationMultiplier float64
	CostMultiplier     float64
	CarbonMultiplier   float64
	Weights            Weights
}

var profiles = map[Name]Profile{
	// Eco trades time for lower footprint: slower pace, cheaper and
	// cleaner resource operation, carbon weighted heaviest.
	Eco: {
		Name:               Eco,
		DurationMultiplier: 1.2,
		CostMultiplier:     0.9,
		CarbonMultiplier:   0.7,
		Weights:            Weights{Makespan: 1.0, Cost: 1.0, Carbon: 2.0},
	},
	// Standard is the neutral baseline. All multipliers are 1.0 so raw
	// durations and rates pass through unchanged.
	Standard: {
		Name:               Standard,
		DurationMultiplier: 1.0,
		CostMultiplier:     1.0,
		CarbonMultiplier:   1.0,
		Weights:            Weights{Makespan: 1.0, Cost: 1.0, Carbon: 1.0},
	},
	// Performance compresses the timeline at a premium. It is exempt
	// from the soft budget penalty and weights makespan heaviest.
	Performance: {
		Name:               Performance,
		DurationMultiplier: 0.8,
		CostMultiplier:     1.3,
		CarbonMultiplier:   1.5,
		Weights:            Weights{Makespan: 2.0, Cost: 1.0, Carbon: 0.5},
	},
}

// Get returns the profile for a known mode name.
func Get(name Name) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown mode %q (want eco, standard, or performance)", name)
	}
	return p, nil
}

// Parse resolves a mode string, defaulting to standard when empty.
func Parse(s string) (Profile, error) {
	if s == "" {
		return profiles[Standard], nil
	}
	return Get(Name(s))
}
