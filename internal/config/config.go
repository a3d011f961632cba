// Package config loads the optional YAML run configuration file.
// Values not present in the file keep their defaults; command-line
// flags override both.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdroz/sitewise/internal/ledger"
)

// Rate is a per-name resource rate override.
type Rate struct {
	Cost   float64 `yaml:"cost"`
	Carbon float64 `yaml:"carbon"`
}

// Run mirrors the run-configuration surface of the optimizer.
type Run struct {
	PopulationSize int      `yaml:"population_size"`
	Generations    int      `yaml:"generations"`
	MutationRate   float64  `yaml:"mutation_rate"`
	MaxCost        *float64 `yaml:"max_cost"`
	Mode           string   `yaml:"mode"`
	Seed           *int64   `yaml:"seed"`
	Workers        int      `yaml:"workers"`

	// Rates overrides the default substring-classified rate table for
	// the named resource types.
	Rates map[string]Rate `yaml:"rates"`
}

// Default returns the documented defaults: population 50, 100
// generations, mutation rate 0.1, standard mode.
func Default() Run {
	return Run{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.1,
		Mode:           "standard",
	}
}

// Load reads a YAML run configuration over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Run, error) {
	run := Default()
	if path == "" {
		return run, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &run); err != nil {
		return run, fmt.Errorf("parse config %s: %w", path, err)
	}
	return run, nil
}

// RateOverrides converts the YAML rate section to ledger rates.
func (r Run) RateOverrides() map[string]ledger.Rate {
	if len(r.Rates) == 0 {
		return nil
	}
	out := make(map[string]ledger.Rate, len(r.Rates))
	for name, rate := range r.Rates {
		out[name] = ledger.Rate{Cost: rate.Cost, Carbon: rate.Carbon}
	}
	return out
}
