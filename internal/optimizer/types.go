package optimizer

import (
	"github.com/pdroz/sitewise/internal/evolve"
	"github.com/pdroz/sitewise/internal/ledger"
)

// Config is the validated run configuration. Defaults are the concern
// of the config and CLI layers; anything that reaches Run must already
// be concrete.
type Config struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	MaxCost        *float64
	Mode           string
	Seed           *int64
	Workers        int

	// RateOverrides take precedence over the substring classifier when
	// resolving resource rates.
	RateOverrides map[string]ledger.Rate

	// Progress, when set, receives per-generation statistics.
	Progress func(evolve.GenerationStats)
}

// ConfigurationError reports a malformed run configuration, raised
// before any compute is spent.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Field + ": " + e.Reason
}

// TaskResult is the final placement of one task.
type TaskResult struct {
	TaskID    string   `json:"task_id"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Duration  int      `json:"duration"`
	Resources []string `json:"resources"`
	Cost      float64  `json:"cost"`
	Carbon    float64  `json:"carbon"`
}

// Result is the optimized schedule produced at the end of a run.
// Created once from the selected candidate; read-only afterward.
type Result struct {
	Schedule            []TaskResult       `json:"schedule"`
	TotalCost           float64            `json:"total_cost"`
	TotalDuration       int                `json:"total_duration"`
	CarbonFootprint     float64            `json:"carbon_footprint"`
	ResourceUtilization map[string]float64 `json:"resource_utilization"`
	Mode                string             `json:"mode"`
}
