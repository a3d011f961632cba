// Package optimizer wires the task graph, resource ledger, and
// evolutionary engine into a single run: validate everything up front,
// search, then convert the selected candidate into the final schedule.
package optimizer

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdroz/sitewise/internal/evolve"
	"github.com/pdroz/sitewise/internal/graph"
	"github.com/pdroz/sitewise/internal/ledger"
	"github.com/pdroz/sitewise/internal/mode"
	"github.com/pdroz/sitewise/internal/task"
)

// Validate rejects malformed run configuration before the search
// starts. Setup failures are the only fatal conditions; nothing raised
// here can occur mid-run.
func (c Config) Validate() error {
	if c.PopulationSize <= 0 {
		return &ConfigurationError{Field: "population_size", Reason: fmt.Sprintf("must be positive, got %d", c.PopulationSize)}
	}
	if c.Generations <= 0 {
		return &ConfigurationError{Field: "generations", Reason: fmt.Sprintf("must be positive, got %d", c.Generations)}
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return &ConfigurationError{Field: "mutation_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", c.MutationRate)}
	}
	if _, err := mode.Parse(c.Mode); err != nil {
		return &ConfigurationError{Field: "mode", Reason: err.Error()}
	}
	return nil
}

// Run validates tasks and configuration, executes the evolutionary
// search, and builds the schedule result from the best-ranked
// candidate. The context bounds wall-clock time: cancellation after
// setup stops the search at the next generation boundary and the
// best-so-far schedule is still returned.
func Run(ctx context.Context, tasks []task.Task, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := task.Validate(tasks); err != nil {
		return nil, err
	}

	g, err := graph.Build(tasks)
	if err != nil {
		return nil, err
	}

	profile, err := mode.Parse(cfg.Mode)
	if err != nil {
		// Unreachable after Validate; kept for direct callers.
		return nil, &ConfigurationError{Field: "mode", Reason: err.Error()}
	}

	rates := ledger.DefaultTable(profile)
	if len(cfg.RateOverrides) > 0 {
		rates.Overrides = cfg.RateOverrides
	}

	engine := evolve.NewEngine(tasks, g, profile, rates, evolve.Params{
		PopulationSize: cfg.PopulationSize,
		Generations:    cfg.Generations,
		MutationRate:   cfg.MutationRate,
		MaxCost:        cfg.MaxCost,
		Seed:           cfg.Seed,
		Workers:        cfg.Workers,
		Progress:       cfg.Progress,
	})

	outcome := engine.Run(ctx)
	return buildResult(tasks, g, profile, rates, engine.Evaluator(), outcome.Best), nil
}

// buildResult converts the selected candidate into the read-only
// schedule result. The candidate is first repaired into dependency
// order — the search only biases toward feasibility, so the winner may
// carry local order violations that a delivered schedule cannot. All
// cost and carbon figures are ledger sums over the repaired schedule.
func buildResult(tasks []task.Task, g *graph.Graph, profile mode.Profile, rates ledger.RateTable, eval *evolve.Evaluator, best *evolve.Candidate) *Result {
	repaired := best.Clone()
	evolve.Repair(repaired, g, eval.AdjustedDurations())

	fit := eval.Evaluate(repaired)
	l := ledger.Accumulate(eval.BuildSchedule(repaired.Starts), rates)

	adjusted := eval.AdjustedDurations()
	timeline := 0
	for i := range tasks {
		if end := repaired.Starts[i] + adjusted[i]; end > timeline {
			timeline = end
		}
	}

	res := &Result{
		// Penalized figures when the budget is exceeded, per the soft
		// penalty rule; per-task rows below stay at ledger truth.
		TotalCost:           fit.Cost,
		TotalDuration:       int(fit.Makespan),
		CarbonFootprint:     fit.Carbon,
		ResourceUtilization: l.Utilization(timeline),
		Mode:                string(profile.Name),
	}

	for i, t := range tasks {
		res.Schedule = append(res.Schedule, TaskResult{
			TaskID:    t.ID,
			Start:     repaired.Starts[i],
			End:       repaired.Starts[i] + adjusted[i],
			Duration:  adjusted[i],
			Resources: formatResources(t.Resources),
			Cost:      l.TaskCost(t.ID),
			Carbon:    l.TaskCarbon(t.ID),
		})
	}
	sort.SliceStable(res.Schedule, func(a, b int) bool {
		if res.Schedule[a].Start != res.Schedule[b].Start {
			return res.Schedule[a].Start < res.Schedule[b].Start
		}
		return res.Schedule[a].TaskID < res.Schedule[b].TaskID
	})

	return res
}

// formatResources renders a requirement map as sorted "name:qty"
// entries.
func formatResources(resources map[string]int) []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%s:%d", name, resources[name]))
	}
	return out
}
