package evolve

import (
	"math"

	"github.com/pdroz/sitewise/internal/ledger"
	"github.com/pdroz/sitewise/internal/mode"
	"github.com/pdroz/sitewise/internal/task"
)

// Evaluator scores candidate schedules. Evaluate is a pure function of
// the candidate and the immutable task list, mode profile, and rate
// table, so evaluations may run concurrently without synchronization.
type Evaluator struct {
	tasks    []task.Task
	profile  mode.Profile
	rates    ledger.RateTable
	adjusted []int

	hasCeiling  bool
	costCeiling float64
}

// NewEvaluator precomputes mode-adjusted durations for the task list.
// maxCost, when non-nil, enables the soft budget penalty.
func NewEvaluator(tasks []task.Task, profile mode.Profile, rates ledger.RateTable, maxCost *float64) *Evaluator {
	e := &Evaluator{
		tasks:    tasks,
		profile:  profile,
		rates:    rates,
		adjusted: make([]int, len(tasks)),
	}
	for i, t := range tasks {
		e.adjusted[i] = AdjustedDuration(t.Duration, profile)
	}
	if maxCost != nil {
		e.hasCeiling = true
		e.costCeiling = *maxCost
	}
	return e
}

// AdjustedDuration applies the mode's duration multiplier, floored but
// never below one day.
func AdjustedDuration(duration int, profile mode.Profile) int {
	d := int(math.Floor(float64(duration) * profile.DurationMultiplier))
	if d < 1 {
		d = 1
	}
	return d
}

// AdjustedDurations returns the precomputed per-task durations,
// index-aligned with the task list.
func (e *Evaluator) AdjustedDurations() []int {
	return e.adjusted
}

// BuildSchedule maps a start-day vector onto the task list as a
// concrete schedule with adjusted durations.
func (e *Evaluator) BuildSchedule(starts []int) ledger.Schedule {
	s := make(ledger.Schedule, len(e.tasks))
	for i, t := range e.tasks {
		s[t.ID] = ledger.Assignment{
			Start:     starts[i],
			Duration:  e.adjusted[i],
			Resources: t.Resources,
		}
	}
	return s
}

// Evaluate computes the fitness triple for a candidate. Cost and carbon
// are ledger sums, never recomputed independently. When a cost ceiling
// is set and exceeded, makespan and cost are multiplied by 1.5 — a soft
// penalty that disfavors the candidate under dominance without making
// it invalid. Performance mode is exempt: it is allowed to overrun the
// budget.
func (e *Evaluator) Evaluate(c *Candidate) Fitness {
	makespan := 0.0
	for i := range e.tasks {
		if end := float64(c.Starts[i] + e.adjusted[i]); end > makespan {
			makespan = end
		}
	}

	l := ledger.Accumulate(e.BuildSchedule(c.Starts), e.rates)
	cost := l.TotalCost()
	carbon := l.TotalCarbon()

	if e.hasCeiling && cost > e.costCeiling && e.profile.Name != mode.Performance {
		makespan *= 1.5
		cost *= 1.5
	}

	return Fitness{Makespan: makespan, Cost: cost, Carbon: carbon}
}
