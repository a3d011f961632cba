package evolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdroz/sitewise/internal/ledger"
	"github.com/pdroz/sitewise/internal/mode"
	"github.com/pdroz/sitewise/internal/task"
)

func profileFor(t *testing.T, name mode.Name) mode.Profile {
	t.Helper()
	p, err := mode.Get(name)
	require.NoError(t, err)
	return p
}

func scenarioTasks() []task.Task {
	return []task.Task{
		{ID: "a", Duration: 2, Resources: map[string]int{"workers": 2}},
		{ID: "b", Duration: 3, Resources: map[string]int{"workers": 4}, Dependencies: []string{"a"}},
		{ID: "c", Duration: 1, Resources: map[string]int{"crane": 1}, Dependencies: []string{"a", "b"}},
	}
}

func TestAdjustedDuration(t *testing.T) {
	std := profileFor(t, mode.Standard)
	eco := profileFor(t, mode.Eco)
	perf := profileFor(t, mode.Performance)

	require.Equal(t, 5, AdjustedDuration(5, std))
	require.Equal(t, 6, AdjustedDuration(5, eco))  // floor(5*1.2)
	require.Equal(t, 4, AdjustedDuration(5, perf)) // floor(5*0.8)
	// Never below one day.
	require.Equal(t, 1, AdjustedDuration(1, perf))
}

func TestEvaluate_Makespan(t *testing.T) {
	std := profileFor(t, mode.Standard)
	eval := NewEvaluator(scenarioTasks(), std, ledger.DefaultTable(std), nil)

	// a:0-2, b:2-5, c:5-6 -> makespan 6.
	fit := eval.Evaluate(&Candidate{Starts: []int{0, 2, 5}})
	require.Equal(t, 6.0, fit.Makespan)

	// Unpenalized cost: a 2d*2w*100 + b 3d*4w*100 + c 1d*1crane*1000 = 2600.
	require.Equal(t, 2600.0, fit.Cost)
	// Carbon: 2*2*5 + 3*4*5 + 1*1*50 = 130.
	require.Equal(t, 130.0, fit.Carbon)
}

func TestEvaluate_PenaltyMonotonicity(t *testing.T) {
	std := profileFor(t, mode.Standard)
	tasks := scenarioTasks()
	cand := &Candidate{Starts: []int{0, 2, 5}}

	base := NewEvaluator(tasks, std, ledger.DefaultTable(std), nil).Evaluate(cand)

	// Ceiling above the unpenalized cost changes nothing.
	high := base.Cost + 1
	fitHigh := NewEvaluator(tasks, std, ledger.DefaultTable(std), &high).Evaluate(cand)
	require.Equal(t, base, fitHigh)

	// Ceiling below applies exactly 1.5x to makespan and cost; carbon
	// is untouched.
	low := base.Cost - 1
	fitLow := NewEvaluator(tasks, std, ledger.DefaultTable(std), &low).Evaluate(cand)
	require.Equal(t, base.Makespan*1.5, fitLow.Makespan)
	require.Equal(t, base.Cost*1.5, fitLow.Cost)
	require.Equal(t, base.Carbon, fitLow.Carbon)
}

func TestEvaluate_PerformanceExemptFromPenalty(t *testing.T) {
	perf := profileFor(t, mode.Performance)
	tasks := scenarioTasks()
	cand := &Candidate{Starts: []int{0, 2, 5}}

	base := NewEvaluator(tasks, perf, ledger.DefaultTable(perf), nil).Evaluate(cand)

	zero := 0.0
	fit := NewEvaluator(tasks, perf, ledger.DefaultTable(perf), &zero).Evaluate(cand)
	require.Equal(t, base, fit, "performance mode may exceed the budget without penalty")
}

func TestEvaluate_NeverNegative(t *testing.T) {
	std := profileFor(t, mode.Standard)
	eval := NewEvaluator(scenarioTasks(), std, ledger.DefaultTable(std), nil)

	fit := eval.Evaluate(&Candidate{Starts: []int{0, 0, 0}})
	require.GreaterOrEqual(t, fit.Makespan, 0.0)
	require.GreaterOrEqual(t, fit.Cost, 0.0)
	require.GreaterOrEqual(t, fit.Carbon, 0.0)
}
