// Package evolve implements the population-based multi-objective search
// over candidate schedules: fitness evaluation, the dependency-aware
// genetic operators, NSGA-II-style selection, and the generational
// loop.
package evolve

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/pdroz/sitewise/internal/graph"
	"github.com/pdroz/sitewise/internal/ledger"
	"github.com/pdroz/sitewise/internal/mode"
	"github.com/pdroz/sitewise/internal/task"
)

// Params configures one evolutionary run. The optimizer package
// validates external configuration before constructing Params; the
// engine assumes the values are sane.
type Params struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	MaxCost        *float64
	Seed           *int64
	Workers        int // concurrent evaluations; defaults to NumCPU

	// Progress, when set, is called once per generation with stats of
	// the surviving population. Called from the loop goroutine.
	Progress func(GenerationStats)
}

// Outcome is the result of a run: the best-ranked candidate of the
// final population and the Pareto archive accumulated across all
// generations.
type Outcome struct {
	Best        *Candidate
	Archive     []*Candidate
	Generations int // generations actually completed
}

// Engine drives the generational loop. The loop itself is sequential —
// one generation's output is the next one's input — but candidate
// evaluation within a generation runs on a bounded worker pool, since
// each evaluation is pure.
type Engine struct {
	tasks   []task.Task
	g       *graph.Graph
	profile mode.Profile
	eval    *Evaluator
	params  Params

	rawDur []int
	rng    *rand.Rand
}

// NewEngine wires an engine for the given task list and mode. Variation
// draws from a single seeded stream so fixed-seed runs are reproducible
// byte for byte; evaluation needs no randomness.
func NewEngine(tasks []task.Task, g *graph.Graph, profile mode.Profile, rates ledger.RateTable, params Params) *Engine {
	if params.CrossoverRate == 0 {
		params.CrossoverRate = 0.7
	}
	if params.Workers <= 0 {
		params.Workers = runtime.NumCPU()
	}

	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}

	rawDur := make([]int, len(tasks))
	for i, t := range tasks {
		rawDur[i] = t.Duration
	}

	return &Engine{
		tasks:   tasks,
		g:       g,
		profile: profile,
		eval:    NewEvaluator(tasks, profile, rates, params.MaxCost),
		params:  params,
		rawDur:  rawDur,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Evaluator exposes the engine's evaluator for result building.
func (e *Engine) Evaluator() *Evaluator {
	return e.eval
}

// Run executes the configured number of generations and returns the
// outcome. The context is checked at generation boundaries only; on
// cancellation the best-so-far outcome is returned, never an error.
func (e *Engine) Run(ctx context.Context) *Outcome {
	w := e.profile.Weights
	n := e.params.PopulationSize
	adjDur := e.eval.AdjustedDurations()

	archive := NewArchive(w)

	// Initial population: genes uniform over [0, sum of durations].
	maxStart := task.TotalDuration(e.tasks)
	pop := make([]*Candidate, n)
	for i := range pop {
		starts := make([]int, len(e.tasks))
		for j := range starts {
			starts[j] = e.rng.Intn(maxStart + 1)
		}
		pop[i] = &Candidate{Starts: starts}
	}
	e.evaluateAll(pop)
	for _, c := range pop {
		archive.Insert(c)
	}

	completed := 0
	for gen := 0; gen < e.params.Generations; gen++ {
		if ctx.Err() != nil {
			break
		}

		r := rankPopulation(pop, w)
		pool := matingPool(pop, r, n, e.rng)

		offspring := make([]*Candidate, 0, n)
		for i := 0; i < n; i += 2 {
			a := pool[i].Clone()
			b := pool[(i+1)%n].Clone()
			if e.rng.Float64() < e.params.CrossoverRate {
				TwoPointCrossover(a, b, e.rng)
			}
			Mutate(a, e.g, e.rawDur, adjDur, e.params.MutationRate, e.rng)
			Mutate(b, e.g, e.rawDur, adjDur, e.params.MutationRate, e.rng)
			offspring = append(offspring, a)
			if len(offspring) < n {
				offspring = append(offspring, b)
			}
		}

		e.evaluateAll(offspring)
		for _, c := range offspring {
			archive.Insert(c)
		}

		pop = Reduce(append(pop, offspring...), n, w)
		completed = gen + 1

		if e.params.Progress != nil {
			e.params.Progress(e.stats(pop, gen, archive.Len()))
		}
	}

	return &Outcome{
		Best:        e.best(pop, w),
		Archive:     archive.Members(),
		Generations: completed,
	}
}

// evaluateAll scores a batch of fresh candidates on the worker pool and
// joins before returning. Results land at fixed indices, so the
// parallelism cannot perturb determinism.
func (e *Engine) evaluateAll(pop []*Candidate) {
	sem := make(chan struct{}, e.params.Workers)
	var wg sync.WaitGroup
	for _, c := range pop {
		wg.Add(1)
		go func(c *Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			c.Fit = e.eval.Evaluate(c)
		}(c)
	}
	wg.Wait()
}

// best picks the final schedule: a rank-1 candidate, ties broken by the
// smallest weighted objective sum, then by position for determinism.
func (e *Engine) best(pop []*Candidate, w mode.Weights) *Candidate {
	r := rankPopulation(pop, w)
	front := r.fronts[0]

	bestIdx := front[0]
	bestSum := pop[bestIdx].Fit.WeightedSum(w)
	for _, i := range front[1:] {
		if sum := pop[i].Fit.WeightedSum(w); sum < bestSum {
			bestIdx, bestSum = i, sum
		}
	}
	return pop[bestIdx]
}

func (e *Engine) stats(pop []*Candidate, gen, archiveLen int) GenerationStats {
	s := GenerationStats{
		Generation:   gen,
		BestMakespan: pop[0].Fit.Makespan,
		BestCost:     pop[0].Fit.Cost,
		BestCarbon:   pop[0].Fit.Carbon,
		ArchiveSize:  archiveLen,
	}
	for _, c := range pop {
		if c.Fit.Makespan < s.BestMakespan {
			s.BestMakespan = c.Fit.Makespan
		}
		if c.Fit.Cost < s.BestCost {
			s.BestCost = c.Fit.Cost
		}
		if c.Fit.Carbon < s.BestCarbon {
			s.BestCarbon = c.Fit.Carbon
		}
		s.MeanMakespan += c.Fit.Makespan
		s.MeanCost += c.Fit.Cost
		s.MeanCarbon += c.Fit.Carbon
	}
	n := float64(len(pop))
	s.MeanMakespan /= n
	s.MeanCost /= n
	s.MeanCarbon /= n
	return s
}
