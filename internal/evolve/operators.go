package evolve

import (
	"math/rand"

	"github.com/pdroz/sitewise/internal/graph"
)

// Mutate resamples each gene independently with the given probability.
// A resampled start is drawn uniformly from [lower, lower+2*duration],
// where lower is the latest finish among the task's dependencies using
// their current start values in the same candidate. Because dependency
// genes may themselves be mutated in the same pass, the bound is a bias
// toward feasibility, not a guarantee; selection pressure is the only
// corrective for ordering violations.
func Mutate(c *Candidate, g *graph.Graph, rawDurations, adjDurations []int, rate float64, rng *rand.Rand) {
	for i := range c.Starts {
		if rng.Float64() >= rate {
			continue
		}

		lower := 0
		for _, dep := range g.Deps[i] {
			if finish := c.Starts[dep] + adjDurations[dep]; finish > lower {
				lower = finish
			}
		}

		c.Starts[i] = lower + rng.Intn(2*rawDurations[i]+1)
	}
}

// Repair shifts start days forward in topological order until every
// task begins no earlier than its dependencies finish. It is applied
// exactly once, to the selected candidate when the final schedule is
// built — never during the search, where the mutation bias and
// selection pressure are the only feasibility mechanisms. Genes already
// at or past their dependency bound keep their value.
func Repair(c *Candidate, g *graph.Graph, adjDurations []int) {
	for _, i := range g.TopoOrder {
		for _, dep := range g.Deps[i] {
			if finish := c.Starts[dep] + adjDurations[dep]; finish > c.Starts[i] {
				c.Starts[i] = finish
			}
		}
	}
}

// TwoPointCrossover exchanges the segment between two uniformly drawn
// cut points of the parents, in place. No repair step follows; the
// children may be locally infeasible with respect to dependency order,
// exactly as with mutation.
func TwoPointCrossover(a, b *Candidate, rng *rand.Rand) {
	n := len(a.Starts)
	if n < 2 {
		return
	}

	p1 := 1 + rng.Intn(n)
	p2 := 1 + rng.Intn(n-1)
	if p2 >= p1 {
		p2++
	} else {
		p1, p2 = p2, p1
	}

	for i := p1; i < p2; i++ {
		a.Starts[i], b.Starts[i] = b.Starts[i], a.Starts[i]
	}
}
