package evolve

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pdroz/sitewise/internal/mode"
)

// ranking holds the dominance rank and crowding distance of every
// member of a population, computed once per selection step.
type ranking struct {
	fronts   [][]int   // fronts[0] is the non-dominated set
	rank     []int     // rank[i] = index of the front containing i
	distance []float64 // crowding distance within i's front
}

// rankPopulation performs a fast non-dominated sort over the weighted
// objectives and computes crowding distances within each front.
func rankPopulation(pop []*Candidate, w mode.Weights) *ranking {
	n := len(pop)
	r := &ranking{
		rank:     make([]int, n),
		distance: make([]float64, n),
	}

	dominated := make([][]int, n) // i -> indices i dominates
	domCount := make([]int, n)    // how many candidates dominate i

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case pop[i].Fit.Dominates(pop[j].Fit, w):
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			case pop[j].Fit.Dominates(pop[i].Fit, w):
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	var front []int
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			front = append(front, i)
			r.rank[i] = 0
		}
	}

	for len(front) > 0 {
		r.fronts = append(r.fronts, front)
		var next []int
		for _, i := range front {
			for _, j := range dominated[i] {
				domCount[j]--
				if domCount[j] == 0 {
					r.rank[j] = len(r.fronts)
					next = append(next, j)
				}
			}
		}
		front = next
	}

	for _, f := range r.fronts {
		crowdingDistances(pop, f, w, r.distance)
	}

	return r
}

// crowdingDistances writes the crowding distance of each member of one
// front into dist. Boundary candidates in any objective get +Inf so
// they always survive truncation, preserving the spread of the front.
func crowdingDistances(pop []*Candidate, front []int, w mode.Weights, dist []float64) {
	for _, i := range front {
		dist[i] = 0
	}
	if len(front) <= 2 {
		for _, i := range front {
			dist[i] = math.Inf(1)
		}
		return
	}

	sorted := make([]int, len(front))
	for obj := 0; obj < 3; obj++ {
		copy(sorted, front)
		sort.SliceStable(sorted, func(a, b int) bool {
			return pop[sorted[a]].Fit.objectives(w)[obj] < pop[sorted[b]].Fit.objectives(w)[obj]
		})

		lo := pop[sorted[0]].Fit.objectives(w)[obj]
		hi := pop[sorted[len(sorted)-1]].Fit.objectives(w)[obj]
		dist[sorted[0]] = math.Inf(1)
		dist[sorted[len(sorted)-1]] = math.Inf(1)
		if hi == lo {
			continue
		}

		for k := 1; k < len(sorted)-1; k++ {
			prev := pop[sorted[k-1]].Fit.objectives(w)[obj]
			next := pop[sorted[k+1]].Fit.objectives(w)[obj]
			dist[sorted[k]] += (next - prev) / (hi - lo)
		}
	}
}

// Reduce truncates a merged parent+offspring population to n members:
// whole fronts are taken in rank order, and the first front that does
// not fit is cut by descending crowding distance.
func Reduce(pop []*Candidate, n int, w mode.Weights) []*Candidate {
	if len(pop) <= n {
		return pop
	}

	r := rankPopulation(pop, w)
	out := make([]*Candidate, 0, n)

	for _, front := range r.fronts {
		if len(out)+len(front) <= n {
			for _, i := range front {
				out = append(out, pop[i])
			}
			continue
		}

		// Partial front: prefer the most spread-out members. Ties fall
		// back to index order for determinism.
		rest := make([]int, len(front))
		copy(rest, front)
		sort.SliceStable(rest, func(a, b int) bool {
			return r.distance[rest[a]] > r.distance[rest[b]]
		})
		for _, i := range rest[:n-len(out)] {
			out = append(out, pop[i])
		}
		break
	}

	return out
}

// matingPool selects n parents by binary tournament: lower rank wins,
// ties go to the larger crowding distance.
func matingPool(pop []*Candidate, r *ranking, n int, rng *rand.Rand) []*Candidate {
	pool := make([]*Candidate, n)
	for k := 0; k < n; k++ {
		i := rng.Intn(len(pop))
		j := rng.Intn(len(pop))
		pool[k] = pop[tournament(r, i, j)]
	}
	return pool
}

func tournament(r *ranking, i, j int) int {
	if r.rank[i] != r.rank[j] {
		if r.rank[i] < r.rank[j] {
			return i
		}
		return j
	}
	if r.distance[j] > r.distance[i] {
		return j
	}
	return i
}
