package evolve

import "github.com/pdroz/sitewise/internal/mode"

// Fitness is the minimization triple for one candidate schedule. All
// three objectives are non-negative; lower is better in each.
type Fitness struct {
	Makespan float64
	Cost     float64
	Carbon   float64
}

// objectives returns the mode-weighted objective vector used for
// dominance comparison and crowding.
func (f Fitness) objectives(w mode.Weights) [3]float64 {
	return [3]float64{
		f.Makespan * w.Makespan,
		f.Cost * w.Cost,
		f.Carbon * w.Carbon,
	}
}

// Dominates reports whether f is no worse than other in every weighted
// objective and strictly better in at least one.
func (f Fitness) Dominates(other Fitness, w mode.Weights) bool {
	a, b := f.objectives(w), other.objectives(w)
	better := false
	for k := 0; k < 3; k++ {
		if a[k] > b[k] {
			return false
		}
		if a[k] < b[k] {
			better = true
		}
	}
	return better
}

// WeightedSum scalarizes the weighted objectives. Used only to break
// ties among rank-1 candidates when a single schedule must be picked.
func (f Fitness) WeightedSum(w mode.Weights) float64 {
	a := f.objectives(w)
	return a[0] + a[1] + a[2]
}

// Candidate is one member of the population: a vector of start days
// index-aligned with the canonical task ordering. Candidates are
// mutated in place and must be cloned before any shared use.
type Candidate struct {
	Starts []int
	Fit    Fitness
}

// Clone returns a deep copy.
func (c *Candidate) Clone() *Candidate {
	starts := make([]int, len(c.Starts))
	copy(starts, c.Starts)
	return &Candidate{Starts: starts, Fit: c.Fit}
}

// GenerationStats summarizes a generation's surviving population for
// progress reporting.
type GenerationStats struct {
	Generation   int
	BestMakespan float64
	BestCost     float64
	BestCarbon   float64
	MeanMakespan float64
	MeanCost     float64
	MeanCarbon   float64
	ArchiveSize  int
}
