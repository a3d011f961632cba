package evolve

import "github.com/pdroz/sitewise/internal/mode"

// Archive is the monotone Pareto set: every candidate observed so far
// that no other observed candidate dominates. Members are stored as
// clones, so later in-place mutation of population members cannot
// corrupt it.
type Archive struct {
	weights mode.Weights
	members []*Candidate
}

// NewArchive creates an empty archive comparing with the given weights.
func NewArchive(w mode.Weights) *Archive {
	return &Archive{weights: w}
}

// Insert offers an evaluated candidate to the archive. A dominated or
// duplicate candidate is discarded; otherwise it is admitted and every
// member it dominates is pruned.
func (a *Archive) Insert(c *Candidate) {
	for _, m := range a.members {
		if m.Fit.Dominates(c.Fit, a.weights) || m.Fit == c.Fit {
			return
		}
	}

	kept := a.members[:0]
	for _, m := range a.members {
		if !c.Fit.Dominates(m.Fit, a.weights) {
			kept = append(kept, m)
		}
	}
	a.members = append(kept, c.Clone())
}

// Members returns the current non-dominated set. The slice is shared;
// callers must not modify the candidates.
func (a *Archive) Members() []*Candidate {
	return a.members
}

// Len returns the archive size.
func (a *Archive) Len() int {
	return len(a.members)
}
