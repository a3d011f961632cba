package graph

import "strings"

// UnknownDependencyError reports a dependency id that is absent from
// the task set.
type UnknownDependencyError struct {
	TaskID       string
	DependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return "task " + e.TaskID + " depends on unknown task " + e.DependencyID
}

// CircularDependencyError reports a cycle in the dependency relation.
// Cycle holds the task ids along the cycle in forward order, with the
// first id repeated at the end.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return "dependency cycle detected: " + strings.Join(e.Cycle, " -> ")
}

// Graph is the validated dependency structure over a task list. All
// adjacency is by gene index, i.e. position in the canonical task
// ordering established by the input list.
type Graph struct {
	Deps       [][]int // task index -> indices of its dependencies
	Dependents [][]int // task index -> indices of tasks waiting on it
	TopoOrder  []int   // task indices in topological order, deterministic
}
