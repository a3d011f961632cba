// Package graph validates the task dependency relation and computes the
// advisory earliest-start schedule used to bias mutation.
package graph

import (
	"sort"

	"github.com/pdroz/sitewise/internal/task"
)

// Build validates the dependency relation over a task list and returns
// the index-based dependency graph. It fails with
// *UnknownDependencyError if a dependency id is absent from the task
// set, and with *CircularDependencyError if the relation has a cycle.
func Build(tasks []task.Task) (*Graph, error) {
	index := task.IndexByID(tasks)

	g := &Graph{
		Deps:       make([][]int, len(tasks)),
		Dependents: make([][]int, len(tasks)),
	}

	for i, t := range tasks {
		for _, depID := range t.Dependencies {
			j, ok := index[depID]
			if !ok {
				return nil, &UnknownDependencyError{TaskID: t.ID, DependencyID: depID}
			}
			g.Deps[i] = append(g.Deps[i], j)
			g.Dependents[j] = append(g.Dependents[j], i)
		}
	}

	// Sort adjacency for deterministic traversal order.
	for i := range g.Deps {
		sort.Ints(g.Deps[i])
		sort.Ints(g.Dependents[i])
	}

	if cycle := detectCycle(tasks, g); cycle != nil {
		return nil, &CircularDependencyError{Cycle: cycle}
	}

	g.TopoOrder = topoSort(g)
	return g, nil
}

// detectCycle returns the cycle path if one exists, or nil if the graph
// is acyclic. Uses DFS with coloring: white (unvisited), gray (in
// progress), black (done). The returned path is in forward order with
// the entry node repeated at the end.
func detectCycle(tasks []task.Task, g *Graph) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]int, len(tasks))
	parent := make([]int, len(tasks))
	for i := range parent {
		parent[i] = -1
	}

	var dfs func(node int) []int
	dfs = func(node int) []int {
		color[node] = gray
		for _, next := range g.Dependents[node] {
			if color[next] == gray {
				// Found a cycle — walk parents back to the entry node.
				cycle := []int{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				// Reverse to get forward order.
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for i := range tasks {
		if color[i] == white {
			if cycle := dfs(i); cycle != nil {
				ids := make([]string, 0, len(cycle)+1)
				for _, idx := range cycle {
					ids = append(ids, tasks[idx].ID)
				}
				ids = append(ids, tasks[cycle[0]].ID)
				return ids
			}
		}
	}
	return nil
}

// topoSort performs Kahn's algorithm. Build has already rejected
// cycles, so every task appears in the result exactly once.
func topoSort(g *Graph) []int {
	inDegree := make([]int, len(g.Deps))
	for i := range g.Deps {
		inDegree[i] = len(g.Deps[i])
	}

	var queue []int
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	sort.Ints(queue)

	var order []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var newReady []int
		for _, succ := range g.Dependents[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Ints(newReady)
		queue = append(queue, newReady...)
	}

	return order
}

// EarliestStarts computes, for each task, the maximum over its
// dependencies of (dependency earliest start + dependency duration), 0
// for tasks with no dependencies. Durations are index-aligned with the
// task list and already mode-adjusted by the caller. The values are
// advisory: mutation uses them as a bias, nothing enforces them.
func (g *Graph) EarliestStarts(durations []int) []int {
	es := make([]int, len(g.Deps))
	for _, i := range g.TopoOrder {
		for _, dep := range g.Deps[i] {
			if finish := es[dep] + durations[dep]; finish > es[i] {
				es[i] = finish
			}
		}
	}
	return es
}

// CriticalPathLength is the earliest possible completion day of the
// whole project given the dependency relation: the maximum over tasks
// of earliest start + duration. It lower-bounds any feasible makespan.
func (g *Graph) CriticalPathLength(durations []int) int {
	es := g.EarliestStarts(durations)
	longest := 0
	for i, s := range es {
		if end := s + durations[i]; end > longest {
			longest = end
		}
	}
	return longest
}
