package task

import (
	"fmt"
	"sort"
)

// Validate checks the structural invariants of a task list: non-empty,
// unique ids, positive integer durations, non-negative resource
// quantities. Dependency resolution is the graph package's concern.
func Validate(tasks []Task) error {
	if len(tasks) == 0 {
		return &ValidationError{Reason: "no tasks provided"}
	}

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			return &ValidationError{Reason: "task with empty id"}
		}
		if seen[t.ID] {
			return &ValidationError{TaskID: t.ID, Reason: "duplicate id"}
		}
		seen[t.ID] = true

		if t.Duration < 1 {
			return &ValidationError{TaskID: t.ID, Reason: fmt.Sprintf("duration must be >= 1, got %d", t.Duration)}
		}
		for name, qty := range t.Resources {
			if name == "" {
				return &ValidationError{TaskID: t.ID, Reason: "resource with empty name"}
			}
			if qty < 0 {
				return &ValidationError{TaskID: t.ID, Reason: fmt.Sprintf("resource %s has negative quantity %d", name, qty)}
			}
		}
	}
	return nil
}

// TotalDuration returns the sum of all raw task durations. It bounds the
// initial start-day sampling range for the evolutionary search.
func TotalDuration(tasks []Task) int {
	sum := 0
	for _, t := range tasks {
		sum += t.Duration
	}
	return sum
}

// ResourceTypes returns the sorted set of resource type names used by
// any task.
func ResourceTypes(tasks []Task) []string {
	set := make(map[string]bool)
	for _, t := range tasks {
		for name := range t.Resources {
			set[name] = true
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IndexByID returns a map from task id to its position in the list. The
// list order is the canonical gene ordering for candidate schedules.
func IndexByID(tasks []Task) map[string]int {
	idx := make(map[string]int, len(tasks))
	for i, t := range tasks {
		idx[t.ID] = i
	}
	return idx
}
