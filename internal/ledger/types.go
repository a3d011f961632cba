package ledger

// Assignment is a concrete placement of one task: its start day, its
// (mode-adjusted) duration, and the resources it occupies while active.
type Assignment struct {
	Start     int
	Duration  int
	Resources map[string]int
}

// Schedule maps task id to its assignment.
type Schedule map[string]Assignment

// Usage is an accumulated quantity with its monetary and carbon cost.
type Usage struct {
	Quantity int
	Cost     float64
	Carbon   float64
}

// DayEntry holds everything charged to a single day, broken down two
// ways from the same accumulation pass: by resource type and by task.
// Totals derived from either breakdown agree exactly.
type DayEntry struct {
	Resources map[string]*Usage
	Tasks     map[string]*Usage
}

// Ledger is the day-indexed usage record. Every downstream cost and
// carbon figure is a sum over ledger entries; nothing recomputes rates
// independently.
type Ledger struct {
	Days map[int]*DayEntry
}
