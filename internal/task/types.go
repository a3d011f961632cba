package task

// Task is a single unit of construction work. Tasks are immutable once
// loaded; the optimizer only ever varies their start days.
type Task struct {
	ID           string         `json:"id"`
	Duration     int            `json:"duration"` // working days
	Resources    map[string]int `json:"resources,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty"`
}

// ValidationError reports a task that fails structural validation.
type ValidationError struct {
	TaskID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.TaskID == "" {
		return "invalid task list: " + e.Reason
	}
	return "invalid task " + e.TaskID + ": " + e.Reason
}
