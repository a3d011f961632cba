// Package load reads task lists from JSON and CSV files into the
// optimizer's task model. Structural problems surface as the task
// package's ValidationError so callers can treat file shape and task
// shape failures uniformly.
package load

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdroz/sitewise/internal/task"
)

// File loads a task list from a path, dispatching on extension.
func File(path string) ([]task.Task, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return JSON(data)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return CSV(f)
	default:
		return nil, fmt.Errorf("unsupported task file format %q (want .json or .csv)", ext)
	}
}

// JSON parses a task array. Durations may be numbers or numeric
// strings; dependencies may be an array or a comma-separated string —
// both shapes occur in exported project data.
func JSON(data []byte) ([]task.Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, &task.ValidationError{Reason: "malformed JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, &task.ValidationError{Reason: "expected a JSON array of tasks"}
	}

	var tasks []task.Task
	var parseErr error
	root.ForEach(func(_, item gjson.Result) bool {
		t, err := jsonTask(item)
		if err != nil {
			parseErr = err
			return false
		}
		tasks = append(tasks, t)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return tasks, nil
}

func jsonTask(item gjson.Result) (task.Task, error) {
	id := item.Get("id").String()
	if id == "" {
		return task.Task{}, &task.ValidationError{Reason: "task missing id"}
	}

	dur := item.Get("duration")
	if !dur.Exists() {
		return task.Task{}, &task.ValidationError{TaskID: id, Reason: "missing duration"}
	}
	duration, err := intField(dur)
	if err != nil {
		return task.Task{}, &task.ValidationError{TaskID: id, Reason: "duration: " + err.Error()}
	}

	t := task.Task{ID: id, Duration: duration}

	if res := item.Get("resources"); res.Exists() {
		if !res.IsObject() {
			return task.Task{}, &task.ValidationError{TaskID: id, Reason: "resources must be a mapping"}
		}
		t.Resources = make(map[string]int)
		var resErr error
		res.ForEach(func(key, value gjson.Result) bool {
			qty, err := intField(value)
			if err != nil {
				resErr = &task.ValidationError{TaskID: id, Reason: "resource " + key.String() + ": " + err.Error()}
				return false
			}
			t.Resources[key.String()] = qty
			return true
		})
		if resErr != nil {
			return task.Task{}, resErr
		}
	}

	if deps := item.Get("dependencies"); deps.Exists() {
		if deps.IsArray() {
			deps.ForEach(func(_, d gjson.Result) bool {
				if s := strings.TrimSpace(d.String()); s != "" {
					t.Dependencies = append(t.Dependencies, s)
				}
				return true
			})
		} else {
			t.Dependencies = splitList(deps.String())
		}
	}

	return t, nil
}

// intField accepts a JSON number or a numeric string.
func intField(r gjson.Result) (int, error) {
	switch r.Type {
	case gjson.Number:
		return int(r.Int()), nil
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.String()))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", r.String())
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %s", r.Raw)
	}
}

// CSV parses tasks from columns id, duration, resources, dependencies.
// Resources are "name:qty" pairs separated by semicolons; dependencies
// are comma-separated ids. Column order follows the header row.
func CSV(r io.Reader) ([]task.Task, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &task.ValidationError{Reason: "empty CSV"}
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "duration"} {
		if _, ok := col[required]; !ok {
			return nil, &task.ValidationError{Reason: "CSV missing required column " + required}
		}
	}

	var tasks []task.Task
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}

		t, err := csvTask(record, col)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func csvTask(record []string, col map[string]int) (task.Task, error) {
	cell := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id := cell("id")
	if id == "" {
		return task.Task{}, &task.ValidationError{Reason: "task missing id"}
	}

	duration, err := strconv.Atoi(cell("duration"))
	if err != nil {
		return task.Task{}, &task.ValidationError{TaskID: id, Reason: fmt.Sprintf("duration not an integer: %q", cell("duration"))}
	}

	t := task.Task{ID: id, Duration: duration}

	if raw := cell("resources"); raw != "" {
		t.Resources = make(map[string]int)
		for _, pair := range strings.Split(raw, ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, qtyStr, ok := strings.Cut(pair, ":")
			if !ok {
				return task.Task{}, &task.ValidationError{TaskID: id, Reason: fmt.Sprintf("resource entry %q not in name:qty form", pair)}
			}
			qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
			if err != nil {
				return task.Task{}, &task.ValidationError{TaskID: id, Reason: fmt.Sprintf("resource %s quantity not an integer: %q", name, qtyStr)}
			}
			t.Resources[strings.TrimSpace(name)] = qty
		}
	}

	t.Dependencies = splitList(cell("dependencies"))
	return t, nil
}

// splitList splits a comma-separated id list, dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
