package task

import (
	"errors"
	"testing"
)

func TestValidate_OK(t *testing.T) {
	tasks := []Task{
		{ID: "a", Duration: 2, Resources: map[string]int{"workers": 3}},
		{ID: "b", Duration: 1, Dependencies: []string{"a"}},
	}
	if err := Validate(tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		tasks []Task
	}{
		{"empty list", nil},
		{"empty id", []Task{{ID: "", Duration: 1}}},
		{"duplicate id", []Task{{ID: "a", Duration: 1}, {ID: "a", Duration: 2}}},
		{"zero duration", []Task{{ID: "a", Duration: 0}}},
		{"negative duration", []Task{{ID: "a", Duration: -3}}},
		{"negative resource", []Task{{ID: "a", Duration: 1, Resources: map[string]int{"workers": -1}}}},
		{"empty resource name", []Task{{ID: "a", Duration: 1, Resources: map[string]int{"": 1}}}},
	}

	for _, tc := range cases {
		err := Validate(tc.tasks)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %T", tc.name, err)
		}
	}
}

func TestTotalDuration(t *testing.T) {
	tasks := []Task{{ID: "a", Duration: 2}, {ID: "b", Duration: 3}, {ID: "c", Duration: 1}}
	if got := TotalDuration(tasks); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
}

func TestResourceTypes_SortedUnique(t *testing.T) {
	tasks := []Task{
		{ID: "a", Duration: 1, Resources: map[string]int{"workers": 1, "crane": 1}},
		{ID: "b", Duration: 1, Resources: map[string]int{"workers": 2}},
	}
	got := ResourceTypes(tasks)
	want := []string{"crane", "workers"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestIndexByID(t *testing.T) {
	tasks := []Task{{ID: "x", Duration: 1}, {ID: "y", Duration: 1}}
	idx := IndexByID(tasks)
	if idx["x"] != 0 || idx["y"] != 1 {
		t.Errorf("unexpected index map: %v", idx)
	}
}
