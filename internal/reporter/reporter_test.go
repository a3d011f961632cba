package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/pdroz/sitewise/internal/evolve"
	"github.com/pdroz/sitewise/internal/optimizer"
)

func sampleResult() *optimizer.Result {
	return &optimizer.Result{
		Schedule: []optimizer.TaskResult{
			{TaskID: "found", Start: 0, End: 5, Duration: 5, Resources: []string{"workers:6"}, Cost: 3000, Carbon: 150},
			{TaskID: "frame", Start: 5, End: 15, Duration: 10, Resources: []string{"crane:1", "workers:8"}, Cost: 18000, Carbon: 900},
		},
		TotalCost:           21000,
		TotalDuration:       15,
		CarbonFootprint:     1050,
		ResourceUtilization: map[string]float64{"workers": 100, "crane": 66.7},
		Mode:                "standard",
	}
}

func TestPrint_ContainsScheduleAndTotals(t *testing.T) {
	// Disable color so substring assertions see plain text.
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	New(sampleResult()).Print(&buf)
	out := buf.String()

	for _, want := range []string{
		"Optimized Construction Schedule",
		"found", "frame",
		"15 days",
		"$21000.00",
		"1050.00 kg CO2",
		"Resource utilization",
		"workers", "crane",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrint_TasksInScheduleOrder(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	New(sampleResult()).Print(&buf)
	out := buf.String()

	if strings.Index(out, "found") > strings.Index(out, "frame") {
		t.Error("tasks not printed in schedule order")
	}
}

func TestJSON_RoundTripsResultShape(t *testing.T) {
	data, err := New(sampleResult()).JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded optimizer.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.TotalDuration != 15 || decoded.Mode != "standard" {
		t.Errorf("unexpected decoded result: %+v", decoded)
	}
	if len(decoded.Schedule) != 2 {
		t.Errorf("expected 2 schedule rows, got %d", len(decoded.Schedule))
	}
}

func TestProgressLine(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	line := ProgressLine(evolve.GenerationStats{
		Generation:   4,
		BestMakespan: 12,
		BestCost:     8000,
		BestCarbon:   400,
		MeanMakespan: 15,
		MeanCost:     9500,
		MeanCarbon:   470,
		ArchiveSize:  6,
	})

	for _, want := range []string{"gen 5", "12d", "$8000", "400kg", "front 6"} {
		if !strings.Contains(line, want) {
			t.Errorf("progress line missing %q: %s", want, line)
		}
	}
}
