// Package reporter renders an optimized schedule for humans and
// machines. It consumes the optimizer's result; it never derives new
// figures of its own.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdroz/sitewise/internal/evolve"
	"github.com/pdroz/sitewise/internal/optimizer"
	"github.com/pdroz/sitewise/internal/ui"
)

// Reporter formats a single schedule result.
type Reporter struct {
	Result *optimizer.Result
}

// New creates a Reporter for a result.
func New(res *optimizer.Result) *Reporter {
	return &Reporter{Result: res}
}

// Print writes the full terminal report: header, task table, totals,
// and the per-resource utilization chart.
func (r *Reporter) Print(w io.Writer) {
	res := r.Result

	fmt.Fprintf(w, "\n%s %s\n", ui.BoldCyan("Optimized Construction Schedule"), ui.Dim("("+res.Mode+" mode)"))
	fmt.Fprintf(w, "%s\n\n", ui.Cyan(strings.Repeat("═", 48)))

	r.printTable(w)

	fmt.Fprintf(w, "\n%s\n", ui.Cyan(strings.Repeat("─", 48)))
	fmt.Fprintf(w, "Total duration:    %s\n", ui.Bold(fmt.Sprintf("%d days", res.TotalDuration)))
	fmt.Fprintf(w, "Total cost:        %s\n", ui.Bold(fmt.Sprintf("$%.2f", res.TotalCost)))
	fmt.Fprintf(w, "Carbon footprint:  %s\n", ui.Bold(fmt.Sprintf("%.2f kg CO2", res.CarbonFootprint)))
	fmt.Fprintf(w, "Mode:              %s\n", ui.ModeBadge(res.Mode))

	if len(res.ResourceUtilization) > 0 {
		fmt.Fprintf(w, "\n%s\n", ui.BoldWhite("Resource utilization"))
		r.printUtilization(w)
	}
	fmt.Fprintln(w)
}

// printTable writes the aligned task table sorted as delivered
// (by start day, then id).
func (r *Reporter) printTable(w io.Writer) {
	headers := []string{"Task", "Start", "End", "Days", "Resources", "Cost", "Carbon"}
	rows := make([][]string, 0, len(r.Result.Schedule))
	for _, t := range r.Result.Schedule {
		rows = append(rows, []string{
			t.TaskID,
			fmt.Sprintf("%d", t.Start),
			fmt.Sprintf("%d", t.End),
			fmt.Sprintf("%d", t.Duration),
			strings.Join(t.Resources, ", "),
			fmt.Sprintf("$%.0f", t.Cost),
			fmt.Sprintf("%.0f", t.Carbon),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var line []string
	for i, h := range headers {
		line = append(line, pad(h, widths[i]))
	}
	fmt.Fprintf(w, "  %s\n", ui.BoldWhite(strings.Join(line, " | ")))

	var sep []string
	for _, width := range widths {
		sep = append(sep, strings.Repeat("-", width))
	}
	fmt.Fprintf(w, "  %s\n", ui.Dim(strings.Join(sep, "-+-")))

	for _, row := range rows {
		line = line[:0]
		for i, cell := range row {
			line = append(line, pad(cell, widths[i]))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(line, " | "))
	}
}

// printUtilization draws one bar per resource type, busiest first.
func (r *Reporter) printUtilization(w io.Writer) {
	names := make([]string, 0, len(r.Result.ResourceUtilization))
	for name := range r.Result.ResourceUtilization {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		ua := r.Result.ResourceUtilization[names[a]]
		ub := r.Result.ResourceUtilization[names[b]]
		if ua != ub {
			return ua > ub
		}
		return names[a] < names[b]
	})

	const barWidth = 30
	for _, name := range names {
		pct := r.Result.ResourceUtilization[name]
		filled := int(pct / 100 * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		colored := ui.Green(bar)
		if pct >= 80 {
			colored = ui.Yellow(bar)
		}
		fmt.Fprintf(w, "  %-14s %s %5.1f%%\n", name, colored, pct)
	}
}

// JSON returns the machine-readable result.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Result, "", "  ")
}

// ProgressLine formats one generation's statistics for streaming to
// stderr during the run.
func ProgressLine(s evolve.GenerationStats) string {
	return fmt.Sprintf("  %s gen %-4d  best %s/%s/%s  mean %s  front %d",
		ui.Dim("⚙"),
		s.Generation+1,
		ui.Bold(fmt.Sprintf("%.0fd", s.BestMakespan)),
		ui.Bold(fmt.Sprintf("$%.0f", s.BestCost)),
		ui.Bold(fmt.Sprintf("%.0fkg", s.BestCarbon)),
		ui.Dim(fmt.Sprintf("%.0fd/$%.0f/%.0fkg", s.MeanMakespan, s.MeanCost, s.MeanCarbon)),
		s.ArchiveSize,
	)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
