// Package ledger maintains the day-indexed resource usage record that
// grounds every cost and carbon figure the optimizer reports.
package ledger

import "sort"

// Accumulate builds the ledger for a concrete schedule. For every task
// active on a day (start <= d < start+duration) and every resource it
// requires, the day's entry is charged quantity, cost, and carbon at
// the table rate, recorded both per resource type and per task.
// Iteration is in sorted task and resource order so float accumulation
// is reproducible across runs.
func Accumulate(s Schedule, rates RateTable) *Ledger {
	l := &Ledger{Days: make(map[int]*DayEntry)}

	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		a := s[id]
		names := make([]string, 0, len(a.Resources))
		for name := range a.Resources {
			names = append(names, name)
		}
		sort.Strings(names)

		for day := a.Start; day < a.Start+a.Duration; day++ {
			entry := l.Days[day]
			if entry == nil {
				entry = &DayEntry{
					Resources: make(map[string]*Usage),
					Tasks:     make(map[string]*Usage),
				}
				l.Days[day] = entry
			}

			for _, name := range names {
				qty := a.Resources[name]
				if qty == 0 {
					continue
				}
				rate := rates.For(name)
				cost := float64(qty) * rate.Cost
				carbon := float64(qty) * rate.Carbon

				ru := entry.Resources[name]
				if ru == nil {
					ru = &Usage{}
					entry.Resources[name] = ru
				}
				ru.Quantity += qty
				ru.Cost += cost
				ru.Carbon += carbon

				tu := entry.Tasks[id]
				if tu == nil {
					tu = &Usage{}
					entry.Tasks[id] = tu
				}
				tu.Quantity += qty
				tu.Cost += cost
				tu.Carbon += carbon
			}
		}
	}

	return l
}

// TotalCost sums cost across all days and resource types. Iteration is
// over sorted days so float accumulation order is deterministic.
func (l *Ledger) TotalCost() float64 {
	total := 0.0
	for _, day := range l.sortedDays() {
		for _, name := range sortedKeys(l.Days[day].Resources) {
			total += l.Days[day].Resources[name].Cost
		}
	}
	return total
}

// TotalCarbon sums carbon across all days and resource types.
func (l *Ledger) TotalCarbon() float64 {
	total := 0.0
	for _, day := range l.sortedDays() {
		for _, name := range sortedKeys(l.Days[day].Resources) {
			total += l.Days[day].Resources[name].Carbon
		}
	}
	return total
}

// TaskCost sums the cost charged to one task across all its active
// days.
func (l *Ledger) TaskCost(id string) float64 {
	total := 0.0
	for _, day := range l.sortedDays() {
		if u := l.Days[day].Tasks[id]; u != nil {
			total += u.Cost
		}
	}
	return total
}

// TaskCarbon sums the carbon charged to one task across all its active
// days.
func (l *Ledger) TaskCarbon(id string) float64 {
	total := 0.0
	for _, day := range l.sortedDays() {
		if u := l.Days[day].Tasks[id]; u != nil {
			total += u.Carbon
		}
	}
	return total
}

// Utilization returns, per resource type, the percentage of the project
// timeline on which the type's quantity is nonzero. timeline is the
// number of days in the project; values are clamped to [0, 100].
func (l *Ledger) Utilization(timeline int) map[string]float64 {
	if timeline <= 0 {
		return map[string]float64{}
	}

	activeDays := make(map[string]int)
	for _, entry := range l.Days {
		for name, u := range entry.Resources {
			if u.Quantity > 0 {
				activeDays[name]++
			}
		}
	}

	out := make(map[string]float64, len(activeDays))
	for name, days := range activeDays {
		pct := float64(days) / float64(timeline) * 100
		if pct > 100 {
			pct = 100
		}
		out[name] = pct
	}
	return out
}

func (l *Ledger) sortedDays() []int {
	days := make([]int, 0, len(l.Days))
	for d := range l.Days {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

func sortedKeys(m map[string]*Usage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
