// Package staffing derives the per-week per-day slot plan from team
// capacity and the EDO plan, following the round-robin algorithm of
// spec.md §4.2. It never looks at the tentative assignments themselves —
// only at aggregate capacity — so it runs once per solve, before the
// driver launches the C4 attempts.
package staffing

import (
	"github.com/paiban/rotaengine/pkg/model"
)

// Derive computes a StaffingPlan for the given team, horizon and EDO plan.
// Mirrors the teacher's round-based greedy distribution (pkg/scheduler's
// greedy construction loop), generalized from per-employee shift picking
// to per-week slot-count accounting.
func Derive(team *model.Team, horizon model.Horizon, edo *model.EdoPlan) *model.StaffingPlan {
	plan := model.NewStaffingPlan(horizon.Weeks)

	totalWorkdays := 0
	for _, p := range team.People() {
		totalWorkdays += p.WorkdaysPerWeek
	}

	for w := 1; w <= horizon.Weeks; w++ {
		edoCount := 0
		if edo != nil {
			edoCount = len(edo.Recipients[w])
		}

		// Step 1: total person-days available this week.
		available := totalWorkdays - edoCount
		if available < 0 {
			available = 0
		}

		// Step 2: odd remainder reserved as a solo Admin day on Monday.
		if available%2 != 0 {
			plan.Set(w, model.Mon, model.Admin, 1)
			available--
		} else {
			plan.Set(w, model.Mon, model.Admin, 0)
		}

		// Step 3: one Night pair per weekday (5 pairs x 2 = 10 person-days).
		nightPersonDays := 0
		for _, d := range model.Weekdays {
			plan.Set(w, d, model.Night, 1)
			nightPersonDays += model.Night.Arity()
		}
		remainder := available - nightPersonDays
		if remainder < 0 {
			remainder = 0
		}

		// Step 4: distribute the remainder round-robin across
		// (Mon..Fri) x (Day, Evening) pairs, two person-days per pair.
		slots := remainderSlots(remainder)
		cells := dayEveningCells()
		for i, count := range slots {
			cell := cells[i%len(cells)]
			plan.Add(w, cell.day, cell.shift, count)
		}
	}

	return plan
}

// remainderSlots turns a remaining person-day count into a sequence of
// whole-pair increments (one pair = 2 person-days), dropping an odd
// leftover person-day (it cannot form a pair and is absorbed as slack,
// surfacing later as a vacant-slot or coverage soft violation).
func remainderSlots(personDays int) []int {
	pairs := personDays / model.Day.Arity()
	if pairs == 0 {
		return []int{0}
	}
	out := make([]int, pairs)
	for i := range out {
		out[i] = 1
	}
	return out
}

type dayEveningCell struct {
	day   model.Weekday
	shift model.ShiftKind
}

// dayEveningCells enumerates the Cartesian product (Mon..Fri) x (Day,
// Evening) in round-robin order.
func dayEveningCells() []dayEveningCell {
	cells := make([]dayEveningCell, 0, len(model.Weekdays)*2)
	for _, d := range model.Weekdays {
		cells = append(cells, dayEveningCell{d, model.Day})
		cells = append(cells, dayEveningCell{d, model.Evening})
	}
	return cells
}
