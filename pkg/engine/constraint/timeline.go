package constraint

// Timeline builds a flat per-person hour sequence of length 7*Weeks, one
// entry per calendar day Mon..Sun, weekday entries holding the assigned
// shift's hours and weekend entries always 0. This is the single routine
// backing both the solver's rolling_48h_excess objective term and the
// validator's rolling_48h_violations check (spec.md §4.4, §9: "the same
// routine must back both ... to guarantee P2"). It replaces the legacy's
// per-week modulo indexing, which miscounted windows starting mid-week.
func (c *Context) Timeline(person string) []float64 {
	days := make([]float64, 7*c.Horizon.Weeks)
	for _, a := range c.byPerson[person] {
		if !a.Position.Day.IsWeekday() {
			continue
		}
		days[a.Position.DayIndex()] = a.Shift.Hours()
	}
	return days
}

// RollingExcess slides a 7-day window once across the flat timeline and
// returns the number of windows exceeding 48h and the total excess hours
// across them (spec.md §4.4 Rolling-48h semantics, Glossary "Rolling-48h
// window").
func RollingExcess(days []float64) (violations int, excess float64) {
	if len(days) < 7 {
		return 0, 0
	}
	window := 0.0
	for i := 0; i < 7; i++ {
		window += days[i]
	}
	check := func(sum float64) {
		if sum > 48 {
			violations++
			excess += sum - 48
		}
	}
	check(window)
	for i := 7; i < len(days); i++ {
		window += days[i] - days[i-7]
		check(window)
	}
	return violations, excess
}
