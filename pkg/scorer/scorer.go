// Package scorer reduces a validator Diagnostics record to the scalar
// cost of spec.md §4.6. Lower is better.
package scorer

import "github.com/paiban/rotaengine/pkg/validator"

// Score implements spec.md §4.6's exact weighted sum:
//
//	score = 10*vacant + 5*duplicates + 3*night_then_work + 1*evening_to_day
//	      + 2*weekly_misses + 2*horizon_misses + 100*rolling_48h_violations
//	      + 10*sum(night_stddev) + 3*sum(evening_stddev)
//
// Where a term has a counterpart in the C4 soft objective
// (pkg/engine/constraint.Breakdown.Objective) the weight is the same:
// vacant 10, evening_to_day 1, rolling-48h 100, night 10, evening 3. The
// two are not term-identical: this one uses per-cohort stddev where C4
// uses spread, and the duplicates, night_then_work and weekly/horizon
// miss terms have no C4 counterpart.
func Score(d validator.Diagnostics) float64 {
	nightStddev := 0.0
	for _, v := range d.PerCohortNightStddev {
		nightStddev += v
	}
	eveningStddev := 0.0
	for _, v := range d.PerCohortEveningStddev {
		eveningStddev += v
	}

	return 10*float64(d.VacantSlots) +
		5*float64(d.DuplicatesPerDay) +
		3*float64(d.NightThenWork) +
		1*float64(d.EveningToDay) +
		2*float64(d.WeeklyMisses) +
		2*float64(d.HorizonMisses) +
		100*float64(d.Rolling48hViolations) +
		10*nightStddev +
		3*eveningStddev
}
