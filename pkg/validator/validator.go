// Package validator re-verifies a solved schedule (spec.md §4.5) and
// produces a Diagnostics record: duplicates (I1), coverage (I2),
// rest-after-night (I3), rolling 48h (I5), weekly/horizon misses (I7) and
// contractor pairs (I8). The EDO fixed-day rule (I4) and the per-person
// night cap (I6) are not checked and have no Diagnostics field. It never
// mutates the schedule it checks.
package validator

import (
	"math"
	"sort"

	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/model"
)

// Diagnostics is the full validation record of spec.md §4.5.
type Diagnostics struct {
	VacantSlots            uint32
	DuplicatesPerDay        uint32
	NightThenWork           uint32
	EveningToDay            uint32
	WeeklyMisses            uint32
	HorizonMisses           uint32
	Rolling48hViolations    uint32
	ContractorPairs         uint32
	PerCohortNightStddev    map[string]float64
	PerCohortEveningStddev  map[string]float64
	Unfilled                []constraint.Unfilled
}

// Valid reports whether the schedule is *valid* (no duplicates, no
// rest-after-night breach) as opposed to merely *valid-with-penalties*.
func (d Diagnostics) Valid() bool {
	return d.DuplicatesPerDay == 0 && d.NightThenWork == 0
}

// Validate runs the checks listed in the package comment and computes the
// full Diagnostics record for schedule, using the same Context/Breakdown routines the
// solver used to build it — the rolling-48h check in particular must
// share Context.Timeline/RollingExcess with the solver's objective to
// guarantee P2.
func Validate(team *model.Team, horizon model.Horizon, opts constraint.Options, schedule *model.Schedule, staffing *model.StaffingPlan, edo *model.EdoPlan) Diagnostics {
	cctx := constraint.NewContext(team, horizon, opts, schedule)
	breakdown := cctx.Evaluate(staffing, edo)

	_, unfilled := cctx.CoverageDeficit(staffing)

	return Diagnostics{
		VacantSlots:            uint32(breakdown.VacantSlots),
		DuplicatesPerDay:       uint32(breakdown.Duplicates),
		NightThenWork:          uint32(breakdown.NightThenWork),
		EveningToDay:           uint32(breakdown.EveningToDay),
		WeeklyMisses:           uint32(breakdown.WeeklyMisses),
		HorizonMisses:          uint32(breakdown.HorizonMisses),
		Rolling48hViolations:   uint32(breakdown.RollingViolations),
		ContractorPairs:        uint32(breakdown.ContractorPairs),
		PerCohortNightStddev:   cohortStddev(cctx, cctx.NightCounts()),
		PerCohortEveningStddev: cohortStddev(cctx, cctx.EveningCounts()),
		Unfilled:               unfilled,
	}
}

// cohortStddev computes the population standard deviation of counts
// within each fairness cohort (spec.md §4.5's per_cohort_*_stddev maps).
func cohortStddev(cctx *constraint.Context, counts map[string]int) map[string]float64 {
	groups := make(map[string][]string)
	for _, p := range cctx.Team.People() {
		key := p.Cohort(cctx.Config.FairnessCohorts)
		groups[key] = append(groups[key], p.Name)
	}

	out := make(map[string]float64, len(groups))
	for key, members := range groups {
		out[key] = stddev(counts, members)
	}
	return out
}

func stddev(counts map[string]int, members []string) float64 {
	if len(members) == 0 {
		return 0
	}
	sort.Strings(members)
	mean := 0.0
	for _, m := range members {
		mean += float64(counts[m])
	}
	mean /= float64(len(members))

	variance := 0.0
	for _, m := range members {
		d := float64(counts[m]) - mean
		variance += d * d
	}
	variance /= float64(len(members))

	return math.Sqrt(variance)
}
