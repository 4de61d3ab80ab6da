// Package edo decides which eligible people receive an Earned Day Off
// each week, per spec.md §4.3. It only designates recipients; the actual
// day (fixed or solver-chosen) and EdoConflict marking happen downstream
// in pkg/engine/constraint and pkg/engine/solver.
package edo

import (
	"sort"

	"github.com/paiban/rotaengine/pkg/model"
)

// Plan partitions EDO-eligible people into two halves per workdays-cohort
// and alternates which half receives EDO by week parity, so each eligible
// person receives an EDO roughly every other week (P6: ⌈W/2⌉ or ⌊W/2⌋ ±1).
//
// When enabled is false the whole machinery is skipped and an empty plan
// is returned — callers (pkg/engine) must then route Edo to Off for
// coverage/penalty purposes, per spec.md §6.1's edo_enabled option.
func Plan(team *model.Team, horizon model.Horizon, enabled bool) *model.EdoPlan {
	plan := model.NewEdoPlan(horizon.Weeks)
	if !enabled {
		return plan
	}

	cohorts := make(map[int][]string)
	for _, p := range team.People() {
		if !p.EdoEligible {
			continue
		}
		cohorts[p.WorkdaysPerWeek] = append(cohorts[p.WorkdaysPerWeek], p.Name)
	}

	for _, names := range cohorts {
		sort.Strings(names)
		halfA, halfB := split(names)
		for w := 1; w <= horizon.Weeks; w++ {
			recipients := halfA
			if w%2 == 0 {
				recipients = halfB
			}
			for _, name := range recipients {
				plan.Grant(w, name)
			}
		}
	}

	return plan
}

// split divides names into two near-equal halves by alternating
// assignment, so odd-sized cohorts don't bias one half larger by more
// than one member.
func split(names []string) (a, b []string) {
	for i, n := range names {
		if i%2 == 0 {
			a = append(a, n)
		} else {
			b = append(b, n)
		}
	}
	return a, b
}
