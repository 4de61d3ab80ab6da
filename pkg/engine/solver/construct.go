package solver

import (
	"math/rand"
	"sort"

	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/model"
)

// construct builds an initial schedule by greedily filling every planned
// slot, position by position, in calendar order — Night first (fixed
// coverage, so it never gets starved by Day/Evening demand), then Admin,
// then Day/Evening. Within a slot, candidates are ranked by a light
// heuristic (prefers_night, contractor-pair avoidance) and ties broken by
// the seeded RNG, so construction is deterministic given seed (P4).
func construct(team *model.Team, horizon model.Horizon, staffing *model.StaffingPlan, edo *model.EdoPlan, opts constraint.Options, rng *rand.Rand) *model.Schedule {
	schedule := model.NewSchedule(horizon, edo, staffing, 0)
	cctx := constraint.NewContext(team, horizon, opts, schedule)

	people := append([]model.Person(nil), team.People()...)

	for w := 1; w <= horizon.Weeks; w++ {
		for _, d := range model.Weekdays {
			pos := model.CalendarPosition{Week: w, Day: d}

			if n := staffing.Count(w, d, model.Night); n > 0 {
				fillPairShift(schedule, cctx, people, pos, model.Night, n, edo, rng)
			}
			if n := staffing.Count(w, d, model.Admin); n > 0 {
				fillAdmin(schedule, cctx, people, pos, n, edo, rng)
			}
			if n := staffing.Count(w, d, model.Day); n > 0 {
				fillPairShift(schedule, cctx, people, pos, model.Day, n, edo, rng)
			}
			if n := staffing.Count(w, d, model.Evening); n > 0 {
				fillPairShift(schedule, cctx, people, pos, model.Evening, n, edo, rng)
			}
		}
	}

	return schedule
}

// fillPairShift places n pairs of people into shift at pos, skipping any
// slot it cannot legally fill (surfaced later as a vacant-slot soft
// violation, never as a hard-constraint breach).
func fillPairShift(schedule *model.Schedule, cctx *constraint.Context, people []model.Person, pos model.CalendarPosition, shift model.ShiftKind, n int, edo *model.EdoPlan, rng *rand.Rand) {
	for slotIdx := 0; slotIdx < n; slotIdx++ {
		candidates := eligibleFor(cctx, people, pos, shift, edo, rng)
		if len(candidates) < 2 {
			continue
		}

		first := candidates[0]
		var second *model.Person
		for i := range candidates[1:] {
			cand := candidates[1:][i]
			if first.IsContractor && cand.IsContractor {
				continue // avoid contractor_pair where an alternative exists (I8)
			}
			second = &candidates[1:][i]
			break
		}
		if second == nil {
			second = &candidates[1] // no contractor-free option; accept the soft penalty
		}

		place(schedule, cctx, first.Name, pos, shift, slotIdx)
		place(schedule, cctx, second.Name, pos, shift, slotIdx)
	}
}

// fillAdmin places n solo Admin assignments at pos.
func fillAdmin(schedule *model.Schedule, cctx *constraint.Context, people []model.Person, pos model.CalendarPosition, n int, edo *model.EdoPlan, rng *rand.Rand) {
	for slotIdx := 0; slotIdx < n; slotIdx++ {
		candidates := eligibleFor(cctx, people, pos, model.Admin, edo, rng)
		if len(candidates) == 0 {
			continue
		}
		place(schedule, cctx, candidates[0].Name, pos, model.Admin, slotIdx)
	}
}

func place(schedule *model.Schedule, cctx *constraint.Context, person string, pos model.CalendarPosition, shift model.ShiftKind, index int) {
	schedule.Add(model.Assignment{Person: person, Position: pos, Shift: shift, Index: index})
	cctx.Reindex(schedule)
}

// eligibleFor returns the people who CanAssign legally to (pos, shift),
// ranked by a preference heuristic then shuffled within preference tiers
// by rng for deterministic-but-varied tie-breaking.
func eligibleFor(cctx *constraint.Context, people []model.Person, pos model.CalendarPosition, shift model.ShiftKind, edo *model.EdoPlan, rng *rand.Rand) []model.Person {
	var eligible []model.Person
	for _, p := range people {
		if shift == model.Evening && p.NoEvening {
			continue
		}
		if !cctx.CanAssign(p, pos, shift, edo) {
			continue
		}
		eligible = append(eligible, p)
	}

	rng.Shuffle(len(eligible), func(i, j int) { eligible[i], eligible[j] = eligible[j], eligible[i] })

	sort.SliceStable(eligible, func(i, j int) bool {
		return rank(eligible[i], shift) < rank(eligible[j], shift)
	})
	return eligible
}

// rank gives prefers_night people priority for Night slots; all else ties
// (broken by the pre-shuffle above).
func rank(p model.Person, shift model.ShiftKind) int {
	if shift == model.Night && p.PrefersNight {
		return 0
	}
	return 1
}
