// Package weekend implements the independent weekend solver (C8, spec.md
// §4.8): Sat/Sun Day/Night pairing with 12h/24h worker channelling,
// structurally similar to pkg/engine/solver but decoupled from the
// weekday plan (I9/S6: no rest-after-night carries across the two).
package weekend

import (
	"math/rand"
	"sort"

	"github.com/paiban/rotaengine/pkg/model"
)

// Schedule is the weekend solve's output: a set of Assignments restricted
// to Sat/Sun CalendarPositions, structurally independent of the weekday
// Schedule so the two never get merged and re-validated against each
// other's invariants (I9/S6: no rest-after-night carries between them).
type Schedule struct {
	Horizon     model.Horizon
	Assignments []model.Assignment
	Work24      map[string]map[model.CalendarPosition]bool // person -> weekend-day -> worked both halves
}

// Config controls the weekend solve.
type Config struct {
	Seed uint64
}

// Solve builds one weekend schedule. People with AvailableWeekends=false
// are excluded entirely (spec.md §4.8).
func Solve(team *model.Team, horizon model.Horizon, cfg Config) *Schedule {
	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	sched := &Schedule{Horizon: horizon, Work24: make(map[string]map[model.CalendarPosition]bool)}

	pool := team.Filter(func(p model.Person) bool { return p.AvailableWeekends })
	if len(pool) == 0 {
		return sched
	}

	pairHistory := make(map[[2]string]int)

	for w := 1; w <= horizon.Weeks; w++ {
		weekendHours := make(map[string]float64)
		lockedOut := make(map[string]bool) // W3: Sat 24h workers cannot work Sun

		for _, d := range model.WeekendDays {
			pos := model.CalendarPosition{Week: w, Day: d}

			available := excludeLocked(pool, lockedOut)

			dayPair := pickPair(available, weekendHours, pairHistory, rng, model.Day)
			if len(dayPair) == 2 {
				addAssignment(sched, pos, model.Day, dayPair, weekendHours, pairHistory)
			}

			nightPair := pickPair(available, weekendHours, pairHistory, rng, model.Night)
			if len(nightPair) == 2 {
				addAssignment(sched, pos, model.Night, nightPair, weekendHours, pairHistory)
			}

			markWork24(sched, pos, dayPair, nightPair)
			if d == model.Sat {
				for name, byPos := range sched.Work24 {
					if byPos[pos] {
						lockedOut[name] = true
					}
				}
			}
		}
	}

	return sched
}

// excludeLocked filters out anyone in lockedOut (W3: a Sat 24h worker
// cannot work Sun at all).
func excludeLocked(pool []model.Person, lockedOut map[string]bool) []model.Person {
	if len(lockedOut) == 0 {
		return pool
	}
	out := make([]model.Person, 0, len(pool))
	for _, p := range pool {
		if !lockedOut[p.Name] {
			out = append(out, p)
		}
	}
	return out
}

// pickPair selects two people with remaining weekend-hour budget (W2: <=24
// for the whole weekend). W4/W5 require no separation between 12h and 24h
// workers, so a person already placed in dayPair this same day is a valid
// nightPair candidate too (that's exactly what makes them a 24h worker) —
// pickPair is called independently for each shift and relies on the hour
// budget alone to cap participation.
func pickPair(pool []model.Person, weekendHours map[string]float64, pairHistory map[[2]string]int, rng *rand.Rand, shift model.ShiftKind) []string {
	candidates := make([]model.Person, 0, len(pool))
	for _, p := range pool {
		if weekendHours[p.Name]+shift.Hours() > 24 {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) < 2 {
		return nil
	}

	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	sort.SliceStable(candidates, func(i, j int) bool {
		return weekendHours[candidates[i].Name] < weekendHours[candidates[j].Name]
	})

	first := candidates[0]
	var second model.Person
	bestRepeat := -1
	for _, cand := range candidates[1:] {
		key := pairKey(first.Name, cand.Name)
		repeat := pairHistory[key]
		if bestRepeat == -1 || repeat < bestRepeat {
			second = cand
			bestRepeat = repeat
		}
	}
	if bestRepeat == -1 {
		return nil
	}

	return []string{first.Name, second.Name}
}

func addAssignment(sched *Schedule, pos model.CalendarPosition, shift model.ShiftKind, pair []string, weekendHours map[string]float64, pairHistory map[[2]string]int) {
	for _, name := range pair {
		sched.Assignments = append(sched.Assignments, model.Assignment{Person: name, Position: pos, Shift: shift, Index: 0})
		weekendHours[name] += shift.Hours()
	}
	pairHistory[pairKey(pair[0], pair[1])]++
}

func markWork24(sched *Schedule, pos model.CalendarPosition, dayPair, nightPair []string) {
	worked := make(map[string]int)
	for _, n := range dayPair {
		worked[n]++
	}
	for _, n := range nightPair {
		worked[n]++
	}
	for name, count := range worked {
		if count == 2 {
			if sched.Work24[name] == nil {
				sched.Work24[name] = make(map[model.CalendarPosition]bool)
			}
			sched.Work24[name][pos] = true
		}
	}
}

func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
