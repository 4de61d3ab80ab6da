// Package rebalance implements the post-rebalancer (C9, spec.md §4.9): a
// greedy swap local search that repairs residual fairness imbalance after
// the CP solve, without ever introducing a hard violation. Grounded on the
// teacher's swap-evaluation machinery, specialized from generic shift
// preference scoring to the three metrics spec.md names explicitly.
package rebalance

import (
	"sort"

	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/model"
)

// Metric is one of the three fairness dimensions the rebalancer targets.
type Metric int

const (
	MetricNightCount Metric = iota
	MetricEveningCount
	MetricWorkdayTotal
)

var metrics = []Metric{MetricNightCount, MetricEveningCount, MetricWorkdayTotal}

const defaultSteps = 200

// Rebalance runs up to maxSteps greedy-swap iterations against schedule,
// returning a (possibly unchanged) clone. maxSteps == 0 disables the pass
// entirely and returns schedule itself (spec.md §6.1 post_rebalance_steps).
func Rebalance(team *model.Team, horizon model.Horizon, opts constraint.Options, schedule *model.Schedule, staffing *model.StaffingPlan, edo *model.EdoPlan, maxSteps uint32) *model.Schedule {
	if maxSteps == 0 {
		return schedule
	}

	current := schedule.Clone()
	cctx := constraint.NewContext(team, horizon, opts, current)
	currentScore := cctx.Evaluate(staffing, edo).Objective()

	for step := uint32(0); step < maxSteps; step++ {
		improved := false

		for _, metric := range metrics {
			swap, ok := findImprovingSwap(cctx, team, horizon, opts, current, staffing, edo, metric, currentScore)
			if !ok {
				continue
			}

			candidate := current.Clone()
			applySwap(candidate, swap)
			cand := constraint.NewContext(team, horizon, opts, candidate)
			candidateScore := cand.Evaluate(staffing, edo).Objective()

			if candidateScore < currentScore && legal(cand, edo) {
				current = candidate
				cctx = cand
				currentScore = candidateScore
				improved = true
			}
		}

		if !improved {
			break // no improving swap exists in a full sweep
		}
	}

	return current
}

type swapCandidate struct {
	pSlot model.Slot
	p, q  string
}

// Recommendation is a single proposed swap, returned by Recommend for
// ad-hoc "would this help" checks outside of the main rebalance loop.
type Recommendation struct {
	Metric     Metric
	Position   model.CalendarPosition
	Shift      model.ShiftKind
	From       string
	To         string
	ScoreDelta float64
}

// Recommend evaluates each fairness metric in turn against the current
// schedule and returns the first legal, improving swap it finds, without
// mutating schedule or iterating to convergence the way Rebalance does.
// Useful for surfacing a single what-if suggestion (e.g. from an
// operator tool) rather than committing a whole rebalance pass.
func Recommend(team *model.Team, horizon model.Horizon, opts constraint.Options, schedule *model.Schedule, staffing *model.StaffingPlan, edo *model.EdoPlan) (Recommendation, bool) {
	cctx := constraint.NewContext(team, horizon, opts, schedule)
	currentScore := cctx.Evaluate(staffing, edo).Objective()

	for _, metric := range metrics {
		swap, ok := findImprovingSwap(cctx, team, horizon, opts, schedule, staffing, edo, metric, currentScore)
		if !ok {
			continue
		}

		candidate := schedule.Clone()
		applySwap(candidate, swap)
		cand := constraint.NewContext(team, horizon, opts, candidate)
		candidateScore := cand.Evaluate(staffing, edo).Objective()

		if candidateScore < currentScore && legal(cand, edo) {
			return Recommendation{
				Metric:     metric,
				Position:   swap.pSlot.Position,
				Shift:      swap.pSlot.Shift,
				From:       swap.p,
				To:         swap.q,
				ScoreDelta: candidateScore - currentScore,
			}, true
		}
	}
	return Recommendation{}, false
}

// findImprovingSwap locates the largest-positive-gap person P and the
// most-negative-gap person Q on metric, then finds one slot P holds where
// Q is eligible, per spec.md §4.9 steps 1-3.
func findImprovingSwap(cctx *constraint.Context, team *model.Team, horizon model.Horizon, opts constraint.Options, schedule *model.Schedule, staffing *model.StaffingPlan, edo *model.EdoPlan, metric Metric, currentScore float64) (swapCandidate, bool) {
	gaps := gapsFor(cctx, team, edo, metric)
	if len(gaps) < 2 {
		return swapCandidate{}, false
	}

	names := make([]string, 0, len(gaps))
	for name := range gaps {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return gaps[names[i]] > gaps[names[j]] })

	p := names[0]
	q := names[len(names)-1]
	if gaps[p] <= 0 || gaps[q] >= 0 || p == q {
		return swapCandidate{}, false
	}

	for _, a := range schedule.Assignments {
		if a.Person != p || !a.Shift.IsWorking() {
			continue
		}
		slot := model.Slot{Position: a.Position, Shift: a.Shift, Index: a.Index}
		qPerson, ok := team.Get(q)
		if !ok {
			continue
		}
		if _, working := cctx.ShiftAt(q, a.Position); working {
			continue // Q already committed that day; swap would duplicate
		}
		if !cctx.CanAssign(*qPerson, a.Position, a.Shift, edo) {
			continue
		}
		return swapCandidate{pSlot: slot, p: p, q: q}, true
	}
	return swapCandidate{}, false
}

// gapsFor computes actual-minus-target for the given metric, per person.
func gapsFor(cctx *constraint.Context, team *model.Team, edo *model.EdoPlan, metric Metric) map[string]int {
	gaps := make(map[string]int, team.Len())
	switch metric {
	case MetricNightCount:
		counts := cctx.NightCounts()
		mean := meanOf(counts, team)
		for _, p := range team.People() {
			gaps[p.Name] = counts[p.Name] - mean
		}
	case MetricEveningCount:
		counts := cctx.EveningCounts()
		mean := meanOf(counts, team)
		for _, p := range team.People() {
			gaps[p.Name] = counts[p.Name] - mean
		}
	case MetricWorkdayTotal:
		for _, p := range team.People() {
			actual := 0
			for w := 1; w <= cctx.Horizon.Weeks; w++ {
				actual += workdaysInWeek(cctx, p.Name, w)
			}
			target := 0
			for w := 1; w <= cctx.Horizon.Weeks; w++ {
				target += cctx.WorkdayTarget(p, w, edo)
			}
			gaps[p.Name] = actual - target
		}
	}
	return gaps
}

func meanOf(counts map[string]int, team *model.Team) int {
	if team.Len() == 0 {
		return 0
	}
	total := 0
	for _, p := range team.People() {
		total += counts[p.Name]
	}
	return total / team.Len()
}

func workdaysInWeek(cctx *constraint.Context, person string, week int) int {
	n := 0
	for _, d := range model.Weekdays {
		pos := model.CalendarPosition{Week: week, Day: d}
		if shift, ok := cctx.ShiftAt(person, pos); ok && shift.IsWorking() {
			n++
		}
	}
	return n
}

func applySwap(schedule *model.Schedule, swap swapCandidate) {
	for i := range schedule.Assignments {
		a := &schedule.Assignments[i]
		if a.Position == swap.pSlot.Position && a.Shift == swap.pSlot.Shift && a.Index == swap.pSlot.Index && a.Person == swap.p {
			a.Person = swap.q
			return
		}
	}
}

// legal reports whether the candidate schedule still satisfies every hard
// constraint — the rebalancer is forbidden from introducing duplicates,
// coverage loss, or night-then-work violations (spec.md §4.9).
func legal(cctx *constraint.Context, edo *model.EdoPlan) bool {
	return cctx.Duplicates() == 0 &&
		cctx.RestAfterNightViolations() == 0 &&
		cctx.EdoViolations(edo) == 0 &&
		cctx.NightCapViolations() == 0 &&
		cctx.WorkdayOverages(edo) == 0
}
