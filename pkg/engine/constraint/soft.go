package constraint

import "github.com/paiban/rotaengine/pkg/model"

// NightCounts returns the number of Night assignments per person.
func (c *Context) NightCounts() map[string]int {
	counts := make(map[string]int, len(c.Team.People()))
	for _, p := range c.Team.People() {
		counts[p.Name] = 0
	}
	for person, assignments := range c.byPerson {
		n := 0
		for _, a := range assignments {
			if a.Shift == model.Night {
				n++
			}
		}
		counts[person] = n
	}
	return counts
}

// EveningCounts returns the number of Evening assignments per person.
func (c *Context) EveningCounts() map[string]int {
	counts := make(map[string]int, len(c.Team.People()))
	for _, p := range c.Team.People() {
		counts[p.Name] = 0
	}
	for person, assignments := range c.byPerson {
		n := 0
		for _, a := range assignments {
			if a.Shift == model.Evening {
				n++
			}
		}
		counts[person] = n
	}
	return counts
}

// cohorts partitions the team into cohort-key -> member names, per the
// configured FairnessCohorts mode (spec.md §4.4 Cohorts).
func (c *Context) cohorts() map[string][]string {
	groups := make(map[string][]string)
	for _, p := range c.Team.People() {
		key := p.Cohort(c.Config.FairnessCohorts)
		groups[key] = append(groups[key], p.Name)
	}
	return groups
}

// spread returns max-min of counts restricted to members.
func spread(counts map[string]int, members []string) int {
	if len(members) == 0 {
		return 0
	}
	min, max := counts[members[0]], counts[members[0]]
	for _, m := range members[1:] {
		if counts[m] < min {
			min = counts[m]
		}
		if counts[m] > max {
			max = counts[m]
		}
	}
	return max - min
}

// NightSpread sums, per cohort (or globally), max-min of night counts. When
// NightFairnessMode is FairnessByRate, counts are replaced by
// (nights / workday_target) scaled to integer tenths before spreading
// (spec.md §4.4 "Proportional night fairness").
func (c *Context) NightSpread() float64 {
	if c.Config.NightFairness == FairnessOff {
		return 0
	}
	counts := c.NightCounts()
	if c.Config.NightFairnessMode == FairnessByRate {
		counts = c.nightRatesInTenths()
	}
	return c.spreadAcrossScope(counts, c.Config.NightFairness)
}

// EveningSpread sums, per cohort (or globally), max-min of evening counts.
func (c *Context) EveningSpread() float64 {
	if c.Config.EveningFairness == FairnessOff {
		return 0
	}
	return c.spreadAcrossScope(c.EveningCounts(), c.Config.EveningFairness)
}

func (c *Context) spreadAcrossScope(counts map[string]int, scope FairnessScope) float64 {
	if scope == FairnessGlobal {
		all := make([]string, 0, len(c.Team.People()))
		for _, p := range c.Team.People() {
			all = append(all, p.Name)
		}
		return float64(spread(counts, all))
	}
	total := 0
	for _, members := range c.cohorts() {
		total += spread(counts, members)
	}
	return float64(total)
}

// nightRatesInTenths computes nights / workday_target scaled to integer
// tenths per person, for the proportional night-fairness mode.
func (c *Context) nightRatesInTenths() map[string]int {
	nights := c.NightCounts()
	rates := make(map[string]int, len(c.Team.People()))
	for _, p := range c.Team.People() {
		if p.WorkdaysPerWeek == 0 {
			rates[p.Name] = 0
			continue
		}
		rates[p.Name] = (nights[p.Name] * 10) / p.WorkdaysPerWeek
	}
	return rates
}

// WorkdayDeviation sums |actual - target| per person per week (I7 soft
// term).
func (c *Context) WorkdayDeviation(edo *model.EdoPlan) int {
	total := 0
	for _, p := range c.Team.People() {
		for w := 1; w <= c.Horizon.Weeks; w++ {
			target := c.WorkdayTarget(p, w, edo)
			actual := c.workdaysInWeek(p.Name, w)
			if actual > target {
				total += actual - target
			} else {
				total += target - actual
			}
		}
	}
	return total
}

// EveningToDayCount counts occurrences of a person working Evening on day
// d then Day on d+1 (the evening_to_day soft term).
func (c *Context) EveningToDayCount() int {
	n := 0
	for pos, assignments := range c.byPosition {
		next, ok := pos.Next()
		if !ok {
			continue
		}
		for _, a := range assignments {
			if a.Shift != model.Evening {
				continue
			}
			if shift, working := c.ShiftAt(a.Person, next); working && shift == model.Day {
				n++
			}
		}
	}
	return n
}

// NoEveningViolations counts assignments of Evening to a no_evening person.
func (c *Context) NoEveningViolations() int {
	n := 0
	for _, p := range c.Team.People() {
		if !p.NoEvening {
			continue
		}
		for _, a := range c.byPerson[p.Name] {
			if a.Shift == model.Evening {
				n++
			}
		}
	}
	return n
}

// PrefersNightBonusCount counts Night assignments given to prefers_night
// people (the term carries a negative weight — a reward, not a penalty).
func (c *Context) PrefersNightBonusCount() int {
	n := 0
	for _, p := range c.Team.People() {
		if !p.PrefersNight {
			continue
		}
		for _, a := range c.byPerson[p.Name] {
			if a.Shift == model.Night {
				n++
			}
		}
	}
	return n
}

// InterTeamNightShare measures the max-min spread of night load across
// the model.Team tag groups (distinct from FairnessCohorts, which may
// group by workdays instead), per spec.md §6.1's inter_team_night_share
// and DESIGN.md Open Question (b). Teams are always keyed by
// model.CohortByTeam regardless of Config.FairnessCohorts, since this
// term exists specifically to balance night load *between* teams.
func (c *Context) InterTeamNightShare() float64 {
	if c.Config.InterTeamNightShare == InterTeamShareOff {
		return 0
	}

	nights := c.NightCounts()
	teamNights := make(map[string]int)
	teamWorkdays := make(map[string]int)
	teamHeadcount := make(map[string]int)
	for _, p := range c.Team.People() {
		key := p.Cohort(model.CohortByTeam)
		teamNights[key] += nights[p.Name]
		teamWorkdays[key] += p.WorkdaysPerWeek
		teamHeadcount[key]++
	}
	if len(teamNights) < 2 {
		return 0
	}

	ratios := make([]float64, 0, len(teamNights))
	for key, n := range teamNights {
		var denom int
		if c.Config.InterTeamNightShare == InterTeamShareGlobal {
			denom = teamHeadcount[key]
		} else {
			denom = teamWorkdays[key]
		}
		if denom == 0 {
			ratios = append(ratios, 0)
			continue
		}
		ratios = append(ratios, float64(n)/float64(denom))
	}

	min, max := ratios[0], ratios[0]
	for _, r := range ratios[1:] {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	return max - min
}

// MaxNightsSequenceViolations counts, per person, nights worked in
// consecutive calendar positions beyond Config.MaxNightsSequence. Per
// DESIGN.md's Open Question (a), the sequence is scanned across the whole
// flat horizon (DayIndex order) without resetting at week boundaries —
// H5 is already a whole-horizon cap, so the sequence cap follows the same
// convention. A MaxNightsSequence of 0 disables the check.
func (c *Context) MaxNightsSequenceViolations() int {
	if c.Config.MaxNightsSequence == 0 {
		return 0
	}
	total := 0
	limit := int(c.Config.MaxNightsSequence)
	for _, p := range c.Team.People() {
		nightDays := make(map[int]bool)
		for _, a := range c.byPerson[p.Name] {
			if a.Shift == model.Night {
				nightDays[a.Position.DayIndex()] = true
			}
		}
		run := 0
		for idx := 0; idx < 7*c.Horizon.Weeks; idx++ {
			if nightDays[idx] {
				run++
				if run > limit {
					total++
				}
			} else {
				run = 0
			}
		}
	}
	return total
}
