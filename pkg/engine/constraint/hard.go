package constraint

import "github.com/paiban/rotaengine/pkg/model"

// Unfilled records one (position, shift) whose slots did not reach their
// planned headcount; Missing totals the gap across all of its slots and
// Index is always 0.
type Unfilled struct {
	Position model.CalendarPosition
	Shift    model.ShiftKind
	Index    int
	Missing  int
}

// Duplicates counts per-position duplicate assignments of the same person
// (I1: every person appears at most once per calendar position).
func (c *Context) Duplicates() int {
	n := 0
	for _, assignments := range c.byPosition {
		seen := make(map[string]int, len(assignments))
		for _, a := range assignments {
			seen[a.Person]++
		}
		for _, count := range seen {
			if count > 1 {
				n += count - 1
			}
		}
	}
	return n
}

// CoverageDeficit walks every planned slot in staffing and reports how
// many person-slots are unfilled relative to plan × arity (H1/I2).
func (c *Context) CoverageDeficit(staffing *model.StaffingPlan) (vacant int, unfilled []Unfilled) {
	for w := 1; w <= c.Horizon.Weeks; w++ {
		for _, d := range model.Weekdays {
			pos := model.CalendarPosition{Week: w, Day: d}
			for _, shift := range []model.ShiftKind{model.Day, model.Evening, model.Night, model.Admin} {
				planned := staffing.Count(w, d, shift)
				if planned == 0 {
					continue
				}
				needed := planned * shift.Arity()
				got := 0
				for _, a := range c.byPosition[pos] {
					if a.Shift == shift {
						got++
					}
				}
				if got < needed {
					vacant += needed - got
					unfilled = append(unfilled, Unfilled{Position: pos, Shift: shift, Index: 0, Missing: needed - got})
				}
			}
		}
	}
	return vacant, unfilled
}

// RestAfterNightViolations counts, for every weekday Night assignment,
// whether the same person also works the following weekday (H3/I3). When
// RestAfterNight is disabled the rule does not apply and this returns 0.
func (c *Context) RestAfterNightViolations() int {
	if !c.Config.RestAfterNight {
		return 0
	}
	n := 0
	for pos, assignments := range c.byPosition {
		next, ok := pos.Next()
		if !ok {
			continue // Friday: I9, rest never crosses the week boundary
		}
		for _, a := range assignments {
			if a.Shift != model.Night {
				continue
			}
			if _, working := c.ShiftAt(a.Person, next); working {
				n++
			}
		}
	}
	return n
}

// EdoViolations counts EDO recipients who were assigned a working shift on
// their fixed EDO day (H4/I4, first clause). The second clause — at least
// one day off for a fixed-day-less recipient — is a solver-side
// eligibility constraint (see NoFixedDayOffSatisfied) rather than a
// per-assignment count, since it is existential across the week.
func (c *Context) EdoViolations(edo *model.EdoPlan) int {
	if !c.Config.EdoEnabled || edo == nil {
		return 0
	}
	n := 0
	for _, p := range c.Team.People() {
		if !p.EdoEligible || p.EdoFixedDay == nil {
			continue
		}
		for w := 1; w <= c.Horizon.Weeks; w++ {
			if !edo.IsRecipient(w, p.Name) {
				continue
			}
			pos := model.CalendarPosition{Week: w, Day: *p.EdoFixedDay}
			if shift, ok := c.ShiftAt(p.Name, pos); ok && shift.IsWorking() {
				n++
			}
		}
	}
	return n
}

// NoFixedDayOffSatisfied reports whether person, an EDO recipient in week w
// with no fixed day, has at least one non-working day that week (H4,
// second clause — the intentional semantic change over the legacy, see
// DESIGN.md and spec.md §9).
func (c *Context) NoFixedDayOffSatisfied(person string, week int) bool {
	for _, d := range model.Weekdays {
		pos := model.CalendarPosition{Week: week, Day: d}
		if shift, ok := c.ShiftAt(person, pos); !ok || !shift.IsWorking() {
			return true
		}
	}
	return false
}

// NightCapViolations counts, per person, nights worked beyond their
// max_nights cap (H5/I6).
func (c *Context) NightCapViolations() int {
	n := 0
	for _, p := range c.Team.People() {
		cap := p.NightCap()
		if cap == model.NoMaxNights {
			continue
		}
		nights := uint32(0)
		for _, a := range c.byPerson[p.Name] {
			if a.Shift == model.Night {
				nights++
			}
		}
		if nights > cap {
			n += int(nights - cap)
		}
	}
	return n
}

// WorkdayTarget reports, for one person in one week, their working-day
// target net of any EDO granted that week (H6/I7).
func (c *Context) WorkdayTarget(person model.Person, week int, edo *model.EdoPlan) int {
	target := person.WorkdaysPerWeek
	if c.Config.EdoEnabled && edo != nil && edo.IsRecipient(week, person.Name) {
		target--
	}
	if target < 0 {
		target = 0
	}
	return target
}

// WorkdayOverages counts, per person per week, working days in excess of
// target (H6 is a strict upper bound, so any excess is a hard violation).
func (c *Context) WorkdayOverages(edo *model.EdoPlan) int {
	n := 0
	for _, p := range c.Team.People() {
		for w := 1; w <= c.Horizon.Weeks; w++ {
			target := c.WorkdayTarget(p, w, edo)
			actual := c.workdaysInWeek(p.Name, w)
			if actual > target {
				n += actual - target
			}
		}
	}
	return n
}

// WorkdayMisses counts, per person per week, working days short of target
// (I7: target may be unmet — soft).
func (c *Context) WorkdayMisses(edo *model.EdoPlan) int {
	n := 0
	for _, p := range c.Team.People() {
		for w := 1; w <= c.Horizon.Weeks; w++ {
			target := c.WorkdayTarget(p, w, edo)
			actual := c.workdaysInWeek(p.Name, w)
			if actual < target {
				n += target - actual
			}
		}
	}
	return n
}

func (c *Context) workdaysInWeek(person string, week int) int {
	n := 0
	for _, d := range model.Weekdays {
		pos := model.CalendarPosition{Week: week, Day: d}
		if shift, ok := c.ShiftAt(person, pos); ok && shift.IsWorking() {
			n++
		}
	}
	return n
}

// ContractorPairs counts pair slots (Day/Evening/Night) occupied by two
// contractors (I8/soft contractor_pair term).
func (c *Context) ContractorPairs() int {
	n := 0
	for _, assignments := range c.byPosition {
		bySlot := make(map[int][]model.Assignment)
		for _, a := range assignments {
			if a.Shift.IsPairShift() {
				bySlot[a.Index] = append(bySlot[a.Index], a)
			}
		}
		for _, pair := range bySlot {
			if len(pair) != 2 {
				continue
			}
			p0, ok0 := c.Team.Get(pair[0].Person)
			p1, ok1 := c.Team.Get(pair[1].Person)
			if ok0 && ok1 && p0.IsContractor && p1.IsContractor {
				n++
			}
		}
	}
	return n
}

// CanAssign reports whether assigning person to shift at pos would keep
// every hard constraint satisfiable given the assignments already made
// (H2-H6), without yet checking coverage (H1, which is a property of the
// whole slot, not a single assignment). Used by the solver's greedy
// construction and local-search repair to prune illegal candidates.
func (c *Context) CanAssign(person model.Person, pos model.CalendarPosition, shift model.ShiftKind, edo *model.EdoPlan) bool {
	// H2: at most one shift per person per day.
	if _, working := c.ShiftAt(person.Name, pos); working {
		return false
	}

	if shift.IsWorking() {
		// H4: EDO recipients cannot work their fixed day.
		if c.Config.EdoEnabled && edo != nil && person.EdoFixedDay != nil &&
			edo.IsRecipient(pos.Week, person.Name) && *person.EdoFixedDay == pos.Day {
			return false
		}

		// H3: rest after night — cannot work the day after a Night.
		if c.Config.RestAfterNight {
			if prevPos, ok := previous(pos); ok {
				if prevShift, worked := c.ShiftAt(person.Name, prevPos); worked && prevShift == model.Night {
					return false
				}
			}
		}

		// H6: workday target is a strict upper bound.
		target := c.WorkdayTarget(person, pos.Week, edo)
		if c.workdaysInWeek(person.Name, pos.Week) >= target {
			return false
		}
	}

	if shift == model.Night {
		// H5: night cap.
		cap := person.NightCap()
		if cap != model.NoMaxNights {
			nights := uint32(0)
			for _, a := range c.byPerson[person.Name] {
				if a.Shift == model.Night {
					nights++
				}
			}
			if nights >= cap {
				return false
			}
		}

		// H3, forward direction: a Night today forbids tomorrow's shift,
		// so don't start a Night if tomorrow is already committed.
		if c.Config.RestAfterNight {
			if nextPos, ok := pos.Next(); ok {
				if _, working := c.ShiftAt(person.Name, nextPos); working {
					return false
				}
			}
		}
	}

	return true
}

func previous(pos model.CalendarPosition) (model.CalendarPosition, bool) {
	if pos.Day <= model.Mon {
		return model.CalendarPosition{}, false
	}
	return model.CalendarPosition{Week: pos.Week, Day: pos.Day - 1}, true
}
