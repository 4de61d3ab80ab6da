package model

// Schedule is the full output of a solve attempt: every Assignment made,
// plus the EdoPlan and StaffingPlan that constrained it and the RNG seed
// that produced it (spec.md §3). It is built once by the solver,
// optionally replaced by the post-rebalancer's swapped clone (local swaps
// only), then treated as frozen.
type Schedule struct {
	Horizon     Horizon
	Assignments []Assignment
	EdoPlan     *EdoPlan
	Staffing    *StaffingPlan
	Seed        uint64
}

// NewSchedule returns an empty schedule for the given horizon.
func NewSchedule(horizon Horizon, edo *EdoPlan, staffing *StaffingPlan, seed uint64) *Schedule {
	return &Schedule{
		Horizon:  horizon,
		EdoPlan:  edo,
		Staffing: staffing,
		Seed:     seed,
	}
}

// Add appends an assignment.
func (s *Schedule) Add(a Assignment) {
	s.Assignments = append(s.Assignments, a)
}

// ByPosition returns every assignment at the given calendar position.
func (s *Schedule) ByPosition(pos CalendarPosition) []Assignment {
	var out []Assignment
	for _, a := range s.Assignments {
		if a.Position == pos {
			out = append(out, a)
		}
	}
	return out
}

// SlotOccupants returns the people occupying a given slot (position, shift,
// index), in no particular order; len() == 0, 1 or the shift's Arity().
func (s *Schedule) SlotOccupants(slot Slot) []string {
	var out []string
	for _, a := range s.Assignments {
		if a.Position == slot.Position && a.Shift == slot.Shift && a.Index == slot.Index {
			out = append(out, a.Person)
		}
	}
	return out
}

// Clone returns a deep copy safe to mutate independently (used by the
// post-rebalancer and local-search repair, which both need to try a swap
// and roll it back on rejection).
func (s *Schedule) Clone() *Schedule {
	clone := &Schedule{
		Horizon:     s.Horizon,
		EdoPlan:     s.EdoPlan,
		Staffing:    s.Staffing,
		Seed:        s.Seed,
		Assignments: make([]Assignment, len(s.Assignments)),
	}
	copy(clone.Assignments, s.Assignments)
	return clone
}
