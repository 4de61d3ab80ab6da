package model

import "testing"

func TestShiftKindHoursAndArity(t *testing.T) {
	cases := []struct {
		kind     ShiftKind
		hours    float64
		arity    int
		working  bool
		pairShift bool
	}{
		{Day, 10, 2, true, true},
		{Evening, 10, 2, true, true},
		{Night, 12, 2, true, true},
		{Admin, 8, 1, true, false},
		{Off, 0, 0, false, false},
		{Edo, 0, 0, false, false},
		{EdoConflict, 0, 0, false, false},
	}
	for _, c := range cases {
		if got := c.kind.Hours(); got != c.hours {
			t.Errorf("%v.Hours() = %v, want %v", c.kind, got, c.hours)
		}
		if got := c.kind.Arity(); got != c.arity {
			t.Errorf("%v.Arity() = %v, want %v", c.kind, got, c.arity)
		}
		if got := c.kind.IsWorking(); got != c.working {
			t.Errorf("%v.IsWorking() = %v, want %v", c.kind, got, c.working)
		}
		if got := c.kind.IsPairShift(); got != c.pairShift {
			t.Errorf("%v.IsPairShift() = %v, want %v", c.kind, got, c.pairShift)
		}
	}
}

func TestSlotOccupantsRoundTrip(t *testing.T) {
	sched := NewSchedule(Horizon{Weeks: 1}, nil, nil, 7)
	slot := Slot{Position: CalendarPosition{Week: 1, Day: Mon}, Shift: Night, Index: 0}
	sched.Add(Assignment{Person: "Alice", Position: slot.Position, Shift: slot.Shift, Index: slot.Index})
	sched.Add(Assignment{Person: "Bob", Position: slot.Position, Shift: slot.Shift, Index: slot.Index})

	occupants := sched.SlotOccupants(slot)
	if len(occupants) != 2 {
		t.Fatalf("expected 2 occupants, got %d: %v", len(occupants), occupants)
	}
}
