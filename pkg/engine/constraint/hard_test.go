package constraint

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/model"
)

func newTeam(t *testing.T, people ...model.Person) *model.Team {
	t.Helper()
	team, err := model.NewTeam(people)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	return team
}

func TestDuplicatesCountsExtraOccupants(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	pos := model.CalendarPosition{Week: 1, Day: model.Mon}
	sched.Add(model.Assignment{Person: "Alice", Position: pos, Shift: model.Day, Index: 0})
	sched.Add(model.Assignment{Person: "Alice", Position: pos, Shift: model.Evening, Index: 0})

	cctx := NewContext(team, horizon, Options{}, sched)
	if got := cctx.Duplicates(); got != 1 {
		t.Fatalf("expected 1 duplicate (same person, same day, two shifts), got %d", got)
	}
}

func TestRestAfterNightViolations(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Night, Index: 0})
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Tue}, Shift: model.Day, Index: 0})

	cctx := NewContext(team, horizon, Options{RestAfterNight: true}, sched)
	if got := cctx.RestAfterNightViolations(); got != 1 {
		t.Fatalf("expected 1 rest-after-night violation, got %d", got)
	}

	cctxOff := NewContext(team, horizon, Options{RestAfterNight: false}, sched)
	if got := cctxOff.RestAfterNightViolations(); got != 0 {
		t.Fatalf("expected 0 violations when RestAfterNight disabled, got %d", got)
	}
}

func TestRestAfterNightNeverCrossesWeekBoundary(t *testing.T) {
	// I9: Friday night -> Monday next week must never count as a violation.
	horizon := model.Horizon{Weeks: 2}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Fri}, Shift: model.Night, Index: 0})
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 2, Day: model.Mon}, Shift: model.Day, Index: 0})

	cctx := NewContext(team, horizon, Options{RestAfterNight: true}, sched)
	if got := cctx.RestAfterNightViolations(); got != 0 {
		t.Fatalf("expected 0 violations across a week boundary (I9), got %d", got)
	}
}

func TestNightCapViolations(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5, MaxNights: 1})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Night, Index: 0})
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Tue}, Shift: model.Night, Index: 0})

	cctx := NewContext(team, horizon, Options{}, sched)
	if got := cctx.NightCapViolations(); got != 1 {
		t.Fatalf("expected 1 night-cap violation (cap=1, 2 nights worked), got %d", got)
	}
}

func TestCanAssignRejectsSecondShiftSameDay(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	pos := model.CalendarPosition{Week: 1, Day: model.Mon}
	sched.Add(model.Assignment{Person: "Alice", Position: pos, Shift: model.Day, Index: 0})

	cctx := NewContext(team, horizon, Options{}, sched)
	alice, _ := team.Get("Alice")
	if cctx.CanAssign(*alice, pos, model.Evening, nil) {
		t.Fatal("expected CanAssign to reject a second shift on the same calendar position (H2)")
	}
}

func TestCanAssignEnforcesWorkdayTarget(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 1})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Day, Index: 0})

	cctx := NewContext(team, horizon, Options{}, sched)
	alice, _ := team.Get("Alice")
	if cctx.CanAssign(*alice, model.CalendarPosition{Week: 1, Day: model.Tue}, model.Day, nil) {
		t.Fatal("expected CanAssign to reject exceeding workdays_per_week (H6)")
	}
}

func TestContractorPairsCountsOnlyAllContractorPairs(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t,
		model.Person{Name: "Alice", WorkdaysPerWeek: 5, IsContractor: true},
		model.Person{Name: "Bob", WorkdaysPerWeek: 5, IsContractor: true},
		model.Person{Name: "Carol", WorkdaysPerWeek: 5, IsContractor: false},
	)
	pos := model.CalendarPosition{Week: 1, Day: model.Mon}
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: pos, Shift: model.Day, Index: 0})
	sched.Add(model.Assignment{Person: "Bob", Position: pos, Shift: model.Day, Index: 0})

	cctx := NewContext(team, horizon, Options{}, sched)
	if got := cctx.ContractorPairs(); got != 1 {
		t.Fatalf("expected 1 all-contractor pair, got %d", got)
	}

	sched2 := model.NewSchedule(horizon, nil, nil, 0)
	sched2.Add(model.Assignment{Person: "Alice", Position: pos, Shift: model.Day, Index: 0})
	sched2.Add(model.Assignment{Person: "Carol", Position: pos, Shift: model.Day, Index: 0})
	cctx2 := NewContext(team, horizon, Options{}, sched2)
	if got := cctx2.ContractorPairs(); got != 0 {
		t.Fatalf("expected 0 contractor pairs when one member is not a contractor, got %d", got)
	}
}
