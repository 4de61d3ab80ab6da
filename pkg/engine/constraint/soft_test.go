package constraint

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/model"
)

func TestNightSpreadOffReturnsZero(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t,
		model.Person{Name: "Alice", WorkdaysPerWeek: 5},
		model.Person{Name: "Bob", WorkdaysPerWeek: 5},
	)
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Night, Index: 0})

	cctx := NewContext(team, horizon, Options{NightFairness: FairnessOff}, sched)
	if got := cctx.NightSpread(); got != 0 {
		t.Fatalf("expected 0 spread when NightFairness is off, got %v", got)
	}
}

func TestNightSpreadGlobalMeasuresMaxMinusMin(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t,
		model.Person{Name: "Alice", WorkdaysPerWeek: 5},
		model.Person{Name: "Bob", WorkdaysPerWeek: 5},
	)
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Night, Index: 0})
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Tue}, Shift: model.Night, Index: 0})

	cctx := NewContext(team, horizon, Options{NightFairness: FairnessGlobal}, sched)
	if got := cctx.NightSpread(); got != 2 {
		t.Fatalf("expected spread of 2 (Alice=2 nights, Bob=0), got %v", got)
	}
}

func TestMaxNightsSequenceViolationsDisabledAtZero(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	for _, d := range model.Weekdays {
		sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: d}, Shift: model.Night, Index: 0})
	}

	cctx := NewContext(team, horizon, Options{MaxNightsSequence: 0}, sched)
	if got := cctx.MaxNightsSequenceViolations(); got != 0 {
		t.Fatalf("expected 0 violations when MaxNightsSequence is 0 (disabled), got %d", got)
	}
}

func TestMaxNightsSequenceViolationsCountsRunsOverLimit(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	sched := model.NewSchedule(horizon, nil, nil, 0)
	for _, d := range model.Weekdays {
		sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: d}, Shift: model.Night, Index: 0})
	}

	cctx := NewContext(team, horizon, Options{MaxNightsSequence: 3}, sched)
	if got := cctx.MaxNightsSequenceViolations(); got == 0 {
		t.Fatal("expected violations once a run of 5 consecutive nights exceeds a cap of 3")
	}
}

func TestInterTeamNightShareOffReturnsZero(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t,
		model.Person{Name: "Alice", WorkdaysPerWeek: 5, Team: "A"},
		model.Person{Name: "Bob", WorkdaysPerWeek: 5, Team: "B"},
	)
	sched := model.NewSchedule(horizon, nil, nil, 0)
	cctx := NewContext(team, horizon, Options{InterTeamNightShare: InterTeamShareOff}, sched)
	if got := cctx.InterTeamNightShare(); got != 0 {
		t.Fatalf("expected 0 when InterTeamNightShare is off, got %v", got)
	}
}

func TestInterTeamNightShareProportionalMeasuresSpreadAcrossTeams(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t,
		model.Person{Name: "Alice", WorkdaysPerWeek: 5, Team: "A"},
		model.Person{Name: "Bob", WorkdaysPerWeek: 5, Team: "B"},
	)
	sched := model.NewSchedule(horizon, nil, nil, 0)
	sched.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Night, Index: 0})

	cctx := NewContext(team, horizon, Options{InterTeamNightShare: InterTeamShareProportional}, sched)
	if got := cctx.InterTeamNightShare(); got <= 0 {
		t.Fatalf("expected positive spread when only one team has any nights, got %v", got)
	}
}
