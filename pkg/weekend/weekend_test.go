package weekend

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/model"
)

func buildWeekendTeam(t *testing.T, n int) *model.Team {
	t.Helper()
	people := make([]model.Person, n)
	for i := range people {
		people[i] = model.Person{Name: string(rune('A' + i)), WorkdaysPerWeek: 5, AvailableWeekends: true}
	}
	team, err := model.NewTeam(people)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	return team
}

func TestSolveEmptyPoolReturnsEmptySchedule(t *testing.T) {
	team, err := model.NewTeam([]model.Person{{Name: "Alice", WorkdaysPerWeek: 5, AvailableWeekends: false}})
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	sched := Solve(team, model.Horizon{Weeks: 2}, Config{Seed: 1})
	if len(sched.Assignments) != 0 {
		t.Fatalf("expected no assignments when nobody is available for weekends, got %d", len(sched.Assignments))
	}
}

func TestSolveRespectsWeekendHourBudget(t *testing.T) {
	team := buildWeekendTeam(t, 4)
	sched := Solve(team, model.Horizon{Weeks: 2}, Config{Seed: 42})

	hours := make(map[string]float64)
	for _, a := range sched.Assignments {
		if a.Position.Week != 1 {
			continue
		}
		hours[a.Person] += a.Shift.Hours()
	}
	for name, h := range hours {
		if h > 24 {
			t.Fatalf("person %s exceeded the 24h weekend budget: %v", name, h)
		}
	}
}

func TestSolveNeverSchedulesASat24hWorkerOnSunday(t *testing.T) {
	team := buildWeekendTeam(t, 4)
	sched := Solve(team, model.Horizon{Weeks: 3}, Config{Seed: 7})

	for name, byPos := range sched.Work24 {
		for pos, worked := range byPos {
			if !worked || pos.Day != model.Sat {
				continue
			}
			sunPos := model.CalendarPosition{Week: pos.Week, Day: model.Sun}
			for _, a := range sched.Assignments {
				if a.Person == name && a.Position == sunPos {
					t.Fatalf("person %s worked both a Sat 24h shift and a Sunday shift in week %d (W3 violation)", name, pos.Week)
				}
			}
		}
	}
}

func TestEvaluateOnEmptySchedule(t *testing.T) {
	sched := &Schedule{Horizon: model.Horizon{Weeks: 1}, Work24: make(map[string]map[model.CalendarPosition]bool)}
	breakdown := Evaluate(sched)
	if breakdown.Objective() != 0 {
		t.Fatalf("expected 0 objective for an empty weekend schedule, got %v", breakdown.Objective())
	}
}
