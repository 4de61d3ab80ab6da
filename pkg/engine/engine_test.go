package engine

import (
	"context"
	"testing"
	"time"

	"github.com/paiban/rotaengine/pkg/model"
	"github.com/paiban/rotaengine/pkg/validator"
)

func buildEngineTeam(t *testing.T, n int) *model.Team {
	t.Helper()
	people := make([]model.Person, n)
	for i := range people {
		people[i] = model.Person{Name: string(rune('A' + i)), WorkdaysPerWeek: 4}
	}
	team, err := model.NewTeam(people)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	return team
}

func TestSolveReturnsAScheduleForAFeasibleTeam(t *testing.T) {
	team := buildEngineTeam(t, 10)
	cfg := SolveConfig{
		Weeks:            1,
		Tries:            2,
		Seed:             1,
		TimeLimitSeconds: 2,
		RestAfterNight:   true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := Solve(ctx, team, cfg)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Schedule == nil {
		t.Fatal("expected a non-nil schedule for a feasible team")
	}
	if result.Status == StatusInfeasible || result.Status == StatusError {
		t.Fatalf("expected a feasible or optimal result, got status %v", result.Status)
	}
}

func TestSolveRejectsOutOfRangeHorizon(t *testing.T) {
	team := buildEngineTeam(t, 5)
	cfg := SolveConfig{Weeks: 0, Tries: 1, Seed: 1, TimeLimitSeconds: 1}

	_, err := Solve(context.Background(), team, cfg)
	if err == nil {
		t.Fatal("expected an input error for a 0-week horizon")
	}
}

func TestSolveHonorsGlobalFixedDayOverride(t *testing.T) {
	people := []model.Person{
		{Name: "Alice", WorkdaysPerWeek: 4, EdoEligible: true},
		{Name: "Bob", WorkdaysPerWeek: 4, EdoEligible: true},
		{Name: "Carol", WorkdaysPerWeek: 4},
		{Name: "Dan", WorkdaysPerWeek: 4},
	}
	team, err := model.NewTeam(people)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}

	wed := model.Wed
	cfg := SolveConfig{
		Weeks:             1,
		Tries:             1,
		Seed:              1,
		TimeLimitSeconds:  2,
		RestAfterNight:    true,
		EdoEnabled:        true,
		EdoFixedDayGlobal: &wed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := Solve(ctx, team, cfg)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Schedule == nil {
		t.Fatal("expected a schedule")
	}
}

func TestStatusForClassifiesInvalidAsInfeasible(t *testing.T) {
	d := validator.Diagnostics{DuplicatesPerDay: 1}
	if got := statusFor(d); got != StatusInfeasible {
		t.Fatalf("expected StatusInfeasible for a hard-invariant breach, got %v", got)
	}
}

func TestStatusForClassifiesVacantSlotsAsFeasible(t *testing.T) {
	d := validator.Diagnostics{VacantSlots: 2}
	if got := statusFor(d); got != StatusFeasible {
		t.Fatalf("expected StatusFeasible for vacant slots with no hard violation, got %v", got)
	}
}

func TestStatusForClassifiesCleanResultAsOptimal(t *testing.T) {
	d := validator.Diagnostics{}
	if got := statusFor(d); got != StatusOptimal {
		t.Fatalf("expected StatusOptimal for a clean Diagnostics, got %v", got)
	}
}
