package constraint

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/model"
)

func TestEvaluateAndObjectiveOnEmptySchedule(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	team := newTeam(t, model.Person{Name: "Alice", WorkdaysPerWeek: 5})
	staffingPlan := model.NewStaffingPlan(1)
	staffingPlan.Set(1, model.Mon, model.Night, 1)

	sched := model.NewSchedule(horizon, nil, nil, 0)
	cctx := NewContext(team, horizon, Options{}, sched)
	breakdown := cctx.Evaluate(staffingPlan, nil)

	if breakdown.VacantSlots == 0 {
		t.Fatal("expected a vacant-slot penalty for an unfilled planned Night pair")
	}
	if breakdown.Objective() <= 0 {
		t.Fatalf("expected positive objective for an understaffed schedule, got %v", breakdown.Objective())
	}
}

func TestObjectiveIsZeroWhenEverythingIsZero(t *testing.T) {
	var b Breakdown
	if got := b.Objective(); got != 0 {
		t.Fatalf("expected 0 objective for a zero-value breakdown, got %v", got)
	}
}

func TestObjectiveRewardsPrefersNightBonus(t *testing.T) {
	withBonus := Breakdown{PrefersNightBonus: 2}
	without := Breakdown{PrefersNightBonus: 0}
	if withBonus.Objective() >= without.Objective() {
		t.Fatalf("expected prefers_night bonus to lower the objective (negative weight), got with=%v without=%v",
			withBonus.Objective(), without.Objective())
	}
}
