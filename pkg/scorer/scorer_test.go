package scorer

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/validator"
)

func TestScoreZeroOnCleanDiagnostics(t *testing.T) {
	d := validator.Diagnostics{}
	if got := Score(d); got != 0 {
		t.Fatalf("expected 0 score for an empty Diagnostics, got %v", got)
	}
}

func TestScoreWeightsVacantSlotsAboveEveningToDay(t *testing.T) {
	vacant := validator.Diagnostics{VacantSlots: 1}
	eveningToDay := validator.Diagnostics{EveningToDay: 1}
	if Score(vacant) <= Score(eveningToDay) {
		t.Fatalf("expected vacant_slots (weight 10) to cost more than evening_to_day (weight 1): vacant=%v eveningToDay=%v",
			Score(vacant), Score(eveningToDay))
	}
}

func TestScoreSumsPerCohortStddev(t *testing.T) {
	d := validator.Diagnostics{
		PerCohortNightStddev:   map[string]float64{"a": 1.5, "b": 0.5},
		PerCohortEveningStddev: map[string]float64{"a": 1.0},
	}
	want := 10*2.0 + 3*1.0
	if got := Score(d); got != want {
		t.Fatalf("Score() = %v, want %v", got, want)
	}
}
