package main

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/engine"
	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/model"
)

func TestParseCohortModeRejectsUnknownValue(t *testing.T) {
	if _, err := parseCohortMode("bogus"); err == nil {
		t.Fatal("expected an error for an unrecognized cohort mode")
	}
	got, err := parseCohortMode("by_team")
	if err != nil || got != model.CohortByTeam {
		t.Fatalf("parseCohortMode(\"by_team\") = %v, %v", got, err)
	}
}

func TestParseFairnessScopeAcceptsAllThreeValues(t *testing.T) {
	cases := map[string]constraint.FairnessScope{
		"off":    constraint.FairnessOff,
		"global": constraint.FairnessGlobal,
		"cohort": constraint.FairnessCohort,
	}
	for in, want := range cases {
		got, err := parseFairnessScope("night-fairness", in)
		if err != nil || got != want {
			t.Fatalf("parseFairnessScope(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
}

func TestParseInterTeamShareModeRejectsUnknownValue(t *testing.T) {
	if _, err := parseInterTeamShareMode("everyone"); err == nil {
		t.Fatal("expected an error for an unrecognized inter-team share mode")
	}
}

func TestParseWeekdayIsCaseInsensitive(t *testing.T) {
	got, err := parseWeekday("wed")
	if err != nil || got != model.Wed {
		t.Fatalf("parseWeekday(\"wed\") = %v, %v", got, err)
	}
	if _, err := parseWeekday("Saturday"); err == nil {
		t.Fatal("expected an error for a weekend day (EDO is weekday-only)")
	}
}

func TestExitCodeForStatusMatchesTheDocumentedMapping(t *testing.T) {
	cases := map[engine.Status]int{
		engine.StatusOptimal:    exitOK,
		engine.StatusFeasible:   exitSoftRelaxed,
		engine.StatusInfeasible: exitInfeasible,
		engine.StatusTimeout:    exitTimeout,
		engine.StatusError:      exitGeneric,
	}
	for status, want := range cases {
		if got := exitCodeForStatus(status); got != want {
			t.Fatalf("exitCodeForStatus(%v) = %d, want %d", status, got, want)
		}
	}
}

func TestBuildSolveConfigRejectsInvalidEdoFixedDay(t *testing.T) {
	f := &flags{edoFixedDay: "nonsense"}
	if _, err := buildSolveConfig(f); err == nil {
		t.Fatal("expected an error for an invalid --edo-fixed-day value")
	}
}
