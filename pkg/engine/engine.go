// Package engine is the top-level entry point of spec.md §6.1:
// solve(team, config) -> SolveResult. It wires every other package into
// the pipeline C3(edo) -> C2(staffing) -> C7(driver, which internally
// runs C4 solve -> C9 rebalance -> C5 validate -> C6 score) and
// optionally C8(weekend), translating the flat SolveConfig into the
// narrower option types each stage consumes.
package engine

import (
	"context"
	"time"

	"github.com/paiban/rotaengine/pkg/driver"
	"github.com/paiban/rotaengine/pkg/edo"
	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/engine/solver"
	"github.com/paiban/rotaengine/pkg/errors"
	"github.com/paiban/rotaengine/pkg/model"
	"github.com/paiban/rotaengine/pkg/staffing"
	"github.com/paiban/rotaengine/pkg/validator"
	"github.com/paiban/rotaengine/pkg/weekend"
)

// SolveConfig is the full set of options spec.md §6.1 names.
type SolveConfig struct {
	Weeks               int
	Tries               int
	Seed                uint64 // 0 => random, drawn from time-derived entropy by Solve
	TimeLimitSeconds     int
	RestAfterNight       bool
	EdoEnabled           bool
	EdoFixedDayGlobal    *model.Weekday
	FairnessCohorts      model.CohortMode
	NightFairness        constraint.FairnessScope
	NightFairnessMode    constraint.FairnessMode
	EveningFairness      constraint.FairnessScope
	InterTeamNightShare  constraint.InterTeamShareMode
	MaxNightsSequence    uint32
	PostRebalanceSteps   uint32
	ImposeTargets        bool

	// SolveWeekend runs the independent C8 weekend solver alongside the
	// weekday engine. Not part of spec.md §6.1's table (the weekend
	// solver is structurally decoupled, per S6), but every complete
	// rotation needs one, so the top-level API offers it as an opt-in.
	SolveWeekend bool
}

// Status is the coarse outcome classification of spec.md §6.1.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusError
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// SolveResult is spec.md §6.1's SolveResult: Schedule is nil when Status
// is error or timeout. An infeasible result still carries the best
// schedule found.
type SolveResult struct {
	Schedule    *model.Schedule
	Weekend     *weekend.Schedule
	Diagnostics validator.Diagnostics
	Score       float64
	SeedUsed    uint64
	Status      Status
}

// Solve runs the full pipeline for one team against cfg.
func Solve(ctx context.Context, team *model.Team, cfg SolveConfig) (SolveResult, error) {
	horizon := model.Horizon{Weeks: cfg.Weeks}
	if err := horizon.Validate(); err != nil {
		return SolveResult{Status: StatusError}, errors.New(errors.CodeInputError, err.Error())
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	effectiveTeam, err := applyGlobalFixedDay(team, cfg.EdoFixedDayGlobal)
	if err != nil {
		return SolveResult{Status: StatusError, SeedUsed: seed}, errors.New(errors.CodeInputError, err.Error())
	}

	edoPlan := edo.Plan(effectiveTeam, horizon, cfg.EdoEnabled)
	staffingPlan := staffing.Derive(effectiveTeam, horizon, edoPlan)

	opts := constraint.Options{
		RestAfterNight:      cfg.RestAfterNight,
		EdoEnabled:          cfg.EdoEnabled,
		FairnessCohorts:     cfg.FairnessCohorts,
		NightFairness:       cfg.NightFairness,
		NightFairnessMode:   cfg.NightFairnessMode,
		EveningFairness:     cfg.EveningFairness,
		InterTeamNightShare: cfg.InterTeamNightShare,
		MaxNightsSequence:   cfg.MaxNightsSequence,
		ImposeTargets:       cfg.ImposeTargets,
	}

	timeLimit := time.Duration(cfg.TimeLimitSeconds) * time.Second
	if timeLimit <= 0 {
		timeLimit = 30 * time.Second
	}

	driverCfg := driver.Config{
		Tries:              cfg.Tries,
		BaseSeed:           seed,
		TimeLimit:          timeLimit,
		PostRebalanceSteps: cfg.PostRebalanceSteps,
		Solver:             solver.DefaultConfig(),
	}

	outcome, err := driver.Run(ctx, effectiveTeam, horizon, staffingPlan, edoPlan, opts, driverCfg)
	if err != nil {
		return SolveResult{SeedUsed: seed, Status: statusForError(err)}, err
	}

	best := outcome.Best

	var weekendSchedule *weekend.Schedule
	if cfg.SolveWeekend {
		weekendSchedule = weekend.Solve(effectiveTeam, horizon, weekend.Config{Seed: seed})
	}

	return SolveResult{
		Schedule:    best.Schedule,
		Weekend:     weekendSchedule,
		Diagnostics: best.Diagnostics,
		Score:       best.Score,
		SeedUsed:    best.Seed,
		Status:      statusFor(best.Diagnostics),
	}, nil
}

// applyGlobalFixedDay fills in EdoFixedDayGlobal for every EDO-eligible
// person who has no per-person fixed day set (spec.md §6.1). Returns team
// unchanged when override is nil.
func applyGlobalFixedDay(team *model.Team, override *model.Weekday) (*model.Team, error) {
	if override == nil {
		return team, nil
	}
	people := make([]model.Person, len(team.People()))
	copy(people, team.People())
	for i := range people {
		if people[i].EdoEligible && people[i].EdoFixedDay == nil {
			day := *override
			people[i].EdoFixedDay = &day
		}
	}
	return model.NewTeam(people)
}

// statusFor classifies a successful attempt's Diagnostics into
// optimal/feasible/infeasible (spec.md §6.1): infeasible when
// Diagnostics.Valid() fails; optimal when, in addition, there are no
// vacant slots, evening-to-day transitions, weekly or horizon misses,
// contractor pairs or unfilled slots; feasible otherwise. Rolling-48h
// violations and the fairness stddev values do not affect the status.
func statusFor(d validator.Diagnostics) Status {
	if !d.Valid() {
		return StatusInfeasible
	}
	if d.VacantSlots == 0 && d.EveningToDay == 0 && d.WeeklyMisses == 0 &&
		d.HorizonMisses == 0 && d.ContractorPairs == 0 && len(d.Unfilled) == 0 {
		return StatusOptimal
	}
	return StatusFeasible
}

func statusForError(err error) Status {
	switch errors.GetCode(err) {
	case errors.CodeInfeasible:
		return StatusInfeasible
	case errors.CodeTimeout:
		return StatusTimeout
	case errors.CodeCancelled:
		return StatusTimeout
	default:
		return StatusError
	}
}
