// Package constraint holds the rules shared by the solver's construction
// and repair passes (pkg/engine/solver), the validator (pkg/validator) and
// the scorer (pkg/scorer): named builder routines over a common Context,
// fragmenting what was historically one monolithic solve function (see
// DESIGN.md, §9 Design Notes).
package constraint

import (
	"github.com/paiban/rotaengine/pkg/model"
)

// Weights are the fixed soft-term weights from spec.md §4.4/§4.6. The CP
// objective and the post-hoc score must agree up to the pair-channelling
// constant (P2), so both consult these same constants.
const (
	WeightVacantSlots       = 10.0
	WeightRolling48hExcess  = 100.0
	WeightNightSpread       = 10.0
	WeightEveningSpread     = 3.0
	WeightWorkdayDeviation  = 5.0
	WeightEveningToDay      = 1.0
	WeightContractorPair    = 50.0
	WeightNoEveningViolation = 3.0
	WeightPrefersNightBonus = -1.0
	WeightInterTeamNightShare = 20.0
)

// Context indexes a team and a (possibly partial) schedule for repeated
// constraint evaluation, mirroring the teacher's constraint.Context index
// caches (assignmentsByEmp/assignmentsByDate) but keyed by person name and
// CalendarPosition instead of uuid.UUID.
type Context struct {
	Team    *model.Team
	Horizon model.Horizon
	Config  Options

	byPosition map[model.CalendarPosition][]model.Assignment
	byPerson   map[string][]model.Assignment
}

// Options carries the subset of SolveConfig that the constraint layer
// needs (spec.md §6.1); pkg/engine translates the full SolveConfig into
// this narrower view.
type Options struct {
	RestAfterNight     bool
	EdoEnabled         bool
	FairnessCohorts    model.CohortMode
	NightFairness      FairnessScope
	NightFairnessMode  FairnessMode
	EveningFairness    FairnessScope
	InterTeamNightShare InterTeamShareMode
	MaxNightsSequence  uint32 // 0 = unbounded
	ImposeTargets      bool
}

// InterTeamShareMode selects how the cross-team night-share term of
// spec.md §6.1/§9 Open Question (b) normalises night load across teams.
type InterTeamShareMode int

const (
	InterTeamShareOff InterTeamShareMode = iota
	// InterTeamShareProportional normalises each team's night count by its
	// total workdays_per_week capacity before spreading — the spec's
	// stated default (DESIGN.md Open Question (b)).
	InterTeamShareProportional
	// InterTeamShareGlobal normalises by headcount instead.
	InterTeamShareGlobal
)

// FairnessScope selects which population a spread term is computed over.
type FairnessScope int

const (
	FairnessOff FairnessScope = iota
	FairnessGlobal
	FairnessCohort
)

// FairnessMode selects absolute-count vs proportional-rate spread.
type FairnessMode int

const (
	FairnessByCount FairnessMode = iota
	FairnessByRate
)

// NewContext builds an evaluation context over a schedule snapshot. The
// caller must rebuild (or call Reindex) after mutating the schedule.
func NewContext(team *model.Team, horizon model.Horizon, opts Options, schedule *model.Schedule) *Context {
	c := &Context{Team: team, Horizon: horizon, Config: opts}
	c.Reindex(schedule)
	return c
}

// Reindex rebuilds the position/person indexes from schedule. Call this
// whenever the schedule's Assignments slice changes.
func (c *Context) Reindex(schedule *model.Schedule) {
	c.byPosition = make(map[model.CalendarPosition][]model.Assignment)
	c.byPerson = make(map[string][]model.Assignment)
	if schedule == nil {
		return
	}
	for _, a := range schedule.Assignments {
		c.byPosition[a.Position] = append(c.byPosition[a.Position], a)
		c.byPerson[a.Person] = append(c.byPerson[a.Person], a)
	}
}

// At returns the assignments at a calendar position.
func (c *Context) At(pos model.CalendarPosition) []model.Assignment {
	return c.byPosition[pos]
}

// For returns a person's assignments, in no particular order.
func (c *Context) For(person string) []model.Assignment {
	return c.byPerson[person]
}

// ShiftAt returns the shift a person works at a position, and whether they
// have any assignment there at all.
func (c *Context) ShiftAt(person string, pos model.CalendarPosition) (model.ShiftKind, bool) {
	for _, a := range c.byPosition[pos] {
		if a.Person == person {
			return a.Shift, true
		}
	}
	return model.Off, false
}
