package constraint

import "github.com/paiban/rotaengine/pkg/model"

// Breakdown is the full weighted-term decomposition shared by the
// solver's objective (evaluated repeatedly during construction and local
// search) and the scorer's post-hoc score (pkg/scorer), so that P2 holds:
// they are computed by the identical routine.
type Breakdown struct {
	VacantSlots          int
	Duplicates           int
	RollingViolations    int
	RollingExcessHours   float64
	NightThenWork        int
	EveningToDay         int
	WeeklyMisses         int
	HorizonMisses        int // workday overage beyond target (H6)
	ContractorPairs      int
	NoEveningViolations  int
	PrefersNightBonus    int
	NightSpread          float64
	EveningSpread        float64
	WorkdayDeviation     int
	MaxNightsSequenceHit int
	InterTeamNightShare  float64
}

// Evaluate computes the full Breakdown for the current schedule snapshot
// held by c, against the given staffing plan and EDO plan.
func (c *Context) Evaluate(staffing *model.StaffingPlan, edo *model.EdoPlan) Breakdown {
	vacant, _ := c.CoverageDeficit(staffing)

	rollingViolations := 0
	rollingExcess := 0.0
	for _, p := range c.Team.People() {
		v, e := RollingExcess(c.Timeline(p.Name))
		rollingViolations += v
		rollingExcess += e
	}

	return Breakdown{
		VacantSlots:          vacant,
		Duplicates:           c.Duplicates(),
		RollingViolations:    rollingViolations,
		RollingExcessHours:   rollingExcess,
		NightThenWork:        c.RestAfterNightViolations(),
		EveningToDay:         c.EveningToDayCount(),
		WeeklyMisses:         c.WorkdayMisses(edo),
		HorizonMisses:        c.WorkdayOverages(edo),
		ContractorPairs:      c.ContractorPairs(),
		NoEveningViolations:  c.NoEveningViolations(),
		PrefersNightBonus:    c.PrefersNightBonusCount(),
		NightSpread:          c.NightSpread(),
		EveningSpread:        c.EveningSpread(),
		WorkdayDeviation:     c.WorkdayDeviation(edo),
		MaxNightsSequenceHit: c.MaxNightsSequenceViolations(),
		InterTeamNightShare:  c.InterTeamNightShare(),
	}
}

// Objective reduces the Breakdown to the CP-side weighted sum of spec.md
// §4.4's soft terms. This is what pkg/engine/solver minimizes during
// construction and local-search repair. The post-hoc scorer (pkg/scorer)
// computes a related but not identical formula over the validator's
// Diagnostics (§4.6 substitutes per-cohort stddev for spread) — the two
// agree up to the pair-channelling constant referenced by P2, not
// term-for-term.
func (b Breakdown) Objective() float64 {
	return WeightVacantSlots*float64(b.VacantSlots) +
		WeightRolling48hExcess*b.RollingExcessHours +
		WeightNightSpread*b.NightSpread +
		WeightEveningSpread*b.EveningSpread +
		WeightWorkdayDeviation*float64(b.WorkdayDeviation) +
		WeightEveningToDay*float64(b.EveningToDay) +
		WeightContractorPair*float64(b.ContractorPairs) +
		WeightNoEveningViolation*float64(b.NoEveningViolations) +
		WeightPrefersNightBonus*float64(b.PrefersNightBonus) +
		WeightInterTeamNightShare*b.InterTeamNightShare
}
