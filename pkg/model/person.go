package model

import "fmt"

// Person is a member of the theatre team. Immutable after ingestion, per
// spec.md §3 Lifecycles.
type Person struct {
	Name              string
	WorkdaysPerWeek   int
	PrefersNight      bool
	NoEvening         bool
	MaxNights         uint32 // 0 is treated as unset (no cap), like NoMaxNights
	EdoEligible       bool
	EdoFixedDay       *Weekday // nil means unset
	Team              string   // optional cohort tag, empty if unset
	IsContractor      bool
	AvailableWeekends bool
}

// NoMaxNights is the default "unbounded" night cap (spec.md §3: default ∞).
const NoMaxNights uint32 = ^uint32(0)

// Validate checks the single-person invariants from spec.md §4.1: non-empty
// name and workdays_per_week within 0..5.
func (p Person) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("model: person has empty name")
	}
	if p.WorkdaysPerWeek < 0 || p.WorkdaysPerWeek > 5 {
		return fmt.Errorf("model: person %q has workdays_per_week %d out of range 0..5", p.Name, p.WorkdaysPerWeek)
	}
	return nil
}

// NightCap returns the effective max-nights bound, treating zero-value
// MaxNights as "not set" (NoMaxNights).
func (p Person) NightCap() uint32 {
	if p.MaxNights == 0 {
		return NoMaxNights
	}
	return p.MaxNights
}

// Cohort returns the fairness-cohort key for the given grouping mode
// (spec.md §4.4 Cohorts).
func (p Person) Cohort(mode CohortMode) string {
	switch mode {
	case CohortByWorkdays:
		return fmt.Sprintf("workdays=%d", p.WorkdaysPerWeek)
	case CohortByTeam:
		if p.Team == "" {
			return "untagged"
		}
		return p.Team
	default:
		return "all"
	}
}

// CohortMode selects how fairness cohorts are formed (spec.md §4.4/§6.1).
type CohortMode int

const (
	CohortNone CohortMode = iota
	CohortByWorkdays
	CohortByTeam
)
