package model

import "fmt"

// Team is the validated, immutable roster the engine solves against.
// Construct it with NewTeam — the zero value is not usable.
type Team struct {
	people   []Person
	byName   map[string]*Person
}

// NewTeam validates and wraps a list of people, per spec.md §4.1: an empty
// team and duplicate names are construction errors, not warnings.
func NewTeam(people []Person) (*Team, error) {
	if len(people) == 0 {
		return nil, fmt.Errorf("model: team must have at least one person")
	}

	byName := make(map[string]*Person, len(people))
	t := &Team{people: make([]Person, len(people))}
	for i, p := range people {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("model: duplicate person name %q", p.Name)
		}
		t.people[i] = p
		byName[p.Name] = &t.people[i]
	}
	t.byName = byName
	return t, nil
}

// People returns the team's members in ingestion order.
func (t *Team) People() []Person { return t.people }

// Get looks up a person by name.
func (t *Team) Get(name string) (*Person, bool) {
	p, ok := t.byName[name]
	return p, ok
}

// Len returns the team size.
func (t *Team) Len() int { return len(t.people) }

// Filter returns the subset of people for which keep returns true, in
// ingestion order.
func (t *Team) Filter(keep func(Person) bool) []Person {
	var out []Person
	for _, p := range t.people {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
