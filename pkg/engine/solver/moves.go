package solver

import (
	"fmt"
	"math/rand"

	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/model"
)

// moveKind enumerates the local-search neighborhood, adapted from the
// teacher's MoveType set (swap/relocate/insert/remove) to the pair-slot
// domain — every slot here is staffed to a fixed target rather than having
// open capacity, so relocate/insert/remove (which need a genuinely vacant
// destination) don't translate; only swap does, and the others are dropped
// rather than faked.
type moveKind int

const (
	moveSwap moveKind = iota
)

// move is a single candidate edit to a schedule: swap two people's
// assignments. Reversible and touches O(1) assignments, keeping repair
// steps cheap to evaluate.
type move struct {
	kind moveKind
	a    model.Slot
	b    model.Slot
}

func (m move) key() string {
	return fmt.Sprintf("%d:%s:%s", m.kind, m.a, m.b)
}

func slotOf(a model.Assignment) model.Slot {
	return model.Slot{Position: a.Position, Shift: a.Shift, Index: a.Index}
}

// randomMove picks a random legal swap between two existing assignments. It only returns moves that keep every hard constraint
// satisfied (H2-H6) — the repair pass searches for better soft-term
// trade-offs, never for a way to break coverage or rest rules.
func randomMove(schedule *model.Schedule, team *model.Team, horizon model.Horizon, staffing *model.StaffingPlan, edo *model.EdoPlan, opts constraint.Options, rng *rand.Rand) (move, bool) {
	if len(schedule.Assignments) < 2 {
		return move{}, false
	}

	const attempts = 20
	for i := 0; i < attempts; i++ {
		a := schedule.Assignments[rng.Intn(len(schedule.Assignments))]
		b := schedule.Assignments[rng.Intn(len(schedule.Assignments))]
		if a.Position == b.Position && a.Index == b.Index {
			continue
		}

		candidate := schedule.Clone()
		swapPersons(candidate, slotOf(a), slotOf(b))

		cctx := constraint.NewContext(team, horizon, opts, candidate)
		if legal(cctx, team, edo) {
			return move{kind: moveSwap, a: slotOf(a), b: slotOf(b)}, true
		}
	}
	return move{}, false
}

// apply re-derives the move's swap against the given schedule (moves carry
// slot identities, not object references, so they replay correctly
// against whichever schedule is "current" at acceptance time).
func apply(schedule *model.Schedule, m move) *model.Schedule {
	clone := schedule.Clone()
	swapPersons(clone, m.a, m.b)
	return clone
}

func swapPersons(schedule *model.Schedule, a, b model.Slot) {
	var ai, bi = -1, -1
	for i := range schedule.Assignments {
		s := slotOf(schedule.Assignments[i])
		if s == a && ai < 0 {
			ai = i
		} else if s == b && bi < 0 {
			bi = i
		}
	}
	if ai >= 0 && bi >= 0 {
		schedule.Assignments[ai].Person, schedule.Assignments[bi].Person = schedule.Assignments[bi].Person, schedule.Assignments[ai].Person
	}
}

// legal reports whether a candidate schedule keeps every hard constraint
// satisfied: no duplicates, no rest-after-night breach, no EDO fixed-day
// breach, night cap and workday target respected.
func legal(cctx *constraint.Context, team *model.Team, edo *model.EdoPlan) bool {
	if cctx.Duplicates() > 0 {
		return false
	}
	if cctx.RestAfterNightViolations() > 0 {
		return false
	}
	if cctx.EdoViolations(edo) > 0 {
		return false
	}
	if cctx.NightCapViolations() > 0 {
		return false
	}
	if cctx.WorkdayOverages(edo) > 0 {
		return false
	}
	return true
}

// tabuList is a small fixed-capacity recency set, matching the teacher's
// TabuList but without the extra RWMutex (solver attempts are
// single-goroutine; concurrency lives one level up in pkg/driver).
type tabuList struct {
	items   map[string]struct{}
	order   []string
	maxSize int
}

func newTabuList(size int) *tabuList {
	return &tabuList{items: make(map[string]struct{}), maxSize: size}
}

func (t *tabuList) add(key string) {
	if _, ok := t.items[key]; ok {
		return
	}
	if len(t.order) >= t.maxSize {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.items, oldest)
	}
	t.items[key] = struct{}{}
	t.order = append(t.order, key)
}

func (t *tabuList) contains(key string) bool {
	_, ok := t.items[key]
	return ok
}
