package solver

import (
	"testing"

	"github.com/paiban/rotaengine/pkg/model"
)

func TestApplySwapsPersonsByExactSlotIdentity(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	sched := model.NewSchedule(horizon, nil, nil, 0)

	posA := model.CalendarPosition{Week: 1, Day: model.Mon}
	posB := model.CalendarPosition{Week: 1, Day: model.Tue}
	// Two people share posA (a pair slot) — the Slot identity (including
	// Index) must disambiguate which of the two a move touches.
	sched.Add(model.Assignment{Person: "Alice", Position: posA, Shift: model.Night, Index: 0})
	sched.Add(model.Assignment{Person: "Bob", Position: posA, Shift: model.Night, Index: 0})
	sched.Add(model.Assignment{Person: "Carol", Position: posB, Shift: model.Day, Index: 0})

	m := move{
		kind: moveSwap,
		a:    model.Slot{Position: posA, Shift: model.Night, Index: 0},
		b:    model.Slot{Position: posB, Shift: model.Day, Index: 0},
	}

	result := apply(sched, m)

	occupantsA := result.SlotOccupants(model.Slot{Position: posA, Shift: model.Night, Index: 0})
	if len(occupantsA) != 2 {
		t.Fatalf("expected the pair slot to still hold 2 occupants after a swap, got %d", len(occupantsA))
	}

	// swapPersons matches the first occurrence of slot a (Alice, by
	// insertion order) and swaps with slot b's occupant (Carol).
	foundCarolAtA := false
	foundAliceAtB := false
	for _, o := range occupantsA {
		if o == "Carol" {
			foundCarolAtA = true
		}
	}
	for _, a := range result.ByPosition(posB) {
		if a.Person == "Alice" {
			foundAliceAtB = true
		}
	}
	if !foundCarolAtA || !foundAliceAtB {
		t.Fatalf("expected Carol and Alice to have swapped positions, got occupantsA=%v posB=%v", occupantsA, result.ByPosition(posB))
	}

	// The original schedule must be untouched (apply clones).
	origA := sched.SlotOccupants(model.Slot{Position: posA, Shift: model.Night, Index: 0})
	hasAlice := false
	for _, o := range origA {
		if o == "Alice" {
			hasAlice = true
		}
	}
	if !hasAlice {
		t.Fatal("expected apply to leave the original schedule unmodified")
	}
}

func TestTabuListEvictsOldestBeyondCapacity(t *testing.T) {
	tabu := newTabuList(2)
	tabu.add("a")
	tabu.add("b")
	tabu.add("c") // evicts "a"

	if tabu.contains("a") {
		t.Fatal("expected \"a\" to be evicted once capacity was exceeded")
	}
	if !tabu.contains("b") || !tabu.contains("c") {
		t.Fatal("expected the two most recent keys to remain in the tabu list")
	}
}
