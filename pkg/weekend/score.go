package weekend

import "github.com/paiban/rotaengine/pkg/model"

// Weight constants for the three named soft terms of spec.md §4.8.
const (
	WeightWeekendSpread  = 5
	WeightShiftMixSpread = 3
	WeightRepeatPair     = 2
)

// Breakdown holds the weekend solve's soft-term measurements.
type Breakdown struct {
	WeekendCountSpread int // max-min of Sat/Sun shifts worked, across people who worked any
	ShiftMixSpread     int // max-min of 12h-vs-24h-shift counts, across the same people
	RepeatPairs        int // occurrences of a pairing beyond its first, on any weekend day of the horizon
}

// Objective folds the breakdown into a single weighted cost, lower is
// better, mirroring the weighting convention of
// pkg/engine/constraint.Breakdown.Objective.
func (b Breakdown) Objective() float64 {
	return WeightWeekendSpread*float64(b.WeekendCountSpread) +
		WeightShiftMixSpread*float64(b.ShiftMixSpread) +
		WeightRepeatPair*float64(b.RepeatPairs)
}

// Evaluate measures the three soft terms of spec.md §4.8 against a built
// weekend Schedule.
func Evaluate(sched *Schedule) Breakdown {
	shiftCounts := make(map[string]int) // total Day/Night assignments per person
	halfCounts := make(map[string]int)  // incremented like shiftCounts; not read below
	pairSeen := make(map[[2]string]int)

	byPos := make(map[model.CalendarPosition][]model.Assignment)
	for _, a := range sched.Assignments {
		shiftCounts[a.Person]++
		halfCounts[a.Person]++
		byPos[a.Position] = append(byPos[a.Position], a)
	}

	for pos, assignments := range byPos {
		byShift := make(map[model.ShiftKind][]string)
		for _, a := range assignments {
			byShift[a.Shift] = append(byShift[a.Shift], a.Person)
		}
		for _, names := range byShift {
			if len(names) == 2 {
				pairSeen[pairKey(names[0], names[1])]++
			}
		}
		_ = pos
	}

	if len(shiftCounts) == 0 {
		return Breakdown{}
	}

	minCount, maxCount := -1, -1
	for _, c := range shiftCounts {
		if minCount == -1 || c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}

	work24Count := make(map[string]int)
	for name, byPos := range sched.Work24 {
		work24Count[name] = len(byPos)
	}
	min24, max24 := -1, -1
	for name := range shiftCounts {
		w24 := work24Count[name]
		if min24 == -1 || w24 < min24 {
			min24 = w24
		}
		if w24 > max24 {
			max24 = w24
		}
	}

	repeats := 0
	for _, n := range pairSeen {
		if n > 1 {
			repeats += n - 1
		}
	}

	return Breakdown{
		WeekendCountSpread: maxCount - minCount,
		ShiftMixSpread:      max24 - min24,
		RepeatPairs:         repeats,
	}
}
