package store

import (
	"bytes"
	"testing"

	"github.com/paiban/rotaengine/pkg/boundary"
	"github.com/paiban/rotaengine/pkg/model"
)

// TestScheduleEncodingRoundTripsThroughSaveLoadShape exercises the same
// CSV encode/decode pkg/store relies on for schedule_csv, without needing
// a live Postgres connection (SaveRun/LoadRun themselves need a real
// database and are not exercised by these tests).
func TestScheduleEncodingRoundTripsThroughSaveLoadShape(t *testing.T) {
	horizon := model.Horizon{Weeks: 1}
	schedule := model.NewSchedule(horizon, nil, nil, 3)
	schedule.Add(model.Assignment{Person: "Alice", Position: model.CalendarPosition{Week: 1, Day: model.Mon}, Shift: model.Night, Index: 0})

	var buf bytes.Buffer
	if err := boundary.WriteSchedule(&buf, schedule); err != nil {
		t.Fatalf("WriteSchedule: %v", err)
	}

	decoded, err := boundary.ReadSchedule(&buf, horizon, nil, nil, 3)
	if err != nil {
		t.Fatalf("ReadSchedule: %v", err)
	}
	if len(decoded.Assignments) != 1 {
		t.Fatalf("expected 1 assignment to round-trip, got %d", len(decoded.Assignments))
	}
}
