package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/paiban/rotaengine/pkg/boundary"
	"github.com/paiban/rotaengine/pkg/model"
	"github.com/paiban/rotaengine/pkg/validator"
)

// Run is one persisted solve outcome, addressable by a generated UUID
// rather than a database-assigned sequence, so a run id stays stable if
// the schedule_runs table is ever moved or re-sharded.
type Run struct {
	ID                uuid.UUID
	Seed              uint64
	Weeks             int
	Score             float64
	VacantSlots       int
	RollingViolations int
	Schedule          *model.Schedule
	Diagnostics       validator.Diagnostics
}

// SaveRun persists a solved Schedule and its Diagnostics. The schedule is
// stored CSV-encoded (pkg/boundary) so it can be retrieved without a
// database-specific decoder; diagnostics are stored as JSON since they
// carry no assignment identity to round-trip.
func SaveRun(ctx context.Context, db *DB, schedule *model.Schedule, diagnostics validator.Diagnostics, score float64) (uuid.UUID, error) {
	var csvBuf bytes.Buffer
	if err := boundary.WriteSchedule(&csvBuf, schedule); err != nil {
		return uuid.UUID{}, fmt.Errorf("store: encoding schedule: %w", err)
	}

	diagJSON, err := json.Marshal(diagnostics)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("store: encoding diagnostics: %w", err)
	}

	id := uuid.New()
	_, err = db.ExecContext(ctx, `
		INSERT INTO schedule_runs (id, seed, weeks, score, vacant_slots, rolling_violations, schedule_csv, diagnostics_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, schedule.Seed, schedule.Horizon.Weeks, score, diagnostics.VacantSlots, diagnostics.Rolling48hViolations,
		csvBuf.String(), string(diagJSON))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("store: inserting run: %w", err)
	}
	return id, nil
}

// LoadRun retrieves a persisted run's schedule and diagnostics by id.
// horizon, edo and staffing are supplied by the caller since the CSV
// encoding carries only assignments (matches pkg/boundary.ReadSchedule).
func LoadRun(ctx context.Context, db *DB, id uuid.UUID, horizon model.Horizon, edo *model.EdoPlan, staffing *model.StaffingPlan) (*Run, error) {
	var (
		seed              int64
		weeks             int
		score             float64
		vacantSlots       int
		rollingViolations int
		scheduleCSV       string
		diagJSON          string
	)

	row := db.QueryRowContext(ctx, `
		SELECT seed, weeks, score, vacant_slots, rolling_violations, schedule_csv, diagnostics_json
		FROM schedule_runs WHERE id = $1`, id)
	if err := row.Scan(&seed, &weeks, &score, &vacantSlots, &rollingViolations, &scheduleCSV, &diagJSON); err != nil {
		return nil, fmt.Errorf("store: loading run %s: %w", id, err)
	}

	schedule, err := boundary.ReadSchedule(bytes.NewBufferString(scheduleCSV), horizon, edo, staffing, uint64(seed))
	if err != nil {
		return nil, fmt.Errorf("store: decoding schedule for run %s: %w", id, err)
	}

	var diagnostics validator.Diagnostics
	if err := json.Unmarshal([]byte(diagJSON), &diagnostics); err != nil {
		return nil, fmt.Errorf("store: decoding diagnostics for run %s: %w", id, err)
	}

	return &Run{
		ID:                id,
		Seed:              uint64(seed),
		Weeks:             weeks,
		Score:             score,
		VacantSlots:       vacantSlots,
		RollingViolations: rollingViolations,
		Schedule:          schedule,
		Diagnostics:       diagnostics,
	}, nil
}
