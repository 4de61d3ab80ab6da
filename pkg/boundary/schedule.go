package boundary

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/paiban/rotaengine/pkg/errors"
	"github.com/paiban/rotaengine/pkg/model"
)

// shiftCode maps each internal ShiftKind to its external letter code,
// per spec.md §6.3.
var shiftCode = map[model.ShiftKind]string{
	model.Day:         "J",
	model.Evening:     "S",
	model.Night:       "N",
	model.Admin:       "A",
	model.Off:         "OFF",
	model.Edo:         "EDO",
	model.EdoConflict: "EDO*",
}

var codeToShift = func() map[string]model.ShiftKind {
	m := make(map[string]model.ShiftKind, len(shiftCode))
	for k, v := range shiftCode {
		m[v] = k
	}
	return m
}()

var scheduleHeader = []string{"name", "week", "day", "shift", "index"}

// WriteSchedule serialises a Schedule row-per-assignment, sorted by
// (week, day, shift, index, name) so the output is deterministic (P4/P5).
func WriteSchedule(w io.Writer, schedule *model.Schedule) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(scheduleHeader); err != nil {
		return errors.New(errors.CodeInternal, "failed to write schedule CSV header").WithCause(err)
	}

	rows := make([]model.Assignment, len(schedule.Assignments))
	copy(rows, schedule.Assignments)
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Position.Week != b.Position.Week {
			return a.Position.Week < b.Position.Week
		}
		if a.Position.Day != b.Position.Day {
			return a.Position.Day < b.Position.Day
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Person < b.Person
	})

	for _, a := range rows {
		code, ok := shiftCode[a.Shift]
		if !ok {
			return errors.New(errors.CodeInternal, fmt.Sprintf("unmapped shift kind %v in schedule", a.Shift))
		}
		record := []string{
			a.Person,
			strconv.Itoa(a.Position.Week),
			a.Position.Day.String(),
			code,
			strconv.Itoa(a.Index),
		}
		if err := writer.Write(record); err != nil {
			return errors.New(errors.CodeInternal, "failed to write schedule CSV row").WithCause(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.New(errors.CodeInternal, "failed to flush schedule CSV").WithCause(err)
	}
	return nil
}

// ReadSchedule parses a schedule CSV written by WriteSchedule back into a
// Schedule. horizon, edo and staffing are carried over from the caller
// since the CSV format only records assignments (spec.md §6.3, P5).
func ReadSchedule(r io.Reader, horizon model.Horizon, edo *model.EdoPlan, staffing *model.StaffingPlan, seed uint64) (*model.Schedule, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New(errors.CodeInputError, "schedule CSV has no header row").WithCause(err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}
	for _, required := range scheduleHeader {
		if _, ok := colIndex[required]; !ok {
			return nil, errors.New(errors.CodeInputError, fmt.Sprintf("schedule CSV missing required column %q", required))
		}
	}

	schedule := model.NewSchedule(horizon, edo, staffing, seed)

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(errors.CodeInputError, fmt.Sprintf("row %d: malformed CSV record", row)).WithCause(err)
		}
		row++

		name := record[colIndex["name"]]
		if name == "" {
			return nil, errors.InputError("name", fmt.Sprintf("row %d: empty name", row))
		}

		week, err := strconv.Atoi(record[colIndex["week"]])
		if err != nil {
			return nil, errors.InputError("week", fmt.Sprintf("row %d: invalid week %q", row, record[colIndex["week"]]))
		}

		day, err := model.ParseWeekday(record[colIndex["day"]])
		if err != nil {
			return nil, errors.InputError("day", fmt.Sprintf("row %d: %v", row, err))
		}

		code := record[colIndex["shift"]]
		shift, ok := codeToShift[code]
		if !ok {
			return nil, errors.InputError("shift", fmt.Sprintf("row %d: unknown shift code %q", row, code))
		}

		index, err := strconv.Atoi(record[colIndex["index"]])
		if err != nil {
			return nil, errors.InputError("index", fmt.Sprintf("row %d: invalid index %q", row, record[colIndex["index"]]))
		}

		schedule.Add(model.Assignment{
			Person:   name,
			Position: model.CalendarPosition{Week: week, Day: day},
			Shift:    shift,
			Index:    index,
		})
	}

	return schedule, nil
}
