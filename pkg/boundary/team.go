// Package boundary implements the CSV ingestion and serialisation formats
// named in spec.md §6.2/§6.3. No CSV library exists anywhere in the
// retrieved corpus (see DESIGN.md), so this package is stdlib-only
// (encoding/csv).
package boundary

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paiban/rotaengine/pkg/errors"
	"github.com/paiban/rotaengine/pkg/model"
)

// requiredColumn is the one column every team CSV must carry.
const requiredColumn = "name"

// numericColumns are 0/1-encoded booleans or small integers; invalid
// tokens fail loudly with the offending value and row index (spec.md
// §6.2), replacing the legacy's silent fallback.
var numericColumns = []string{
	"workdays_per_week", "weeks_pattern", "prefers_night", "no_evening",
	"edo_eligible", "is_contractor", "available_weekends",
}

// ReadTeam parses a team CSV per spec.md §6.2 and returns a validated
// Team. Duplicate names and malformed numeric tokens are reported with
// row index and offending value, never silently coerced.
func ReadTeam(r io.Reader) (*model.Team, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New(errors.CodeInputError, "team CSV has no header row").WithCause(err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	if _, ok := colIndex[requiredColumn]; !ok {
		return nil, errors.New(errors.CodeInputError, "team CSV missing required column \"name\"")
	}

	var people []model.Person
	seen := make(map[string]int)
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

		name := field(record, colIndex, "name")
		if name == "" {
			return nil, errors.InputError("name", fmt.Sprintf("row %d: empty name", row))
		}
		if firstRow, dup := seen[name]; dup {
			return nil, errors.New(errors.CodeInputError, fmt.Sprintf("duplicate name %q at rows %d and %d", name, firstRow, row))
		}
		seen[name] = row

		p := model.Person{Name: name}

		for _, col := range numericColumns {
			idx, present := colIndex[col]
			if !present {
				continue
			}
			raw := strings.TrimSpace(record[idx])
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.InputError(col, fmt.Sprintf("row %d: invalid numeric token %q", row, raw))
			}
			switch col {
			case "workdays_per_week":
				p.WorkdaysPerWeek = n
			case "prefers_night":
				p.PrefersNight = n != 0
			case "no_evening":
				p.NoEvening = n != 0
			case "edo_eligible":
				p.EdoEligible = n != 0
			case "is_contractor":
				p.IsContractor = n != 0
			case "available_weekends":
				p.AvailableWeekends = n != 0
			}
		}

		if idx, present := colIndex["max_nights"]; present {
			raw := strings.TrimSpace(record[idx])
			if raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return nil, errors.InputError("max_nights", fmt.Sprintf("row %d: invalid numeric token %q", row, raw))
				}
				p.MaxNights = uint32(n)
			}
		}

		if idx, present := colIndex["edo_fixed_day"]; present {
			raw := strings.TrimSpace(record[idx])
			if raw != "" {
				day, err := model.ParseWeekday(raw)
				if err != nil {
					return nil, errors.InputError("edo_fixed_day", fmt.Sprintf("row %d: %v", row, err))
				}
				p.EdoFixedDay = &day
			}
		}

		if idx, present := colIndex["team"]; present {
			p.Team = strings.TrimSpace(record[idx])
		}

		people = append(people, p)
	}

	team, err := model.NewTeam(people)
	if err != nil {
		return nil, errors.New(errors.CodeInputError, err.Error())
	}
	return team, nil
}

func field(record []string, colIndex map[string]int, name string) string {
	idx, ok := colIndex[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
