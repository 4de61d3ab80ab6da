package boundary

import (
	"strings"
	"testing"

	"github.com/paiban/rotaengine/pkg/model"
)

func TestReadTeam_Basic(t *testing.T) {
	csv := "name,workdays_per_week,prefers_night,no_evening,edo_eligible,is_contractor,available_weekends,max_nights,edo_fixed_day,team\n" +
		"Alice,4,1,0,1,0,1,3,Lun,A\n" +
		"Bob,5,0,0,0,1,0,,,B\n"

	team, err := ReadTeam(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadTeam: %v", err)
	}
	if team.Len() != 2 {
		t.Fatalf("expected 2 people, got %d", team.Len())
	}

	alice, ok := team.Get("Alice")
	if !ok {
		t.Fatal("Alice not found")
	}
	if alice.WorkdaysPerWeek != 4 || !alice.PrefersNight || !alice.EdoEligible || alice.MaxNights != 3 {
		t.Fatalf("Alice parsed incorrectly: %+v", alice)
	}
	if alice.EdoFixedDay == nil || *alice.EdoFixedDay != model.Mon {
		t.Fatalf("Alice edo_fixed_day not parsed: %+v", alice)
	}

	bob, ok := team.Get("Bob")
	if !ok {
		t.Fatal("Bob not found")
	}
	if !bob.IsContractor || bob.AvailableWeekends {
		t.Fatalf("Bob parsed incorrectly: %+v", bob)
	}
}

func TestReadTeam_MissingNameColumn(t *testing.T) {
	csv := "workdays_per_week\n4\n"
	if _, err := ReadTeam(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing name column")
	}
}

func TestReadTeam_DuplicateName(t *testing.T) {
	csv := "name\nAlice\nAlice\n"
	if _, err := ReadTeam(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}

func TestReadTeam_InvalidNumericToken(t *testing.T) {
	csv := "name,workdays_per_week\nAlice,not-a-number\n"
	if _, err := ReadTeam(strings.NewReader(csv)); err == nil {
		t.Fatal("expected loud error for invalid numeric token")
	}
}

func TestReadTeam_EmptyName(t *testing.T) {
	csv := "name\n\n"
	if _, err := ReadTeam(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for empty name")
	}
}
