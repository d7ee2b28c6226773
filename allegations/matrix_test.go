package allegations

import (
	"reflect"
	"testing"

	"github.com/mmdatafocus/intake_backend/models"
)

func str(s string) *string { return &s }

func participant(id, first string, roles ...string) models.Participant {
	return models.Participant{ID: models.ID(id), FirstName: str(first), LastName: str("Doe"), Roles: roles}
}

func TestBuildMatrix_SortsPairsAndShowsVictimNameOnce(t *testing.T) {
	participants := []models.Participant{
		participant("1", "Zed", models.RoleVictim),
		participant("2", "Amy", models.RoleVictim),
		participant("3", "Yul", models.RolePerpetrator),
		participant("4", "Bob", models.RolePerpetrator),
		participant("5", "Cal", models.RoleMandatedReporter),
	}
	rows := BuildMatrix(participants, nil)

	expected := []struct {
		victim, perpetrator string
		show                bool
	}{
		{"2", "4", true},
		{"2", "3", false},
		{"1", "4", true},
		{"1", "3", false},
	}
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
	}
	for i, e := range expected {
		r := rows[i]
		if r.VictimID != e.victim || r.PerpetratorID != e.perpetrator || r.ShowVictimName != e.show {
			t.Fatalf("row %d: expected %+v, got %+v", i, e, r)
		}
		if r.ID != nil || len(r.AllegationTypes) != 0 || r.AllegationTypes == nil {
			t.Fatalf("row %d: expected empty non-nil types and no id, got %+v", i, r)
		}
	}
	if rows[0].VictimName != "Amy Doe" || rows[0].PerpetratorName != "Bob Doe" {
		t.Fatalf("unexpected names %q %q", rows[0].VictimName, rows[0].PerpetratorName)
	}
}

func TestBuildMatrix_SkipsSelfPairs(t *testing.T) {
	participants := []models.Participant{
		participant("1", "Ann", models.RoleVictim, models.RolePerpetrator),
		participant("2", "Ben", models.RolePerpetrator),
	}
	rows := BuildMatrix(participants, nil)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].VictimID != "1" || rows[0].PerpetratorID != "2" || !rows[0].ShowVictimName {
		t.Fatalf("unexpected row %+v", rows[0])
	}

	alone := BuildMatrix(participants[:1], nil)
	if len(alone) != 0 {
		t.Fatalf("a sole victim-perpetrator has no pairs, got %d", len(alone))
	}
}

func TestBuildMatrix_CopiesMatchingAllegation(t *testing.T) {
	participants := []models.Participant{
		participant("1", "Ann", models.RoleVictim),
		participant("2", "Ben", models.RolePerpetrator),
	}
	persisted := []models.Allegation{{ID: str("9"), VictimID: "1", PerpetratorID: "2", AllegationTypes: []string{"General neglect"}}}

	rows := BuildMatrix(participants, persisted)
	if rows[0].ID == nil || *rows[0].ID != "9" {
		t.Fatalf("expected allegation id 9")
	}
	rows[0].AllegationTypes[0] = "changed"
	if persisted[0].AllegationTypes[0] != "General neglect" {
		t.Fatalf("matrix shares storage with allegations")
	}
}

func TestSummary_OneRowPerType(t *testing.T) {
	participants := []models.Participant{
		participant("1", "Ann", models.RoleVictim),
		participant("2", "Ben", models.RolePerpetrator),
	}
	persisted := []models.Allegation{
		{VictimID: "1", PerpetratorID: "2", AllegationTypes: []string{"a", "b"}},
		{VictimID: "1", PerpetratorID: "gone", AllegationTypes: []string{"c"}},
	}
	rows := Summary(participants, persisted)
	if len(rows) != 2 || rows[0].AllegationType != "a" || rows[1].AllegationType != "b" {
		t.Fatalf("unexpected summary %+v", rows)
	}
	if len(Summary(nil, nil)) != 0 {
		t.Fatalf("expected empty summary")
	}
}

func TestSetTypes_ReplacesOrAppends(t *testing.T) {
	draft := []models.Allegation{{ID: str("9"), VictimID: "1", PerpetratorID: "2", AllegationTypes: []string{"a"}}}

	replaced := SetTypes(draft, "1", "2", []string{"b", "c"})
	if !reflect.DeepEqual(replaced[0].AllegationTypes, []string{"b", "c"}) || *replaced[0].ID != "9" {
		t.Fatalf("unexpected replacement %+v", replaced[0])
	}
	if !reflect.DeepEqual(draft[0].AllegationTypes, []string{"a"}) {
		t.Fatalf("SetTypes mutated its input")
	}

	appended := SetTypes(draft, "1", "3", []string{"x"})
	if len(appended) != 2 {
		t.Fatalf("expected appended allegation, got %d", len(appended))
	}
	if appended[1].ID != nil || appended[1].VictimID != "1" || appended[1].PerpetratorID != "3" {
		t.Fatalf("unexpected new allegation %+v", appended[1])
	}
}

func TestForSubmissionAndErrors(t *testing.T) {
	draft := []models.Allegation{
		{VictimID: "1", PerpetratorID: "2", AllegationTypes: []string{}},
		{VictimID: "1", PerpetratorID: "3", AllegationTypes: []string{"a"}},
	}
	if got := ForSubmission(draft); len(got) != 1 || got[0].PerpetratorID != "3" {
		t.Fatalf("unexpected submission list %+v", got)
	}

	promote := str(DecisionPromoteToReferral)
	if errs := Errors(draft, promote); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := Errors(draft[:1], promote); len(errs) != 1 || errs[0] != ErrRequiredForReferral {
		t.Fatalf("expected required error, got %v", errs)
	}
	if errs := Errors(nil, str("screen_out")); len(errs) != 0 {
		t.Fatalf("allegations are only required for referrals, got %v", errs)
	}
}
