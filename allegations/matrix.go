// Package allegations builds the victim by perpetrator matrix and edits
// the draft allegation list of the allegations card.
package allegations

import (
	"sort"

	"github.com/mmdatafocus/intake_backend/models"
)

// Row is one victim/perpetrator pair of the edit matrix. ID is the id of
// the persisted allegation for the pair, if any, and is never edited.
type Row struct {
	ID              *string  `json:"id"`
	VictimID        string   `json:"victim_id"`
	VictimName      string   `json:"victim_name"`
	ShowVictimName  bool     `json:"show_victim_name"`
	PerpetratorID   string   `json:"perpetrator_id"`
	PerpetratorName string   `json:"perpetrator_name"`
	AllegationTypes []string `json:"allegation_types"`
}

// BuildMatrix returns exactly one row per pair of distinct participants
// holding the victim and perpetrator roles, ordered by victim name then
// perpetrator name. Rows without a matching allegation carry no types.
func BuildMatrix(participants []models.Participant, allegations []models.Allegation) []Row {
	victims := withRole(participants, models.RoleVictim)
	perpetrators := withRole(participants, models.RolePerpetrator)

	rows := make([]Row, 0, len(victims)*len(perpetrators))
	for _, v := range victims {
		first := true
		for _, p := range perpetrators {
			if v.ID == p.ID {
				continue
			}
			row := Row{
				VictimID:        string(v.ID),
				VictimName:      v.DisplayName(),
				ShowVictimName:  first,
				PerpetratorID:   string(p.ID),
				PerpetratorName: p.DisplayName(),
				AllegationTypes: []string{},
			}
			if a, ok := find(allegations, row.VictimID, row.PerpetratorID); ok {
				row.ID = a.ID
				row.AllegationTypes = append(row.AllegationTypes, a.AllegationTypes...)
			}
			rows = append(rows, row)
			first = false
		}
	}
	return rows
}

// SummaryRow is one allegation type of the read-only allegations card.
type SummaryRow struct {
	VictimID        string `json:"victim_id"`
	VictimName      string `json:"victim_name"`
	PerpetratorID   string `json:"perpetrator_id"`
	PerpetratorName string `json:"perpetrator_name"`
	AllegationType  string `json:"allegation_type"`
}

// Summary lists one row per allegation type. Allegations whose victim or
// perpetrator no longer holds that role are left out.
func Summary(participants []models.Participant, allegations []models.Allegation) []SummaryRow {
	rows := []SummaryRow{}
	for _, row := range BuildMatrix(participants, allegations) {
		for _, t := range row.AllegationTypes {
			rows = append(rows, SummaryRow{
				VictimID:        row.VictimID,
				VictimName:      row.VictimName,
				PerpetratorID:   row.PerpetratorID,
				PerpetratorName: row.PerpetratorName,
				AllegationType:  t,
			})
		}
	}
	return rows
}

func withRole(participants []models.Participant, role string) []models.Participant {
	out := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.HasRole(role) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}

func find(allegations []models.Allegation, victimID, perpetratorID string) (models.Allegation, bool) {
	for _, a := range allegations {
		if a.Matches(victimID, perpetratorID) {
			return a, true
		}
	}
	return models.Allegation{}, false
}
