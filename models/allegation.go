package models

// Allegation is the normalized form: string ids, ordered type codes.
// ID is nil until the allegation has been persisted.
type Allegation struct {
	ID              *string  `json:"id"`
	VictimID        string   `json:"victim_id"`
	PerpetratorID   string   `json:"perpetrator_id"`
	AllegationTypes []string `json:"allegation_types"`
}

// Matches reports whether a belongs to the given victim/perpetrator pair.
func (a Allegation) Matches(victimID, perpetratorID string) bool {
	return a.VictimID == victimID && a.PerpetratorID == perpetratorID
}

// AllegationPayload is the FERB wire shape of an allegation.
type AllegationPayload struct {
	ID                  *ID      `json:"id"`
	ScreeningID         ID       `json:"screening_id,omitempty"`
	VictimPersonID      ID       `json:"victim_person_id"`
	PerpetratorPersonID ID       `json:"perpetrator_person_id"`
	Types               []string `json:"types"`
}
