package allegations

import (
	"github.com/mmdatafocus/intake_backend/models"
)

const DecisionPromoteToReferral = "promote_to_referral"

const ErrRequiredForReferral = "Any report that is promoted for referral must include at least one allegation."

// SetTypes returns a copy of allegations with the types of the pair
// replaced, appending a new unsaved allegation when the pair has none.
func SetTypes(allegations []models.Allegation, victimID, perpetratorID string, types []string) []models.Allegation {
	out := Copy(allegations)
	for i := range out {
		if out[i].Matches(victimID, perpetratorID) {
			out[i].AllegationTypes = copyTypes(types)
			return out
		}
	}
	return append(out, models.Allegation{
		ID:              nil,
		VictimID:        victimID,
		PerpetratorID:   perpetratorID,
		AllegationTypes: copyTypes(types),
	})
}

// ForSubmission drops allegations without any type.
func ForSubmission(allegations []models.Allegation) []models.Allegation {
	out := make([]models.Allegation, 0, len(allegations))
	for _, a := range allegations {
		if len(a.AllegationTypes) > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Required reports whether the screening decision demands allegations.
func Required(decision *string) bool {
	return decision != nil && *decision == DecisionPromoteToReferral
}

// Errors validates the allegations that would be submitted.
func Errors(allegations []models.Allegation, decision *string) []string {
	if Required(decision) && len(ForSubmission(allegations)) == 0 {
		return []string{ErrRequiredForReferral}
	}
	return []string{}
}

// Copy deep-copies an allegation list so drafts never share storage with
// the persisted screening.
func Copy(allegations []models.Allegation) []models.Allegation {
	out := make([]models.Allegation, len(allegations))
	for i, a := range allegations {
		out[i] = a
		if a.ID != nil {
			id := *a.ID
			out[i].ID = &id
		}
		out[i].AllegationTypes = copyTypes(a.AllegationTypes)
	}
	return out
}

func copyTypes(types []string) []string {
	out := make([]string, len(types))
	copy(out, types)
	return out
}
