package store

import (
	"time"

	"github.com/mmdatafocus/intake_backend/allegations"
	"github.com/mmdatafocus/intake_backend/forms"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/relationships"
	"github.com/mmdatafocus/intake_backend/utils"
)

const RelationshipTypeCategory = "relationship_type"

type AllegationsView struct {
	Rows     []allegations.Row        `json:"rows"`
	Summary  []allegations.SummaryRow `json:"summary"`
	Required bool                     `json:"required"`
	Errors   []string                 `json:"errors"`
}

// Allegations builds the edit matrix from the draft and the summary from
// the persisted allegations.
func (s State) Allegations() AllegationsView {
	persisted := s.Screening.Screening
	return AllegationsView{
		Rows:     allegations.BuildMatrix(persisted.Participants, s.AllegationsForm),
		Summary:  allegations.Summary(persisted.Participants, persisted.Allegations),
		Required: allegations.Required(persisted.ScreeningDecision),
		Errors:   allegations.Errors(s.AllegationsForm, persisted.ScreeningDecision),
	}
}

func (s State) People() []relationships.Person {
	return relationships.People(
		s.Screening.Participants,
		s.Relationships.People,
		s.RelationshipTypes(),
		s.PendingPeople,
	)
}

func (s State) RelationshipTypes() []models.SystemCode {
	out := make([]models.SystemCode, 0, len(s.SystemCodes))
	for _, c := range s.SystemCodes {
		if c.Category == "" || c.Category == RelationshipTypeCategory {
			out = append(out, c)
		}
	}
	return out
}

// VisibleErrors returns the touched-field errors of every card form.
func (s State) VisibleErrors(now time.Time) map[models.Card]map[string][]string {
	out := make(map[models.Card]map[string][]string, len(s.Forms))
	for card, form := range s.Forms {
		out[card] = forms.VisibleErrors(card, form, now)
	}
	return out
}

// ReadOnly reports whether the loaded screening can no longer be edited.
func (s State) ReadOnly() bool {
	return s.Screening.ReadOnly()
}

// ParticipantView is a participant card as displayed.
type ParticipantView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Roles        []string `json:"roles"`
	LegacyID     string   `json:"legacy_id"`
	DateOfBirth  string   `json:"date_of_birth"`
	PhoneNumbers []string `json:"phone_numbers"`
}

func (s State) Participants() []ParticipantView {
	out := make([]ParticipantView, 0, len(s.Screening.Participants))
	for _, p := range s.Screening.Participants {
		phones := make([]string, 0, len(p.PhoneNumbers))
		for _, n := range p.PhoneNumbers {
			phones = append(phones, utils.FormatPhoneNumber(n.Number, utils.CountryCode))
		}
		out = append(out, ParticipantView{
			ID:           string(p.ID),
			Name:         p.DisplayName(),
			Roles:        append([]string{}, p.Roles...),
			LegacyID:     p.KnownLegacyID(),
			DateOfBirth:  utils.FormatDate(p.DateOfBirth),
			PhoneNumbers: phones,
		})
	}
	return out
}
