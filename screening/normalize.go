package screening

import (
	"github.com/mmdatafocus/intake_backend/allegations"
	"github.com/mmdatafocus/intake_backend/models"
)

// Normalize converts a FERB screening into the shape held in state:
// incident_address becomes address with all four keys, allegations get
// string ids and the allegation_types name.
func Normalize(p models.ScreeningPayload) models.Screening {
	s := models.Screening{
		ID:                      string(p.ID),
		ReferralID:              p.ReferralID,
		Name:                    p.Name,
		Reference:               p.Reference,
		Assignee:                p.Assignee,
		ReportType:              p.ReportType,
		CommunicationMethod:     p.CommunicationMethod,
		StartedAt:               p.StartedAt,
		EndedAt:                 p.EndedAt,
		ReportNarrative:         p.ReportNarrative,
		IncidentDate:            p.IncidentDate,
		IncidentCounty:          p.IncidentCounty,
		LocationType:            p.LocationType,
		ScreeningDecision:       p.ScreeningDecision,
		ScreeningDecisionDetail: p.ScreeningDecisionDetail,
		AdditionalInformation:   p.AdditionalInformation,
		SafetyInformation:       p.SafetyInformation,
		SafetyAlerts:            append([]string{}, p.SafetyAlerts...),
		CrossReports:            append([]models.CrossReport{}, p.CrossReports...),
		Participants:            append([]models.Participant{}, p.Participants...),
		Allegations:             NormalizeAllegations(p.Allegations),
	}
	if p.IncidentAddress != nil {
		s.Address = *p.IncidentAddress
	}
	return s
}

func NormalizeAllegations(raw []models.AllegationPayload) []models.Allegation {
	out := make([]models.Allegation, 0, len(raw))
	for _, a := range raw {
		out = append(out, models.Allegation{
			ID:              a.ID.Ptr(),
			VictimID:        string(a.VictimPersonID),
			PerpetratorID:   string(a.PerpetratorPersonID),
			AllegationTypes: append([]string{}, a.Types...),
		})
	}
	return out
}

// ToPayload is the inverse of Normalize used for create, save and submit.
// Allegations without types are not sent.
func ToPayload(s models.Screening) models.ScreeningPayload {
	address := s.Address
	p := models.ScreeningPayload{
		ID:                      models.ID(s.ID),
		ReferralID:              s.ReferralID,
		Name:                    s.Name,
		Reference:               s.Reference,
		Assignee:                s.Assignee,
		ReportType:              s.ReportType,
		CommunicationMethod:     s.CommunicationMethod,
		StartedAt:               s.StartedAt,
		EndedAt:                 s.EndedAt,
		ReportNarrative:         s.ReportNarrative,
		IncidentDate:            s.IncidentDate,
		IncidentCounty:          s.IncidentCounty,
		LocationType:            s.LocationType,
		IncidentAddress:         &address,
		ScreeningDecision:       s.ScreeningDecision,
		ScreeningDecisionDetail: s.ScreeningDecisionDetail,
		AdditionalInformation:   s.AdditionalInformation,
		SafetyInformation:       s.SafetyInformation,
		SafetyAlerts:            append([]string{}, s.SafetyAlerts...),
		CrossReports:            append([]models.CrossReport{}, s.CrossReports...),
		Participants:            append([]models.Participant{}, s.Participants...),
		Allegations:             []models.AllegationPayload{},
	}
	for _, a := range allegations.ForSubmission(s.Allegations) {
		var id *models.ID
		if a.ID != nil {
			v := models.ID(*a.ID)
			id = &v
		}
		p.Allegations = append(p.Allegations, models.AllegationPayload{
			ID:                  id,
			ScreeningID:         models.ID(s.ID),
			VictimPersonID:      models.ID(a.VictimID),
			PerpetratorPersonID: models.ID(a.PerpetratorID),
			Types:               append([]string{}, a.AllegationTypes...),
		})
	}
	return p
}
