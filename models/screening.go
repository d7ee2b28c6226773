package models

type FetchStatus string

const (
	FetchStatusUnstarted FetchStatus = "UNSTARTED"
	FetchStatusFetching  FetchStatus = "FETCHING"
	FetchStatusFetched   FetchStatus = "FETCHED"
)

// Address always carries all four keys; a nil field encodes as null.
type Address struct {
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zip           *string `json:"zip"`
}

type Agency struct {
	ID   ID     `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
	Type string `json:"type"`
}

type CrossReport struct {
	CountyID   string   `json:"county_id"`
	InformDate *string  `json:"inform_date,omitempty"`
	Method     *string  `json:"method,omitempty"`
	Agencies   []Agency `json:"agencies"`
}

// Screening is the normalized intake record held while a worker edits it.
type Screening struct {
	ID                      string        `json:"id,omitempty"`
	ReferralID              *string       `json:"referral_id,omitempty"`
	Name                    *string       `json:"name"`
	Reference               *string       `json:"reference"`
	Assignee                *string       `json:"assignee"`
	ReportType              *string       `json:"report_type"`
	CommunicationMethod     *string       `json:"communication_method"`
	StartedAt               *string       `json:"started_at"`
	EndedAt                 *string       `json:"ended_at"`
	ReportNarrative         *string       `json:"report_narrative"`
	IncidentDate            *string       `json:"incident_date"`
	IncidentCounty          *string       `json:"incident_county"`
	LocationType            *string       `json:"location_type"`
	Address                 Address       `json:"address"`
	ScreeningDecision       *string       `json:"screening_decision"`
	ScreeningDecisionDetail *string       `json:"screening_decision_detail"`
	AdditionalInformation   *string       `json:"additional_information"`
	SafetyInformation       *string       `json:"safety_information"`
	SafetyAlerts            []string      `json:"safety_alerts"`
	CrossReports            []CrossReport `json:"cross_reports"`
	Participants            []Participant `json:"participants"`
	Allegations             []Allegation  `json:"allegations"`
}

// ReadOnly reports whether the screening was already promoted to a referral.
func (s Screening) ReadOnly() bool {
	return s.ReferralID != nil && *s.ReferralID != ""
}

// Participant looks a participant up by id.
func (s Screening) Participant(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if string(p.ID) == id {
			return p, true
		}
	}
	return Participant{}, false
}

// ScreeningPayload is the FERB wire shape of a screening.
type ScreeningPayload struct {
	ID                      ID                  `json:"id"`
	ReferralID              *string             `json:"referral_id,omitempty"`
	Name                    *string             `json:"name"`
	Reference               *string             `json:"reference"`
	Assignee                *string             `json:"assignee"`
	ReportType              *string             `json:"report_type"`
	CommunicationMethod     *string             `json:"communication_method"`
	StartedAt               *string             `json:"started_at"`
	EndedAt                 *string             `json:"ended_at"`
	ReportNarrative         *string             `json:"report_narrative"`
	IncidentDate            *string             `json:"incident_date"`
	IncidentCounty          *string             `json:"incident_county"`
	LocationType            *string             `json:"location_type"`
	IncidentAddress         *Address            `json:"incident_address"`
	ScreeningDecision       *string             `json:"screening_decision"`
	ScreeningDecisionDetail *string             `json:"screening_decision_detail"`
	AdditionalInformation   *string             `json:"additional_information"`
	SafetyInformation       *string             `json:"safety_information"`
	SafetyAlerts            []string            `json:"safety_alerts"`
	CrossReports            []CrossReport       `json:"cross_reports"`
	Participants            []Participant       `json:"participants"`
	Allegations             []AllegationPayload `json:"allegations"`
}
