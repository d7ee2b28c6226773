package models

const (
	RoleVictim              = "Victim"
	RolePerpetrator         = "Perpetrator"
	RoleAnonymousReporter   = "Anonymous Reporter"
	RoleMandatedReporter    = "Mandated Reporter"
	RoleNonMandatedReporter = "Non-mandated Reporter"
)

type LegacyDescriptor struct {
	LegacyID        string `json:"legacy_id"`
	LegacyTableName string `json:"legacy_table_name,omitempty"`
	LegacyUIID      string `json:"legacy_ui_id,omitempty"`
}

type PhoneNumber struct {
	ID     ID     `json:"id,omitempty"`
	Number string `json:"number"`
	Type   string `json:"type,omitempty"`
}

type Participant struct {
	ID               ID                `json:"id"`
	ScreeningID      ID                `json:"screening_id,omitempty"`
	LegacyID         string            `json:"legacy_id,omitempty"`
	LegacyDescriptor *LegacyDescriptor `json:"legacy_descriptor,omitempty"`
	FirstName        *string           `json:"first_name"`
	MiddleName       *string           `json:"middle_name"`
	LastName         *string           `json:"last_name"`
	NameSuffix       *string           `json:"name_suffix"`
	DateOfBirth      *string           `json:"date_of_birth"`
	Gender           *string           `json:"gender"`
	Roles            []string          `json:"roles"`
	PhoneNumbers     []PhoneNumber     `json:"phone_numbers,omitempty"`
}

func (p Participant) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// KnownLegacyID prefers the flat legacy_id and falls back to the descriptor.
func (p Participant) KnownLegacyID() string {
	if p.LegacyID != "" {
		return p.LegacyID
	}
	if p.LegacyDescriptor != nil {
		return p.LegacyDescriptor.LegacyID
	}
	return ""
}

// NewParticipant is the body used to attach a known person to a screening.
type NewParticipant struct {
	ScreeningID      string           `json:"screening_id" validate:"required"`
	LegacyDescriptor LegacyDescriptor `json:"legacy_descriptor"`
}
