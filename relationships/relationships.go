// Package relationships derives the relationships card from the related
// people of a screening.
package relationships

import (
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/utils"
)

// State is the relationships slice of a session.
type State struct {
	People      []models.RelatedPerson `json:"people"`
	FetchStatus models.FetchStatus     `json:"fetch_status"`
	LastRequest uint64                 `json:"-"`
}

func Empty() State {
	return State{People: []models.RelatedPerson{}, FetchStatus: models.FetchStatusUnstarted}
}

func Reduce(state State, msg messages.Message) State {
	switch m := msg.(type) {
	case messages.RelationshipsFetchStarted:
		state.FetchStatus = models.FetchStatusFetching
	case messages.RelationshipsFetchCompleted:
		if !m.OK || (m.Request != 0 && m.Request < state.LastRequest) {
			return state
		}
		state.People = append([]models.RelatedPerson{}, m.People...)
		state.FetchStatus = models.FetchStatusFetched
		if m.Request > state.LastRequest {
			state.LastRequest = m.Request
		}
	case messages.Clear:
		return Empty()
	}
	return state
}

// Person is a related person as displayed on the card.
type Person struct {
	LegacyID      string     `json:"legacy_id"`
	Name          string     `json:"name"`
	DateOfBirth   string     `json:"date_of_birth"`
	Gender        string     `json:"gender"`
	Age           *int       `json:"age"`
	AgeUnit       *string    `json:"age_unit"`
	Relationships []Relation `json:"relationships"`
}

type Relation struct {
	Name                  string                   `json:"name"`
	DateOfBirth           string                   `json:"date_of_birth"`
	Gender                *string                  `json:"gender"`
	Age                   *int                     `json:"related_person_age"`
	AgeUnit               *string                  `json:"related_person_age_unit"`
	Type                  string                   `json:"type"`
	TypeCode              *string                  `json:"type_code"`
	SecondaryRelationship string                   `json:"secondary_relationship"`
	AbsentParentCode      *string                  `json:"absent_parent_code"`
	SameHomeCode          *string                  `json:"same_home_code"`
	LegacyDescriptor      *models.LegacyDescriptor `json:"legacy_descriptor"`
	PersonCardExists      bool                     `json:"person_card_exists"`
	Attachable            bool                     `json:"attachable"`
}

// People builds the card view. pending lists legacy ids being attached.
func People(participants []models.Participant, people []models.RelatedPerson, codes []models.SystemCode, pending []string) []Person {
	out := make([]Person, 0, len(people))
	for _, p := range people {
		person := Person{
			LegacyID:      p.LegacyID,
			Name:          models.FormatName(p.FirstName, p.MiddleName, p.LastName, p.NameSuffix),
			DateOfBirth:   utils.FormatDate(p.DateOfBirth),
			Gender:        deref(p.Gender),
			Age:           p.Age,
			AgeUnit:       p.AgeUnit,
			Relationships: make([]Relation, 0, len(p.Relationships)),
		}
		for _, r := range p.Relationships {
			exists := PersonCardExists(participants, r)
			person.Relationships = append(person.Relationships, Relation{
				Name:                  models.FormatName(r.RelatedPersonFirstName, r.RelatedPersonMiddleName, r.RelatedPersonLastName, r.RelatedPersonNameSuffix),
				DateOfBirth:           utils.FormatDate(r.RelatedPersonDateOfBirth),
				Gender:                r.RelatedPersonGender,
				Age:                   r.RelatedPersonAge,
				AgeUnit:               r.RelatedPersonAgeUnit,
				Type:                  DisplayValue(r.IndexedPersonRelationship, codes),
				TypeCode:              r.IndexedPersonRelationship,
				SecondaryRelationship: DisplayValue(r.RelatedPersonRelationship, codes),
				AbsentParentCode:      r.AbsentParentCode,
				SameHomeCode:          r.SameHomeCode,
				LegacyDescriptor:      r.LegacyDescriptor,
				PersonCardExists:      exists,
				Attachable:            exists && !IsPending(r, pending),
			})
		}
		out = append(out, person)
	}
	return out
}

// PersonCardExists is true when the related person could still be added
// as a participant: there are no participants, the relationship has no
// legacy descriptor, or no participant shares its legacy id.
func PersonCardExists(participants []models.Participant, r models.Relationship) bool {
	if len(participants) == 0 || r.LegacyDescriptor == nil {
		return true
	}
	for _, p := range participants {
		if p.KnownLegacyID() == r.LegacyDescriptor.LegacyID {
			return false
		}
	}
	return true
}

func IsPending(r models.Relationship, pending []string) bool {
	if r.LegacyDescriptor == nil {
		return false
	}
	return utils.Contains(pending, r.LegacyDescriptor.LegacyID)
}

// DisplayValue looks a code up in the system codes. Unknown or missing
// codes display as "".
func DisplayValue(code *string, codes []models.SystemCode) string {
	if code == nil {
		return ""
	}
	for _, c := range codes {
		if c.Code == *code {
			return c.Value
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
