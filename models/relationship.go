package models

import "encoding/json"

// RelatedPerson is a participant as known to the legacy system together
// with everyone they are related to.
type RelatedPerson struct {
	ID            ID             `json:"id"`
	LegacyID      string         `json:"legacy_id,omitempty"`
	FirstName     *string        `json:"first_name"`
	MiddleName    *string        `json:"middle_name"`
	LastName      *string        `json:"last_name"`
	NameSuffix    *string        `json:"name_suffix"`
	DateOfBirth   *string        `json:"date_of_birth"`
	Gender        *string        `json:"gender"`
	Age           *int           `json:"age"`
	AgeUnit       *string        `json:"age_unit"`
	Relationships []Relationship `json:"relationships"`
}

type Relationship struct {
	RelatedPersonFirstName    *string           `json:"related_person_first_name"`
	RelatedPersonMiddleName   *string           `json:"related_person_middle_name"`
	RelatedPersonLastName     *string           `json:"related_person_last_name"`
	RelatedPersonNameSuffix   *string           `json:"related_person_name_suffix"`
	RelatedPersonGender       *string           `json:"related_person_gender"`
	RelatedPersonDateOfBirth  *string           `json:"related_person_date_of_birth"`
	RelatedPersonAge          *int              `json:"related_person_age"`
	RelatedPersonAgeUnit      *string           `json:"related_person_age_unit"`
	IndexedPersonRelationship *string           `json:"indexed_person_relationship"`
	RelatedPersonRelationship *string           `json:"related_person_relationship"`
	RelationshipContext       *string           `json:"relationship_context"`
	AbsentParentCode          *string           `json:"absent_parent_code"`
	SameHomeCode              *string           `json:"same_home_code"`
	LegacyDescriptor          *LegacyDescriptor `json:"legacy_descriptor"`
}

// SystemCode maps a legacy code to its display value.
type SystemCode struct {
	Code     string `json:"code"`
	Value    string `json:"value"`
	Category string `json:"category,omitempty"`
}

// HistoryOfInvolvement is kept opaque; the backend only stores and serves it.
type HistoryOfInvolvement struct {
	Cases      []json.RawMessage `json:"cases"`
	Referrals  []json.RawMessage `json:"referrals"`
	Screenings []json.RawMessage `json:"screenings"`
}

// ErrorPayload is a failed remote call as recorded in the error notices.
// Body is the remote response passed through unmodified.
type ErrorPayload struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
}
