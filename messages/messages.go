// Package messages defines every message a session store accepts.
//
// Completion messages are produced by workflows from remote results and
// carry the request token they were issued under. UI messages are the
// only kinds a client may dispatch directly; see Decode.
package messages

import "github.com/mmdatafocus/intake_backend/models"

type Message interface {
	Kind() string
	message()
}

// Completion is the shared shape of a screening-level remote result.
// Screening is meaningful only when OK is set.
type Completion struct {
	Screening models.ScreeningPayload `json:"screening"`
	OK        bool                    `json:"ok"`
	Err       *models.ErrorPayload    `json:"error,omitempty"`
	Request   uint64                  `json:"request,omitempty"`
}

type (
	FetchStarted    struct{}
	FetchCompleted  Completion
	CreateCompleted Completion
	SaveCompleted   Completion
	SubmitCompleted Completion
	Clear           struct{}
)

type AllegationsFetchCompleted struct {
	Allegations []models.AllegationPayload `json:"allegations"`
	OK          bool                       `json:"ok"`
	Err         *models.ErrorPayload       `json:"error,omitempty"`
	Request     uint64                     `json:"request,omitempty"`
}

type ParticipantDeleted struct {
	ID string `json:"id"`
}

type ParticipantDeleteFailed struct {
	ID  string               `json:"id"`
	Err *models.ErrorPayload `json:"error,omitempty"`
}

type RelationshipsFetchStarted struct{}

type RelationshipsFetchCompleted struct {
	People  []models.RelatedPerson `json:"people"`
	OK      bool                   `json:"ok"`
	Err     *models.ErrorPayload   `json:"error,omitempty"`
	Request uint64                 `json:"request,omitempty"`
}

type HistoryFetchStarted struct{}

type HistoryFetchCompleted struct {
	History models.HistoryOfInvolvement `json:"history"`
	OK      bool                        `json:"ok"`
	Err     *models.ErrorPayload        `json:"error,omitempty"`
	Request uint64                      `json:"request,omitempty"`
}

type SystemCodesFetchCompleted struct {
	Codes []models.SystemCode  `json:"codes"`
	OK    bool                 `json:"ok"`
	Err   *models.ErrorPayload `json:"error,omitempty"`
}

type AttachStarted struct {
	LegacyID string `json:"legacy_id" validate:"required"`
}

type AttachCompleted struct {
	LegacyID string               `json:"legacy_id"`
	OK       bool                 `json:"ok"`
	Err      *models.ErrorPayload `json:"error,omitempty"`
}

// UI kinds.

type FormFieldSet struct {
	Form  models.Card `json:"form" validate:"required"`
	Field string      `json:"field" validate:"required"`
	Value *string     `json:"value"`
}

type FormFieldTouched struct {
	Form  models.Card `json:"form" validate:"required"`
	Field string      `json:"field" validate:"required"`
}

type FormFieldsTouchedAll struct {
	Form models.Card `json:"form" validate:"required"`
}

type FormReset struct {
	Form models.Card `json:"form" validate:"required"`
}

type AllegationTypesSet struct {
	VictimID      string   `json:"victim_id" validate:"required"`
	PerpetratorID string   `json:"perpetrator_id" validate:"required,nefield=VictimID"`
	Types         []string `json:"allegation_types"`
}

type AllegationsFormReset struct{}

const (
	KindFetchStarted                = "fetch_started"
	KindFetchCompleted              = "fetch_completed"
	KindCreateCompleted             = "create_completed"
	KindSaveCompleted               = "save_completed"
	KindSubmitCompleted             = "submit_completed"
	KindAllegationsFetchCompleted   = "allegations_fetch_completed"
	KindClear                       = "clear"
	KindParticipantDeleted          = "participant_deleted"
	KindParticipantDeleteFailed     = "participant_delete_failed"
	KindRelationshipsFetchStarted   = "relationships_fetch_started"
	KindRelationshipsFetchCompleted = "relationships_fetch_completed"
	KindHistoryFetchStarted         = "history_fetch_started"
	KindHistoryFetchCompleted       = "history_fetch_completed"
	KindSystemCodesFetchCompleted   = "system_codes_fetch_completed"
	KindAttachStarted               = "attach_started"
	KindAttachCompleted             = "attach_completed"
	KindFormFieldSet                = "form_field_set"
	KindFormFieldTouched            = "form_field_touched"
	KindFormFieldsTouchedAll        = "form_fields_touched_all"
	KindFormReset                   = "form_reset"
	KindAllegationTypesSet          = "allegation_types_set"
	KindAllegationsFormReset        = "allegations_form_reset"
)

func (FetchStarted) Kind() string { return KindFetchStarted }
func (FetchCompleted) Kind() string { return KindFetchCompleted }
func (CreateCompleted) Kind() string { return KindCreateCompleted }
func (SaveCompleted) Kind() string { return KindSaveCompleted }
func (SubmitCompleted) Kind() string { return KindSubmitCompleted }
func (AllegationsFetchCompleted) Kind() string { return KindAllegationsFetchCompleted }
func (Clear) Kind() string { return KindClear }
func (ParticipantDeleted) Kind() string { return KindParticipantDeleted }
func (ParticipantDeleteFailed) Kind() string { return KindParticipantDeleteFailed }
func (RelationshipsFetchStarted) Kind() string { return KindRelationshipsFetchStarted }
func (RelationshipsFetchCompleted) Kind() string { return KindRelationshipsFetchCompleted }
func (HistoryFetchStarted) Kind() string { return KindHistoryFetchStarted }
func (HistoryFetchCompleted) Kind() string { return KindHistoryFetchCompleted }
func (SystemCodesFetchCompleted) Kind() string { return KindSystemCodesFetchCompleted }
func (AttachStarted) Kind() string { return KindAttachStarted }
func (AttachCompleted) Kind() string { return KindAttachCompleted }
func (FormFieldSet) Kind() string { return KindFormFieldSet }
func (FormFieldTouched) Kind() string { return KindFormFieldTouched }
func (FormFieldsTouchedAll) Kind() string { return KindFormFieldsTouchedAll }
func (FormReset) Kind() string { return KindFormReset }
func (AllegationTypesSet) Kind() string { return KindAllegationTypesSet }
func (AllegationsFormReset) Kind() string { return KindAllegationsFormReset }

func (FetchStarted) message() {}
func (FetchCompleted) message() {}
func (CreateCompleted) message() {}
func (SaveCompleted) message() {}
func (SubmitCompleted) message() {}
func (AllegationsFetchCompleted) message() {}
func (Clear) message() {}
func (ParticipantDeleted) message() {}
func (ParticipantDeleteFailed) message() {}
func (RelationshipsFetchStarted) message() {}
func (RelationshipsFetchCompleted) message() {}
func (HistoryFetchStarted) message() {}
func (HistoryFetchCompleted) message() {}
func (SystemCodesFetchCompleted) message() {}
func (AttachStarted) message() {}
func (AttachCompleted) message() {}
func (FormFieldSet) message() {}
func (FormFieldTouched) message() {}
func (FormFieldsTouchedAll) message() {}
func (FormReset) message() {}
func (AllegationTypesSet) message() {}
func (AllegationsFormReset) message() {}

// RequestOf returns the request token a completion was issued under, or 0.
func RequestOf(msg Message) uint64 {
	switch m := msg.(type) {
	case FetchCompleted:
		return m.Request
	case CreateCompleted:
		return m.Request
	case SaveCompleted:
		return m.Request
	case SubmitCompleted:
		return m.Request
	case AllegationsFetchCompleted:
		return m.Request
	case RelationshipsFetchCompleted:
		return m.Request
	case HistoryFetchCompleted:
		return m.Request
	}
	return 0
}
