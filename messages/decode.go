package messages

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/utils"
)

var (
	ErrUnknownKind    = errors.New("unknown message type")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Envelope is the wire form of a dispatched UI message.
type Envelope struct {
	Type    string          `json:"type" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}

var uiDecoders = map[string]func(json.RawMessage) (Message, error){
	KindFormFieldSet:         decodeInto[FormFieldSet],
	KindFormFieldTouched:     decodeInto[FormFieldTouched],
	KindFormFieldsTouchedAll: decodeInto[FormFieldsTouchedAll],
	KindFormReset:            decodeInto[FormReset],
	KindAllegationTypesSet:   decodeInto[AllegationTypesSet],
	KindAllegationsFormReset: decodeInto[AllegationsFormReset],
}

// Decode turns a client envelope into a UI message. Completion kinds and
// anything else a client must not forge are rejected with ErrUnknownKind.
func Decode(env Envelope) (Message, error) {
	if err := utils.ValidateStruct(env); err != nil {
		return nil, err
	}
	decode, ok := uiDecoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
	return decode(env.Payload)
}

func decodeInto[T Message](raw json.RawMessage) (Message, error) {
	var m T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if err := utils.ValidateStruct(m); err != nil {
		return nil, err
	}
	if err := checkForm(m); err != nil {
		return nil, err
	}
	return m, nil
}

func checkForm(m Message) error {
	var form models.Card
	switch v := m.(type) {
	case FormFieldSet:
		form = v.Form
	case FormFieldTouched:
		form = v.Form
	case FormFieldsTouchedAll:
		form = v.Form
	case FormReset:
		form = v.Form
	default:
		return nil
	}
	if !form.IsValid() || form == models.CardAllegations {
		return fmt.Errorf("%w: unknown form %q", ErrInvalidPayload, form)
	}
	return nil
}
