// Package forms keeps the per-card edit forms of a screening. A field
// holds the edited value and whether the worker has touched it.
package forms

import (
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
)

type Field struct {
	Value   *string `json:"value"`
	Touched bool    `json:"touched"`
}

type Form map[string]Field

// Forms is the form slice of a session, one form per editable card.
type Forms map[models.Card]Form

var Fields = map[models.Card][]string{
	models.CardScreeningInformation: {"name", "assignee", "report_type", "started_at", "ended_at", "communication_method"},
	models.CardNarrative:            {"report_narrative"},
	models.CardIncidentInformation:  {"incident_date", "incident_county", "location_type", "street_address", "city", "state", "zip"},
	models.CardDecision:             {"screening_decision", "screening_decision_detail", "additional_information"},
}

// Untouched builds every form from s with no field touched.
func Untouched(s models.Screening) Forms {
	out := make(Forms, len(Fields))
	for card, fields := range Fields {
		form := make(Form, len(fields))
		for _, name := range fields {
			form[name] = Field{Value: copyValue(valueOf(s, name))}
		}
		out[card] = form
	}
	return out
}

// Reduce applies the form messages. persisted is the screening as last
// merged, used by FormReset.
func Reduce(state Forms, persisted models.Screening, msg messages.Message) Forms {
	switch m := msg.(type) {
	case messages.FormFieldSet:
		return update(state, m.Form, func(form Form) {
			if f, ok := form[m.Field]; ok {
				f.Value = copyValue(m.Value)
				form[m.Field] = f
			}
		})
	case messages.FormFieldTouched:
		return update(state, m.Form, func(form Form) {
			if f, ok := form[m.Field]; ok {
				f.Touched = true
				form[m.Field] = f
			}
		})
	case messages.FormFieldsTouchedAll:
		return update(state, m.Form, func(form Form) {
			for name, f := range form {
				f.Touched = true
				form[name] = f
			}
		})
	case messages.FormReset:
		return update(state, m.Form, func(form Form) {
			for name, f := range form {
				f.Value = copyValue(valueOf(persisted, name))
				form[name] = f
			}
		})
	case messages.Clear:
		return Untouched(models.Screening{})
	}
	return state
}

// update copies the targeted form before mutating it so earlier states
// handed out to readers stay unchanged.
func update(state Forms, card models.Card, fn func(Form)) Forms {
	form, ok := state[card]
	if !ok {
		return state
	}
	next := make(Forms, len(state))
	for k, v := range state {
		next[k] = v
	}
	copied := make(Form, len(form))
	for k, v := range form {
		copied[k] = v
	}
	fn(copied)
	next[card] = copied
	return next
}

// Apply returns s with the values of the card's form written over it.
func Apply(s models.Screening, form Form) models.Screening {
	for name, f := range form {
		setValue(&s, name, copyValue(f.Value))
	}
	return s
}

func valueOf(s models.Screening, name string) *string {
	if p := fieldPtr(&s, name); p != nil {
		return *p
	}
	return nil
}

func setValue(s *models.Screening, name string, v *string) {
	if p := fieldPtr(s, name); p != nil {
		*p = v
	}
}

func fieldPtr(s *models.Screening, name string) **string {
	switch name {
	case "name":
		return &s.Name
	case "assignee":
		return &s.Assignee
	case "report_type":
		return &s.ReportType
	case "started_at":
		return &s.StartedAt
	case "ended_at":
		return &s.EndedAt
	case "communication_method":
		return &s.CommunicationMethod
	case "report_narrative":
		return &s.ReportNarrative
	case "incident_date":
		return &s.IncidentDate
	case "incident_county":
		return &s.IncidentCounty
	case "location_type":
		return &s.LocationType
	case "street_address":
		return &s.Address.StreetAddress
	case "city":
		return &s.Address.City
	case "state":
		return &s.Address.State
	case "zip":
		return &s.Address.Zip
	case "screening_decision":
		return &s.ScreeningDecision
	case "screening_decision_detail":
		return &s.ScreeningDecisionDetail
	case "additional_information":
		return &s.AdditionalInformation
	}
	return nil
}

func copyValue(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
