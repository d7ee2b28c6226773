package forms

import (
	"strings"
	"time"

	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/utils"
)

const (
	ErrAssigneeRequired       = "Please enter an assigned worker."
	ErrStartedAtRequired      = "Please enter a screening start date."
	ErrStartedAtInFuture      = "The start date and time cannot be in the future."
	ErrEndedAtBeforeStart     = "The end date and time must be after the start date and time."
	ErrEndedAtInFuture        = "The end date and time cannot be in the future."
	ErrCommunicationRequired  = "Please select a communication method."
	ErrNarrativeRequired      = "Please enter a narrative."
	ErrIncidentDateInFuture   = "The incident date and time cannot be in the future."
	ErrDecisionRequired       = "Please enter a decision"
	ErrDecisionDetailRequired = "Please enter a response time"
	decisionPromoteToReferral = "promote_to_referral"
)

type rule func(form Form, now time.Time) string

var rules = map[models.Card]map[string][]rule{
	models.CardScreeningInformation: {
		"assignee": {required("assignee", ErrAssigneeRequired)},
		"started_at": {
			required("started_at", ErrStartedAtRequired),
			notInFuture("started_at", ErrStartedAtInFuture),
		},
		"ended_at": {
			notInFuture("ended_at", ErrEndedAtInFuture),
			after("ended_at", "started_at", ErrEndedAtBeforeStart),
		},
		"communication_method": {required("communication_method", ErrCommunicationRequired)},
	},
	models.CardNarrative: {
		"report_narrative": {required("report_narrative", ErrNarrativeRequired)},
	},
	models.CardIncidentInformation: {
		"incident_date": {notInFuture("incident_date", ErrIncidentDateInFuture)},
	},
	models.CardDecision: {
		"screening_decision": {required("screening_decision", ErrDecisionRequired)},
		"screening_decision_detail": {func(form Form, _ time.Time) string {
			if text(form, "screening_decision") == decisionPromoteToReferral && text(form, "screening_decision_detail") == "" {
				return ErrDecisionDetailRequired
			}
			return ""
		}},
	},
}

// Errors validates every field of the card's form. Each field of the form
// has an entry, empty when the field is valid.
func Errors(card models.Card, form Form, now time.Time) map[string][]string {
	out := make(map[string][]string, len(form))
	for name := range form {
		out[name] = []string{}
		for _, r := range rules[card][name] {
			if msg := r(form, now); msg != "" {
				out[name] = append(out[name], msg)
			}
		}
	}
	return out
}

// VisibleErrors is Errors restricted to fields the worker has touched.
func VisibleErrors(card models.Card, form Form, now time.Time) map[string][]string {
	out := Errors(card, form, now)
	for name, f := range form {
		if !f.Touched {
			out[name] = []string{}
		}
	}
	return out
}

// Valid reports whether the card's form has no errors at all.
func Valid(card models.Card, form Form, now time.Time) bool {
	for _, errs := range Errors(card, form, now) {
		if len(errs) > 0 {
			return false
		}
	}
	return true
}

func required(name, msg string) rule {
	return func(form Form, _ time.Time) string {
		if text(form, name) == "" {
			return msg
		}
		return ""
	}
}

func notInFuture(name, msg string) rule {
	return func(form Form, now time.Time) string {
		t, ok := utils.ParseDateTime(text(form, name))
		if ok && t.After(now) {
			return msg
		}
		return ""
	}
}

func after(name, other, msg string) rule {
	return func(form Form, _ time.Time) string {
		end, ok := utils.ParseDateTime(text(form, name))
		if !ok {
			return ""
		}
		start, ok := utils.ParseDateTime(text(form, other))
		if ok && !end.After(start) {
			return msg
		}
		return ""
	}
}

func text(form Form, name string) string {
	f, ok := form[name]
	if !ok || f.Value == nil {
		return ""
	}
	return strings.TrimSpace(*f.Value)
}
