// Package store holds the application state of one editing session and
// applies dispatched messages to it one at a time.
package store

import (
	"github.com/mmdatafocus/intake_backend/allegations"
	"github.com/mmdatafocus/intake_backend/forms"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/relationships"
	"github.com/mmdatafocus/intake_backend/screening"
)

type HistoryState struct {
	models.HistoryOfInvolvement
	FetchStatus models.FetchStatus `json:"fetch_status"`
	LastRequest uint64             `json:"-"`
}

type State struct {
	Screening       screening.State                         `json:"screening"`
	Forms           forms.Forms                             `json:"forms"`
	AllegationsForm []models.Allegation                     `json:"allegations_form"`
	Relationships   relationships.State                     `json:"relationships"`
	History         HistoryState                            `json:"history_of_involvements"`
	PendingPeople   []string                                `json:"pending_people"`
	SystemCodes     []models.SystemCode                     `json:"system_codes"`
	Errors          map[models.Operation]models.ErrorPayload `json:"errors"`
}

func Empty() State {
	return State{
		Screening:       screening.Empty(),
		Forms:           forms.Untouched(models.Screening{}),
		AllegationsForm: []models.Allegation{},
		Relationships:   relationships.Empty(),
		History:         HistoryState{FetchStatus: models.FetchStatusUnstarted},
		PendingPeople:   []string{},
		SystemCodes:     []models.SystemCode{},
		Errors:          map[models.Operation]models.ErrorPayload{},
	}
}

// Reduce applies msg to every slice of the state.
func Reduce(state State, msg messages.Message) State {
	if _, ok := msg.(messages.Clear); ok {
		return Empty()
	}

	merged := screening.Merges(state.Screening, msg)
	next := state
	next.Screening = screening.Reduce(state.Screening, msg)
	next.Forms = forms.Reduce(state.Forms, state.Screening.Screening, msg)
	next.Relationships = relationships.Reduce(state.Relationships, msg)
	next.PendingPeople = relationships.ReducePending(state.PendingPeople, msg)
	next.History = reduceHistory(state.History, msg)
	if !staleCompletion(state, msg) {
		next.Errors = reduceErrors(state.Errors, msg)
	}

	switch m := msg.(type) {
	case messages.FetchCompleted, messages.CreateCompleted:
		if merged {
			next.Forms = forms.Untouched(next.Screening.Screening)
			next.AllegationsForm = allegations.Copy(next.Screening.Allegations)
		}
	case messages.AllegationsFetchCompleted:
		if merged {
			next.AllegationsForm = allegations.Copy(next.Screening.Allegations)
		}
	case messages.AllegationTypesSet:
		next.AllegationsForm = allegations.SetTypes(state.AllegationsForm, m.VictimID, m.PerpetratorID, m.Types)
	case messages.AllegationsFormReset:
		next.AllegationsForm = allegations.Copy(state.Screening.Allegations)
	case messages.SystemCodesFetchCompleted:
		if m.OK {
			next.SystemCodes = append([]models.SystemCode{}, m.Codes...)
		}
	}
	return next
}

func reduceHistory(state HistoryState, msg messages.Message) HistoryState {
	switch m := msg.(type) {
	case messages.HistoryFetchStarted:
		state.FetchStatus = models.FetchStatusFetching
	case messages.HistoryFetchCompleted:
		if !m.OK || (m.Request != 0 && m.Request < state.LastRequest) {
			return state
		}
		return HistoryState{
			HistoryOfInvolvement: m.History,
			FetchStatus:          models.FetchStatusFetched,
			LastRequest:          maxToken(state.LastRequest, m.Request),
		}
	}
	return state
}

func maxToken(a, b uint64) uint64 {
	if b > a {
		return b
	}
	return a
}
