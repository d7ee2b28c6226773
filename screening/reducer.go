// Package screening holds the screening slice of a session and its pure
// reducer.
package screening

import (
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
)

// State is the screening plus its lifecycle tag. LastRequest is the token
// of the last merged completion and is not part of the wire form.
type State struct {
	models.Screening
	FetchStatus models.FetchStatus `json:"fetch_status"`
	LastRequest uint64             `json:"-"`
}

// Empty is the canonical state of a session with no screening loaded.
func Empty() State {
	return State{FetchStatus: models.FetchStatusUnstarted}
}

// Reduce applies msg to state. It is total: unknown kinds and failed
// completions return state unchanged.
func Reduce(state State, msg messages.Message) State {
	switch m := msg.(type) {
	case messages.FetchStarted:
		state.FetchStatus = models.FetchStatusFetching
		return state
	case messages.FetchCompleted:
		return merge(state, messages.Completion(m))
	case messages.CreateCompleted:
		return merge(state, messages.Completion(m))
	case messages.SaveCompleted:
		return merge(state, messages.Completion(m))
	case messages.SubmitCompleted:
		return merge(state, messages.Completion(m))
	case messages.AllegationsFetchCompleted:
		if !m.OK || stale(state, m.Request) {
			return state
		}
		state.Allegations = NormalizeAllegations(m.Allegations)
		state.LastRequest = maxRequest(state.LastRequest, m.Request)
		return state
	case messages.ParticipantDeleted:
		return removeParticipant(state, m.ID)
	case messages.Clear:
		return Empty()
	}
	return state
}

func merge(state State, c messages.Completion) State {
	if !c.OK || stale(state, c.Request) {
		return state
	}
	return State{
		Screening:   Normalize(c.Screening),
		FetchStatus: models.FetchStatusFetched,
		LastRequest: maxRequest(state.LastRequest, c.Request),
	}
}

// stale reports whether a completion was issued before the last merged one.
// Token 0 is unguarded.
func stale(state State, request uint64) bool {
	return request != 0 && request < state.LastRequest
}

func maxRequest(a, b uint64) uint64 {
	if b > a {
		return b
	}
	return a
}

// removeParticipant drops the participant locally. Allegations naming it
// are left for the following re-fetch to repair.
func removeParticipant(state State, id string) State {
	if _, ok := state.Participant(id); !ok {
		return state
	}
	participants := make([]models.Participant, 0, len(state.Participants))
	for _, p := range state.Participants {
		if string(p.ID) != id {
			participants = append(participants, p)
		}
	}
	state.Participants = participants
	return state
}

// Merges reports whether msg is a completion Reduce would merge.
func Merges(state State, msg messages.Message) bool {
	var c messages.Completion
	switch m := msg.(type) {
	case messages.AllegationsFetchCompleted:
		return m.OK && !stale(state, m.Request)
	case messages.FetchCompleted:
		c = messages.Completion(m)
	case messages.CreateCompleted:
		c = messages.Completion(m)
	case messages.SaveCompleted:
		c = messages.Completion(m)
	case messages.SubmitCompleted:
		c = messages.Completion(m)
	default:
		return false
	}
	return c.OK && !stale(state, c.Request)
}
