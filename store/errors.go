package store

import (
	"net/http"

	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
)

// outcome maps a message to the operation it completes, if any.
func outcome(msg messages.Message) (op models.Operation, ok bool, errPayload *models.ErrorPayload, isCompletion bool) {
	switch m := msg.(type) {
	case messages.FetchCompleted:
		return models.OperationFetch, m.OK, m.Err, true
	case messages.CreateCompleted:
		return models.OperationCreate, m.OK, m.Err, true
	case messages.SaveCompleted:
		return models.OperationSave, m.OK, m.Err, true
	case messages.SubmitCompleted:
		return models.OperationSubmit, m.OK, m.Err, true
	case messages.AllegationsFetchCompleted:
		return models.OperationAllegations, m.OK, m.Err, true
	case messages.RelationshipsFetchCompleted:
		return models.OperationRelationships, m.OK, m.Err, true
	case messages.HistoryFetchCompleted:
		return models.OperationHistory, m.OK, m.Err, true
	case messages.ParticipantDeleted:
		return models.OperationDelete, true, nil, true
	case messages.ParticipantDeleteFailed:
		return models.OperationDelete, false, m.Err, true
	case messages.AttachCompleted:
		return models.OperationAttach, m.OK, m.Err, true
	}
	return "", false, nil, false
}

// reduceErrors records the payload of a failed operation under its key and
// clears the key on the next success of the same operation.
func reduceErrors(errs map[models.Operation]models.ErrorPayload, msg messages.Message) map[models.Operation]models.ErrorPayload {
	op, ok, payload, isCompletion := outcome(msg)
	if !isCompletion {
		return errs
	}
	if _, exists := errs[op]; ok && !exists {
		return errs
	}
	next := make(map[models.Operation]models.ErrorPayload, len(errs)+1)
	for k, v := range errs {
		next[k] = v
	}
	if ok {
		delete(next, op)
		return next
	}
	if payload == nil {
		payload = &models.ErrorPayload{Status: http.StatusBadGateway, Message: "request failed"}
	}
	next[op] = *payload
	return next
}

// staleCompletion reports whether msg was issued before the last completion
// merged into the slice it targets. Stale completions leave notices alone.
func staleCompletion(state State, msg messages.Message) bool {
	req := messages.RequestOf(msg)
	if req == 0 {
		return false
	}
	switch msg.(type) {
	case messages.RelationshipsFetchCompleted:
		return req < state.Relationships.LastRequest
	case messages.HistoryFetchCompleted:
		return req < state.History.LastRequest
	}
	return req < state.Screening.LastRequest
}
