package workflow

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/intake_backend/allegations"
	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/forms"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/screening"
	"github.com/mmdatafocus/intake_backend/store"
	"github.com/mmdatafocus/intake_backend/utils"
	"golang.org/x/sync/errgroup"
)

// OpenScreening loads a screening into the session. The screening fetch
// gates the rest; allegations, relationships, history and system codes
// then load independently and record their own failures.
func (s *Service) OpenScreening(ctx context.Context, st *store.Store, id string) error {
	st.Dispatch(messages.FetchStarted{})
	if err := s.fetchScreening(ctx, st, id, s.request(st)); err != nil {
		config.LogError(s.logger, "screeningWorkflow.go", "OpenScreening", "GetScreening", id, err)
		return err
	}

	st.Dispatch(messages.RelationshipsFetchStarted{})
	st.Dispatch(messages.HistoryFetchStarted{})
	allegationsReq, relationshipsReq, historyReq := s.request(st), s.request(st), s.request(st)

	var g errgroup.Group
	g.Go(func() error {
		err := s.fetchAllegations(ctx, st, id, allegationsReq)
		config.LogError(s.logger, "screeningWorkflow.go", "OpenScreening", "GetAllegations", id, err)
		return nil
	})
	g.Go(func() error {
		err := s.fetchRelationships(ctx, st, id, relationshipsReq)
		config.LogError(s.logger, "screeningWorkflow.go", "OpenScreening", "GetRelationships", id, err)
		return nil
	})
	g.Go(func() error {
		err := s.fetchHistory(ctx, st, id, historyReq)
		config.LogError(s.logger, "screeningWorkflow.go", "OpenScreening", "GetHistoryOfInvolvements", id, err)
		return nil
	})
	g.Go(func() error {
		err := s.fetchSystemCodes(ctx, st)
		config.LogError(s.logger, "screeningWorkflow.go", "OpenScreening", "GetSystemCodes", nil, err)
		return nil
	})
	return g.Wait()
}

// CreateScreening creates an empty screening and loads it into the session.
func (s *Service) CreateScreening(ctx context.Context, st *store.Store) (string, error) {
	req := s.request(st)
	p, err := s.api.CreateScreening(ctx, screening.ToPayload(models.Screening{}))
	st.Dispatch(messages.CreateCompleted{Screening: p, OK: err == nil, Err: ferb.Payload(err), Request: req})
	if err != nil {
		config.LogError(s.logger, "screeningWorkflow.go", "CreateScreening", "CreateScreening", nil, err)
		return "", err
	}
	id := string(p.ID)
	s.record(ctx, models.AuditActionCreate, id, "", nil, nil)
	if err := s.fetchSystemCodes(ctx, st); err != nil {
		config.LogError(s.logger, "screeningWorkflow.go", "CreateScreening", "GetSystemCodes", nil, err)
	}
	return id, nil
}

// SaveCard persists the screening as last merged with only the edits of
// card applied. Pending edits of every other card stay local.
func (s *Service) SaveCard(ctx context.Context, st *store.Store, card models.Card) error {
	if !card.IsValid() {
		return fmt.Errorf("unknown card %q", card)
	}
	state := st.State()
	if err := editable(state); err != nil {
		return err
	}

	persisted := state.Screening.Screening
	if card == models.CardAllegations {
		persisted.Allegations = allegations.Copy(state.AllegationsForm)
	} else {
		st.Dispatch(messages.FormFieldsTouchedAll{Form: card})
		persisted = forms.Apply(persisted, state.Forms[card])
	}

	req := s.request(st)
	p, err := s.api.UpdateScreening(ctx, screening.ToPayload(persisted))
	st.Dispatch(messages.SaveCompleted{Screening: p, OK: err == nil, Err: ferb.Payload(err), Request: req})
	s.record(ctx, models.AuditActionSave, persisted.ID, string(card), err, nil)
	if err != nil {
		config.LogError(s.logger, "screeningWorkflow.go", "SaveCard", "UpdateScreening", card, err)
		return err
	}
	if card == models.CardAllegations {
		st.Dispatch(messages.AllegationsFormReset{})
	}
	return nil
}

// SubmitScreening promotes the screening; the response replaces it.
func (s *Service) SubmitScreening(ctx context.Context, st *store.Store) error {
	state := st.State()
	if err := editable(state); err != nil {
		return err
	}
	id := state.Screening.ID
	req := s.request(st)
	p, err := s.api.SubmitScreening(ctx, id)
	st.Dispatch(messages.SubmitCompleted{Screening: p, OK: err == nil, Err: ferb.Payload(err), Request: req})
	s.record(ctx, models.AuditActionSubmit, id, "", err, nil)
	if err != nil {
		config.LogError(s.logger, "screeningWorkflow.go", "SubmitScreening", "SubmitScreening", id, err)
		return err
	}
	return nil
}

func editable(state store.State) error {
	if state.Screening.ID == "" {
		return utils.ErrorRecordNotFound
	}
	if state.ReadOnly() {
		return utils.ErrReadOnly
	}
	return nil
}
