package workflow

import (
	"context"

	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/store"
)

func (s *Service) fetchScreening(ctx context.Context, st *store.Store, id string, req uint64) error {
	p, err := s.api.GetScreening(ctx, id)
	st.Dispatch(messages.FetchCompleted{Screening: p, OK: err == nil, Err: ferb.Payload(err), Request: req})
	return err
}

func (s *Service) fetchAllegations(ctx context.Context, st *store.Store, id string, req uint64) error {
	list, err := s.api.GetAllegations(ctx, id)
	st.Dispatch(messages.AllegationsFetchCompleted{Allegations: list, OK: err == nil, Err: ferb.Payload(err), Request: req})
	return err
}

func (s *Service) fetchRelationships(ctx context.Context, st *store.Store, id string, req uint64) error {
	people, err := s.api.GetRelationships(ctx, id)
	st.Dispatch(messages.RelationshipsFetchCompleted{People: people, OK: err == nil, Err: ferb.Payload(err), Request: req})
	return err
}

func (s *Service) fetchHistory(ctx context.Context, st *store.Store, id string, req uint64) error {
	history, err := s.api.GetHistoryOfInvolvements(ctx, id)
	st.Dispatch(messages.HistoryFetchCompleted{History: history, OK: err == nil, Err: ferb.Payload(err), Request: req})
	return err
}

func (s *Service) fetchSystemCodes(ctx context.Context, st *store.Store) error {
	codes, err := s.api.GetSystemCodes(ctx)
	st.Dispatch(messages.SystemCodesFetchCompleted{Codes: codes, OK: err == nil, Err: ferb.Payload(err)})
	return err
}
