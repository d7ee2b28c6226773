package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/store"
	"github.com/mmdatafocus/intake_backend/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("intake-workflow")

const removalLockTTL = 30 * time.Second

// RemovalResult reports each step of a participant removal. The refresh
// errors are independent; one failing does not undo the others.
type RemovalResult struct {
	ParticipantID    string `json:"participant_id"`
	Deleted          bool   `json:"deleted"`
	ScreeningErr     error  `json:"-"`
	RelationshipsErr error  `json:"-"`
	HistoryErr       error  `json:"-"`
}

// Refreshed reports whether every refresh succeeded.
func (r RemovalResult) Refreshed() bool {
	return r.ScreeningErr == nil && r.RelationshipsErr == nil && r.HistoryErr == nil
}

// RemoveParticipant deletes a participant remotely, then drops it locally
// and re-fetches the screening, relationships and history. A failed delete
// changes nothing locally and triggers no further calls.
func (s *Service) RemoveParticipant(ctx context.Context, st *store.Store, participantId string) (result RemovalResult, err error) {
	ctx, span := tracer.Start(ctx, "workflow RemoveParticipant", trace.WithAttributes(
		attribute.String("participant.id", participantId),
	))
	defer func() {
		span.SetAttributes(
			attribute.Bool("participant.deleted", result.Deleted),
			attribute.Bool("removal.refreshed", result.Refreshed()),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	result = RemovalResult{ParticipantID: participantId}
	state := st.State()
	if state.ReadOnly() {
		return result, utils.ErrReadOnly
	}
	screeningId := state.Screening.ID

	if s.locker != nil {
		release, err := s.locker.Obtain(ctx, "participant-removal:"+participantId, removalLockTTL)
		if err != nil {
			if errors.Is(err, config.ErrLockNotObtained) {
				return result, err
			}
			s.logger.WithField("participant_id", participantId).Warnf("removal lock unavailable, continuing: %v", err)
		} else {
			defer func() { _ = release(context.Background()) }()
		}
	}

	if err := s.api.DeleteParticipant(ctx, participantId); err != nil {
		st.Dispatch(messages.ParticipantDeleteFailed{ID: participantId, Err: ferb.Payload(err)})
		s.record(ctx, models.AuditActionRemoveParticipant, screeningId, participantId, err, nil)
		config.LogError(s.logger, "removalWorkflow.go", "RemoveParticipant", "DeleteParticipant", participantId, err)
		return result, err
	}
	result.Deleted = true
	st.Dispatch(messages.ParticipantDeleted{ID: participantId})
	s.record(ctx, models.AuditActionRemoveParticipant, screeningId, participantId, nil, nil)

	if screeningId == "" {
		return result, nil
	}

	st.Dispatch(messages.FetchStarted{})
	st.Dispatch(messages.RelationshipsFetchStarted{})
	st.Dispatch(messages.HistoryFetchStarted{})
	screeningReq, relationshipsReq, historyReq := s.request(st), s.request(st), s.request(st)

	var g errgroup.Group
	g.Go(func() error {
		result.ScreeningErr = s.fetchScreening(ctx, st, screeningId, screeningReq)
		config.LogError(s.logger, "removalWorkflow.go", "RemoveParticipant", "GetScreening", screeningId, result.ScreeningErr)
		return nil
	})
	g.Go(func() error {
		result.RelationshipsErr = s.fetchRelationships(ctx, st, screeningId, relationshipsReq)
		config.LogError(s.logger, "removalWorkflow.go", "RemoveParticipant", "GetRelationships", screeningId, result.RelationshipsErr)
		return nil
	})
	g.Go(func() error {
		result.HistoryErr = s.fetchHistory(ctx, st, screeningId, historyReq)
		config.LogError(s.logger, "removalWorkflow.go", "RemoveParticipant", "GetHistoryOfInvolvements", screeningId, result.HistoryErr)
		return nil
	})
	_ = g.Wait()
	return result, nil
}
