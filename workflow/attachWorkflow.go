package workflow

import (
	"context"
	"errors"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/relationships"
	"github.com/mmdatafocus/intake_backend/store"
	"github.com/mmdatafocus/intake_backend/utils"
	"golang.org/x/sync/errgroup"
)

var ErrNotAttachable = errors.New("person is already a participant or being attached")

// AttachRelationship adds a related person to the screening as a new
// participant, then re-fetches the screening and relationships.
func (s *Service) AttachRelationship(ctx context.Context, st *store.Store, legacyId string) error {
	state := st.State()
	if err := editable(state); err != nil {
		return err
	}
	rel, ok := findRelationship(state.Relationships.People, legacyId)
	if !ok {
		return utils.ErrorRecordNotFound
	}
	if !relationships.PersonCardExists(state.Screening.Participants, rel) || relationships.IsPending(rel, state.PendingPeople) {
		return ErrNotAttachable
	}

	screeningId := state.Screening.ID
	st.Dispatch(messages.AttachStarted{LegacyID: legacyId})
	_, err := s.api.CreateParticipant(ctx, models.NewParticipant{
		ScreeningID:      screeningId,
		LegacyDescriptor: *rel.LegacyDescriptor,
	})
	st.Dispatch(messages.AttachCompleted{LegacyID: legacyId, OK: err == nil, Err: ferb.Payload(err)})
	s.record(ctx, models.AuditActionAttach, screeningId, legacyId, err, rel.LegacyDescriptor)
	if err != nil {
		config.LogError(s.logger, "attachWorkflow.go", "AttachRelationship", "CreateParticipant", legacyId, err)
		return err
	}

	st.Dispatch(messages.FetchStarted{})
	st.Dispatch(messages.RelationshipsFetchStarted{})
	screeningReq, relationshipsReq := s.request(st), s.request(st)

	var g errgroup.Group
	g.Go(func() error {
		err := s.fetchScreening(ctx, st, screeningId, screeningReq)
		config.LogError(s.logger, "attachWorkflow.go", "AttachRelationship", "GetScreening", screeningId, err)
		return nil
	})
	g.Go(func() error {
		err := s.fetchRelationships(ctx, st, screeningId, relationshipsReq)
		config.LogError(s.logger, "attachWorkflow.go", "AttachRelationship", "GetRelationships", screeningId, err)
		return nil
	})
	return g.Wait()
}

func findRelationship(people []models.RelatedPerson, legacyId string) (models.Relationship, bool) {
	for _, p := range people {
		for _, r := range p.Relationships {
			if r.LegacyDescriptor != nil && r.LegacyDescriptor.LegacyID == legacyId {
				return r, true
			}
		}
	}
	return models.Relationship{}, false
}
