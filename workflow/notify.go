package workflow

import (
	"context"
	"time"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/utils"
)

// record writes the audit entry and publishes the intake event of a
// finished mutation. Failures are logged and never fail the operation.
func (s *Service) record(ctx context.Context, action, screeningId, target string, opErr error, detail any) {
	outcome := models.AuditOutcomeSuccess
	if opErr != nil {
		outcome = models.AuditOutcomeFailure
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, models.NewAuditEntry{
			ScreeningId: screeningId,
			ActionType:  action,
			Target:      target,
			Outcome:     outcome,
			Detail:      detail,
		})
		config.LogError(s.logger, "notify.go", "record", "audit.Record", screeningId, err)
	}
	if s.events != nil && opErr == nil {
		username, _ := utils.GetUsernameFromContext(ctx)
		correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
		err := s.events.Publish(ctx, config.IntakeEvent{
			Action:        action,
			ScreeningId:   screeningId,
			Target:        target,
			Username:      username,
			CorrelationId: correlationId,
			OccurredAt:    time.Now().UTC(),
		})
		config.LogError(s.logger, "notify.go", "record", "events.Publish", screeningId, err)
	}
}
