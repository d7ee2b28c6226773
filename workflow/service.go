// Package workflow runs the remote side of session operations: it calls
// FERB outside the store lock and dispatches the resolved results.
package workflow

import (
	"context"
	"time"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/store"
	"github.com/sirupsen/logrus"
)

// API is the part of the FERB client the workflows use.
type API interface {
	GetScreening(ctx context.Context, id string) (models.ScreeningPayload, error)
	CreateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error)
	UpdateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error)
	SubmitScreening(ctx context.Context, id string) (models.ScreeningPayload, error)
	GetAllegations(ctx context.Context, screeningId string) ([]models.AllegationPayload, error)
	GetRelationships(ctx context.Context, screeningId string) ([]models.RelatedPerson, error)
	GetHistoryOfInvolvements(ctx context.Context, screeningId string) (models.HistoryOfInvolvement, error)
	DeleteParticipant(ctx context.Context, id string) error
	CreateParticipant(ctx context.Context, in models.NewParticipant) (models.Participant, error)
	GetSystemCodes(ctx context.Context) ([]models.SystemCode, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event config.IntakeEvent) error
}

type AuditRecorder interface {
	Record(ctx context.Context, input models.NewAuditEntry) error
}

// Locker guards an operation across replicas. The returned func releases
// the lock.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

type Service struct {
	api    API
	events EventPublisher
	audit  AuditRecorder
	locker Locker
	logger *logrus.Logger
	guard  bool
}

type Option func(*Service)

func WithEvents(p EventPublisher) Option { return func(s *Service) { s.events = p } }
func WithAudit(r AuditRecorder) Option   { return func(s *Service) { s.audit = r } }
func WithLocker(l Locker) Option         { return func(s *Service) { s.locker = l } }
func WithLogger(l *logrus.Logger) Option { return func(s *Service) { s.logger = l } }

// WithStaleGuard overrides GUARD_STALE_COMPLETIONS.
func WithStaleGuard(on bool) Option { return func(s *Service) { s.guard = on } }

func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:    api,
		logger: config.GetLogger(),
		guard:  config.GuardStaleCompletions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// request issues a token for the next completion, or 0 when unguarded.
func (s *Service) request(st *store.Store) uint64 {
	if !s.guard {
		return 0
	}
	return st.NextRequest()
}
