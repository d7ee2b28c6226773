package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/models"
)

func str(s string) *string { return &s }

// fakeAPI serves one screening and records every call in order.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	screening     models.ScreeningPayload
	people        []models.RelatedPerson
	updated       []models.ScreeningPayload
	created       []models.NewParticipant
	failDelete    error
	failScreening error
	failRelations error
	failHistory   error
	failUpdate    error
}

func (f *fakeAPI) call(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

func (f *fakeAPI) GetScreening(ctx context.Context, id string) (models.ScreeningPayload, error) {
	f.call("GetScreening")
	if f.failScreening != nil {
		return models.ScreeningPayload{}, f.failScreening
	}
	return f.screening, nil
}

func (f *fakeAPI) CreateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error) {
	f.call("CreateScreening")
	return f.screening, nil
}

func (f *fakeAPI) UpdateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error) {
	f.call("UpdateScreening")
	f.mu.Lock()
	f.updated = append(f.updated, in)
	f.mu.Unlock()
	if f.failUpdate != nil {
		return models.ScreeningPayload{}, f.failUpdate
	}
	return in, nil
}

func (f *fakeAPI) SubmitScreening(ctx context.Context, id string) (models.ScreeningPayload, error) {
	f.call("SubmitScreening")
	out := f.screening
	out.ReferralID = str("R-1")
	return out, nil
}

func (f *fakeAPI) GetAllegations(ctx context.Context, screeningId string) ([]models.AllegationPayload, error) {
	f.call("GetAllegations")
	return f.screening.Allegations, nil
}

func (f *fakeAPI) GetRelationships(ctx context.Context, screeningId string) ([]models.RelatedPerson, error) {
	f.call("GetRelationships")
	if f.failRelations != nil {
		return nil, f.failRelations
	}
	return f.people, nil
}

func (f *fakeAPI) GetHistoryOfInvolvements(ctx context.Context, screeningId string) (models.HistoryOfInvolvement, error) {
	f.call("GetHistoryOfInvolvements")
	if f.failHistory != nil {
		return models.HistoryOfInvolvement{}, f.failHistory
	}
	return models.HistoryOfInvolvement{}, nil
}

func (f *fakeAPI) DeleteParticipant(ctx context.Context, id string) error {
	f.call("DeleteParticipant")
	return f.failDelete
}

func (f *fakeAPI) CreateParticipant(ctx context.Context, in models.NewParticipant) (models.Participant, error) {
	f.call("CreateParticipant")
	f.mu.Lock()
	f.created = append(f.created, in)
	f.mu.Unlock()
	return models.Participant{ID: "new", LegacyDescriptor: &in.LegacyDescriptor}, nil
}

func (f *fakeAPI) GetSystemCodes(ctx context.Context) ([]models.SystemCode, error) {
	f.call("GetSystemCodes")
	return []models.SystemCode{{Code: "1", Value: "Mother"}}, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.NewAuditEntry
}

func (a *fakeAudit) Record(ctx context.Context, input models.NewAuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, input)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []config.IntakeEvent
}

func (e *fakeEvents) Publish(ctx context.Context, event config.IntakeEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

type fakeLocker struct {
	err      error
	released bool
	keys     []string
}

func (l *fakeLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.keys = append(l.keys, key)
	if l.err != nil {
		return nil, l.err
	}
	return func(context.Context) error {
		l.released = true
		return nil
	}, nil
}

func serverError(body string) error {
	return &ferb.APIError{Status: 500, Body: []byte(body)}
}

var errTransport = errors.New("connection reset")

func sampleScreening() models.ScreeningPayload {
	return models.ScreeningPayload{
		ID:              "42",
		Name:            str("Intake"),
		Assignee:        str("Ann"),
		ReportNarrative: str("persisted narrative"),
		Participants: []models.Participant{
			{ID: "v", FirstName: str("Vic"), LastName: str("Tim"), Roles: []string{models.RoleVictim}, LegacyID: "L-V"},
			{ID: "p", FirstName: str("Per"), LastName: str("Pet"), Roles: []string{models.RolePerpetrator}},
		},
		Allegations: []models.AllegationPayload{},
	}
}
