package session

import (
	"errors"
	"testing"
	"time"

	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/utils"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestRegistry(idle time.Duration) (*Registry, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	r := NewRegistry(idle)
	r.now = c.now
	return r, c
}

func TestRegistry_GetChecksOwner(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s := r.Create("ann")

	if got, err := r.Get(s.ID, "ann"); err != nil || got != s {
		t.Fatalf("owner could not get own session: %v", err)
	}
	if _, err := r.Get(s.ID, "bob"); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := r.Get("missing", "ann"); !errors.Is(err, utils.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRegistry_IdleSessionsExpire(t *testing.T) {
	r, c := newTestRegistry(time.Hour)
	s := r.Create("ann")
	kept := r.Create("ann")

	c.t = c.t.Add(50 * time.Minute)
	if _, err := r.Get(kept.ID, "ann"); err != nil {
		t.Fatalf("Get error: %v", err)
	}

	c.t = c.t.Add(20 * time.Minute)
	if _, err := r.Get(s.ID, "ann"); !errors.Is(err, utils.ErrSessionNotFound) {
		t.Fatalf("idle session should be gone, got %v", err)
	}
	if _, err := r.Get(kept.ID, "ann"); err != nil {
		t.Fatalf("recently used session expired: %v", err)
	}

	c.t = c.t.Add(2 * time.Hour)
	if n := r.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if r.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", r.Len())
	}
}

func TestRegistry_CloseClearsState(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s := r.Create("ann")
	s.Store.Dispatch(messages.FetchStarted{})

	if err := r.Close(s.ID, "bob"); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := r.Close(s.ID, "ann"); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if s.Store.State().Screening.FetchStatus != models.FetchStatusUnstarted {
		t.Fatalf("closed session state not cleared")
	}
	if _, err := r.Get(s.ID, "ann"); !errors.Is(err, utils.ErrSessionNotFound) {
		t.Fatalf("closed session still reachable")
	}
}

func TestRegistry_CloseOwner(t *testing.T) {
	r, _ := newTestRegistry(0)
	r.Create("ann")
	r.Create("ann")
	other := r.Create("bob")

	if n := r.CloseOwner("ann"); n != 2 {
		t.Fatalf("expected 2 closed, got %d", n)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 session left, got %d", r.Len())
	}
	if _, err := r.Get(other.ID, "bob"); err != nil {
		t.Fatalf("another worker's session was closed: %v", err)
	}
}
