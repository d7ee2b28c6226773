// Package session keeps the open editing sessions. Each session owns one
// store and belongs to the worker who opened it.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/mmdatafocus/intake_backend/store"
	"github.com/mmdatafocus/intake_backend/utils"
)

type Session struct {
	ID       string
	Owner    string
	Store    *store.Store
	lastSeen time.Time
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
}

func NewRegistry(idle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
	}
}

// NewRegistryFromEnv reads SESSION_IDLE_MINUTES, default 60.
func NewRegistryFromEnv() *Registry {
	minutes := config.IntFromEnv("SESSION_IDLE_MINUTES", 60)
	if minutes <= 0 {
		minutes = 60
	}
	return NewRegistry(time.Duration(minutes) * time.Minute)
}

func (r *Registry) Create(owner string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &Session{
		ID:       uuid.NewString(),
		Owner:    owner,
		Store:    store.New(),
		lastSeen: r.now(),
	}
	r.sessions[s.ID] = s
	return s
}

// Get returns the session if it exists, has not idled out and belongs to
// owner. A successful Get keeps the session alive.
func (r *Registry) Get(id, owner string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	if r.expired(s) {
		delete(r.sessions, id)
		s.Store.Dispatch(messages.Clear{})
		return nil, utils.ErrSessionNotFound
	}
	if s.Owner != owner {
		return nil, utils.ErrForbidden
	}
	s.lastSeen = r.now()
	return s, nil
}

// Close clears the session state and forgets the session.
func (r *Registry) Close(id, owner string) error {
	s, err := r.Get(id, owner)
	if err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	s.Store.Dispatch(messages.Clear{})
	return nil
}

// CloseOwner closes every session of owner and returns how many were open.
func (r *Registry) CloseOwner(owner string) int {
	r.mu.Lock()
	var closed []*Session
	for id, s := range r.sessions {
		if s.Owner == owner {
			closed = append(closed, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	for _, s := range closed {
		s.Store.Dispatch(messages.Clear{})
	}
	return len(closed)
}

// Sweep drops idle sessions and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if r.expired(s) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	for _, s := range expired {
		s.Store.Dispatch(messages.Clear{})
	}
	return len(expired)
}

// Run sweeps until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				config.GetLogger().WithField("count", n).Info("expired idle sessions")
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(s *Session) bool {
	return r.idle > 0 && r.now().Sub(s.lastSeen) > r.idle
}
