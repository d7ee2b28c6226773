package store

import (
	"sync"
	"sync/atomic"

	"github.com/mmdatafocus/intake_backend/config"
	"github.com/mmdatafocus/intake_backend/messages"
	"github.com/sirupsen/logrus"
)

// Store serializes every update of one session's state. Messages are
// applied strictly one at a time in dispatch order. Remote calls must
// happen outside Dispatch; the reducer only sees resolved values.
type Store struct {
	mu        sync.Mutex
	state     State
	requests  atomic.Uint64
	clearedAt uint64
	logger    *logrus.Logger
}

func New() *Store {
	return NewWithLogger(config.GetLogger())
}

// NewWithLogger builds a store that traces every applied message at debug
// level on logger.
func NewWithLogger(logger *logrus.Logger) *Store {
	return &Store{state: Empty(), logger: logger}
}

// Dispatch applies msg and returns the resulting state.
func (s *Store) Dispatch(msg messages.Message) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := msg.(messages.Clear); ok {
		s.clearedAt = s.requests.Load()
	}
	if req := messages.RequestOf(msg); req != 0 && req <= s.clearedAt {
		s.logger.WithFields(logrus.Fields{
			"kind":    msg.Kind(),
			"request": req,
		}).Debug("dropping completion issued before clear")
		return s.state
	}
	if s.logger.IsLevelEnabled(logrus.DebugLevel) {
		s.logger.WithFields(logrus.Fields{
			"kind":    msg.Kind(),
			"request": messages.RequestOf(msg),
		}).Debug("dispatch")
	}

	s.state = Reduce(s.state, msg)
	return s.state
}

// State returns the current state. Slices and maps in it are never
// mutated after being handed out.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextRequest issues the next request token.
func (s *Store) NextRequest() uint64 {
	return s.requests.Add(1)
}
