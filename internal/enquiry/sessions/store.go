// Package sessions tracks open form instances by session ID. In-memory is the
// intended scope: a form session lives and dies with the process, and nothing
// in the enquiry flow requires sessions to survive a restart.
package sessions

import (
	"sync"

	"github.com/google/uuid"

	"intake/internal/enquiry/metrics"
	"intake/internal/enquiry/service"
	"intake/pkg/platform/sentinel"
)

type Store struct {
	mu      sync.RWMutex
	forms   map[uuid.UUID]*service.Form
	metrics *metrics.Metrics
}

func NewStore(m *metrics.Metrics) *Store {
	return &Store{
		forms:   make(map[uuid.UUID]*service.Form),
		metrics: m,
	}
}

// Create registers a form under a fresh session ID.
func (s *Store) Create(form *service.Form) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[id] = form
	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(len(s.forms)))
	}
	return id
}

// Get returns the form for a session.
func (s *Store) Get(id uuid.UUID) (*service.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return form, nil
}

// Delete drops a session. Deleting an unknown session is a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, id)
	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(len(s.forms)))
	}
}
