package handoff

import (
	"context"
	"encoding/json"
	"sync"

	"intake/pkg/requestcontext"
)

// InMemoryStore keeps the handoff record as marshalled bytes, mirroring what
// a key-value backing medium holds. Storing bytes rather than the struct keeps
// the corrupt-data path honest and testable.
type InMemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(ctx context.Context, record Record) error {
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = requestcontext.Now(ctx)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *InMemoryStore) Load(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}

	var record Record
	if err := json.Unmarshal(s.data, &record); err != nil {
		// Corrupt data is treated as absent, never thrown to the caller.
		s.data = nil
		return nil, nil
	}
	if record.Expired(requestcontext.Now(ctx)) {
		s.data = nil
		return nil, nil
	}
	return &record, nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

func (s *InMemoryStore) Exists(ctx context.Context) (bool, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}
