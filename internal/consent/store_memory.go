package consent

import (
	"context"
	"sync"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = append(s.records[record.UserID], record)
	return nil
}

// Remove deletes the most recent record equal to record. Removing a record
// that was never saved is a no-op.
func (s *InMemoryStore) Remove(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.records[record.UserID]
	for i := len(records) - 1; i >= 0; i-- {
		if records[i] == record {
			s.records[record.UserID] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListByUser returns a copy of the user's records in acceptance order. The
// result is never nil.
func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record{}, s.records[userID]...), nil
}
