package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"serviceheft/internal/audit"
)

// InMemoryStore is an append-only audit sink for tests and for binaries that
// have no durable store.
type InMemoryStore struct {
	mu      sync.RWMutex
	events  []audit.Event
	byActor map[string][]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byActor: make(map[string][]int)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.byActor = make(map[string][]int)
}

// Append stores a private copy of event so later changes to the caller's
// metadata map cannot alter the record.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	event.RedactedMetadata = maps.Clone(event.RedactedMetadata)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byActor[event.ActorID] = append(s.byActor[event.ActorID], len(s.events))
	s.events = append(s.events, event)
	return nil
}

// ListByActor returns the actor's events in append order.
func (s *InMemoryStore) ListByActor(_ context.Context, actorID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.byActor[actorID]
	out := make([]audit.Event, 0, len(idx))
	for _, i := range idx {
		out = append(out, copyEvent(s.events[i]))
	}
	return out, nil
}

// ListRecent returns up to limit events, newest created_at first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	all := make([]audit.Event, 0, len(s.events))
	for _, e := range s.events {
		all = append(all, copyEvent(e))
	}
	s.mu.RUnlock()

	slices.SortStableFunc(all, func(a, b audit.Event) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Len returns the number of stored events.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func copyEvent(e audit.Event) audit.Event {
	e.RedactedMetadata = maps.Clone(e.RedactedMetadata)
	return e
}
