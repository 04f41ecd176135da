package memory

import (
	"context"
	"sync"

	id "driveguard/pkg/domain"
	audit "driveguard/pkg/platform/audit"
)

// InMemoryStore keeps events per driver for tests and dev mode.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.DriverID][]audit.Event
	order  []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.DriverID][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.DriverID][]audit.Event)
	s.order = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.DriverID] = append(s.events[event.DriverID], event)
	s.order = append(s.order, event)
	return nil
}

func (s *InMemoryStore) ListByDriver(_ context.Context, driverID id.DriverID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[driverID]...), nil
}

// ListRecent returns the most recent events in append order, newest last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit >= len(s.order) {
		return append([]audit.Event{}, s.order...), nil
	}
	return append([]audit.Event{}, s.order[len(s.order)-limit:]...), nil
}
