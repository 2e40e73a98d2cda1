package audit

import (
	"context"
	"sync"

	"appeal/pkg/domain"
)

// InMemory keeps the trail in process memory. Used in tests and in
// deployments without Postgres.
type InMemory struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemory) ListByChild(_ context.Context, childID domain.ChildID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.ChildID == childID {
			out = append(out, e)
		}
	}
	return out, nil
}
