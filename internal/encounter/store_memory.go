package encounter

import (
	"context"
	"sort"
	"sync"

	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
)

// InMemory is the map-backed encounter store.
type InMemory struct {
	mu   sync.RWMutex
	rows map[domain.EncounterID]*Encounter
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[domain.EncounterID]*Encounter)}
}

func (s *InMemory) Create(_ context.Context, e *Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[e.ID]; exists {
		return sentinel.ErrDuplicate
	}
	s.rows[e.ID] = e.Clone()
	return nil
}

func (s *InMemory) Get(_ context.Context, id domain.EncounterID) (*Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return e.Clone(), nil
}

func (s *InMemory) ListByChild(_ context.Context, childID domain.ChildID) ([]*Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Encounter
	for _, e := range s.rows {
		if e.ChildID == childID {
			out = append(out, e.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
