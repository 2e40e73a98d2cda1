package milestone

import (
	"context"
	"sort"
	"sync"

	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
)

type pairKey struct {
	child      domain.ChildID
	definition domain.DefinitionID
}

// InMemory is the map-backed progress store. The store mutex doubles as the
// compare-and-swap guard: Update checks the expected status under the lock.
type InMemory struct {
	mu     sync.RWMutex
	rows   map[domain.ProgressID]*Progress
	byPair map[pairKey]domain.ProgressID
}

func NewInMemory() *InMemory {
	return &InMemory{
		rows:   make(map[domain.ProgressID]*Progress),
		byPair: make(map[pairKey]domain.ProgressID),
	}
}

func (s *InMemory) Get(_ context.Context, id domain.ProgressID) (*Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return row.Clone(), nil
}

func (s *InMemory) ListByChild(_ context.Context, childID domain.ChildID) ([]*Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Progress
	for _, row := range s.rows {
		if row.ChildID == childID {
			out = append(out, row.Clone())
		}
	}
	// Map iteration order is random; callers get creation order.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) CreateIfAbsent(_ context.Context, p *Progress) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{child: p.ChildID, definition: p.DefinitionID}
	if _, exists := s.byPair[key]; exists {
		return false, nil
	}
	s.rows[p.ID] = p.Clone()
	s.byPair[key] = p.ID
	return true, nil
}

func (s *InMemory) Update(_ context.Context, p *Progress, expected Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rows[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Status != expected {
		return sentinel.ErrConflict
	}
	s.rows[p.ID] = p.Clone()
	return nil
}
