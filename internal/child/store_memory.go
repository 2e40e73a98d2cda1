package child

import (
	"context"
	"sort"
	"sync"

	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
)

// InMemory is the map-backed registry store.
type InMemory struct {
	mu         sync.RWMutex
	caregivers map[domain.CaregiverID]*Caregiver
	children   map[domain.ChildID]*Child
	byCode     map[string]domain.ChildID
}

func NewInMemory() *InMemory {
	return &InMemory{
		caregivers: make(map[domain.CaregiverID]*Caregiver),
		children:   make(map[domain.ChildID]*Child),
		byCode:     make(map[string]domain.ChildID),
	}
}

func (s *InMemory) CreateCaregiver(_ context.Context, caregiver *Caregiver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.caregivers[caregiver.ID]; exists {
		return sentinel.ErrDuplicate
	}
	c := *caregiver
	s.caregivers[caregiver.ID] = &c
	return nil
}

func (s *InMemory) GetCaregiver(_ context.Context, id domain.CaregiverID) (*Caregiver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.caregivers[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *InMemory) CreateChild(_ context.Context, child *Child) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.children[child.ID]; exists {
		return sentinel.ErrDuplicate
	}
	if child.Code != "" {
		if _, exists := s.byCode[child.Code]; exists {
			return sentinel.ErrDuplicate
		}
	}
	c := cloneChild(child)
	s.children[child.ID] = c
	if child.Code != "" {
		s.byCode[child.Code] = child.ID
	}
	return nil
}

func (s *InMemory) GetChild(_ context.Context, id domain.ChildID) (*Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.children[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneChild(c), nil
}

func (s *InMemory) ListChildrenByCaregiver(_ context.Context, caregiverID domain.CaregiverID) ([]*Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Child
	for _, c := range s.children {
		if c.CaregiverID == caregiverID {
			out = append(out, cloneChild(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrollmentDate.Before(out[j].EnrollmentDate) })
	return out, nil
}

func (s *InMemory) SetAtRisk(_ context.Context, id domain.ChildID, atRisk bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.children[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.IsAtRisk = atRisk
	return nil
}

func cloneChild(c *Child) *Child {
	out := *c
	if c.BirthWeightKg != nil {
		v := *c.BirthWeightKg
		out.BirthWeightKg = &v
	}
	if c.BirthHeightCm != nil {
		v := *c.BirthHeightCm
		out.BirthHeightCm = &v
	}
	if c.GestationalAgeWeeks != nil {
		v := *c.GestationalAgeWeeks
		out.GestationalAgeWeeks = &v
	}
	return &out
}
