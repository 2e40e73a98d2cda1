package catalog

import (
	"context"
	"sort"
	"sync"

	"appeal/internal/i18n"
	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
)

// InMemory is the map-backed catalog store used in tests and single-node
// deployments without Postgres.
type InMemory struct {
	mu   sync.RWMutex
	defs []Definition
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) List(_ context.Context) ([]Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}

func (s *InMemory) Get(_ context.Context, id domain.DefinitionID) (Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.defs {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, sentinel.ErrNotFound
}

func (s *InMemory) CreateIfAbsent(_ context.Context, def Definition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := def.Title.Resolve(i18n.DefaultLocale)
	for _, d := range s.defs {
		if d.Title.Resolve(i18n.DefaultLocale) == title {
			return false, nil
		}
	}
	if def.Position == 0 {
		def.Position = len(s.defs) + 1
	}
	s.defs = append(s.defs, def)
	return true, nil
}
