package encounter

import (
	"context"

	"appeal/pkg/domain"
)

// Store persists encounters. ListByChild returns encounters ordered by
// Date ascending.
type Store interface {
	Create(ctx context.Context, e *Encounter) error
	Get(ctx context.Context, id domain.EncounterID) (*Encounter, error)
	ListByChild(ctx context.Context, childID domain.ChildID) ([]*Encounter, error)
}
