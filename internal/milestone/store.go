package milestone

import (
	"context"

	"appeal/pkg/domain"
)

// Store persists progress rows. Implementations must make Update a
// compare-and-swap on the row's previous status so concurrent transitions on
// the same row cannot interleave: the losing writer gets
// sentinel.ErrConflict and the service surfaces it as an invalid transition.
type Store interface {
	Get(ctx context.Context, id domain.ProgressID) (*Progress, error)
	ListByChild(ctx context.Context, childID domain.ChildID) ([]*Progress, error)
	// CreateIfAbsent inserts a row unless one exists for the same
	// (child, definition) pair. Returns true when a row was created.
	CreateIfAbsent(ctx context.Context, p *Progress) (bool, error)
	// Update writes the mutated row, guarded on the status it was read at.
	Update(ctx context.Context, p *Progress, expected Status) error
}
