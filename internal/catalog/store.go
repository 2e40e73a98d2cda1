package catalog

import (
	"context"

	"appeal/pkg/domain"
)

// Store provides read access to the definition catalog plus the seed path.
// List always returns canonical catalog order.
type Store interface {
	List(ctx context.Context) ([]Definition, error)
	Get(ctx context.Context, id domain.DefinitionID) (Definition, error)
	// CreateIfAbsent inserts a definition unless one with the same English
	// title already exists. Returns true when a row was created. Seeding is
	// idempotent because of this.
	CreateIfAbsent(ctx context.Context, def Definition) (bool, error)
}
