package store

import (
	"context"

	"github.com/cakeshelf/cakeshelf/internal/model"
)

// Store exposes the persistence operations required by the cake service.
// Implementations live under internal/store/<driver>/ (postgres, sqlite) and
// must enforce the case-insensitive unique index on name so a constraint
// violation surfaces as model.ErrDuplicateName even when the service-level
// pre-check raced with a concurrent writer.
type Store interface {
	// Create persists a new cake with a generated id and timestamps.
	Create(ctx context.Context, c *model.Cake) (*model.Cake, error)
	// GetByID returns the full record or model.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Cake, error)
	// GetByName performs a case-insensitive equality lookup on name.
	GetByName(ctx context.Context, name string) (*model.Cake, error)
	// List returns every cake projected to id/name/imageUrl, newest first.
	List(ctx context.Context) ([]*model.CakeSummary, error)
	// Update replaces the mutable fields of c.ID and refreshes updatedAt.
	Update(ctx context.Context, c *model.Cake) (*model.Cake, error)
	// Delete removes the cake or returns model.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
