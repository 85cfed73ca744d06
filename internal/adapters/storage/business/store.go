package business

import (
	"context"

	domain "kingdomstudio/internal/domain/business"
)

// Store persists Business records in the businesses table.
type Store interface {
	List(ctx context.Context) ([]domain.Business, error)
	Create(ctx context.Context, value domain.Business) error
	Update(ctx context.Context, id string, patch domain.Patch) error
	Delete(ctx context.Context, id string) error
}
