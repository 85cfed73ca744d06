package registration

import (
	"context"

	domain "kingdomstudio/internal/domain/registration"
)

// Store persists Registration records in the registrations table.
type Store interface {
	List(ctx context.Context) ([]domain.Registration, error)
	Create(ctx context.Context, value domain.Registration) error
	Delete(ctx context.Context, id string) error
}
