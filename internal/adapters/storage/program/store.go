package program

import (
	"context"

	domain "kingdomstudio/internal/domain/program"
)

// Store persists Program records in the programs table.
// There is no Create or Delete: the three canonical rows are seeded.
type Store interface {
	List(ctx context.Context) ([]domain.Program, error)
	Update(ctx context.Context, id string, patch domain.Patch) error
	InsertMissing(ctx context.Context, programs []domain.Program) error
}
