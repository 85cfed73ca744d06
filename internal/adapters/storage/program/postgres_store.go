package program

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"kingdomstudio/internal/adapters/storage"
	domain "kingdomstudio/internal/domain/program"
)

// PostgresStore implements Store against the remote store.
// accent_colors and features are text[] columns.
type PostgresStore struct {
	read  storage.SQLDB
	write storage.SQLDB
}

// NewPostgresStore creates a new ProgramStore.
func NewPostgresStore(read, write storage.SQLDB) *PostgresStore {
	return &PostgresStore{read: read, write: write}
}

// List retrieves all programs ordered by id.
func (s *PostgresStore) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := s.read.QueryContext(ctx,
		"SELECT id, name, description, primary_color, accent_colors, features FROM programs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Program{}
	for rows.Next() {
		var p domain.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PrimaryColor, pq.Array(&p.AccentColors), pq.Array(&p.Features)); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Update writes only the fields present in patch.
// PRE: id is canonical, patch is validated
// POST: Present fields are overwritten
func (s *PostgresStore) Update(ctx context.Context, id string, patch domain.Patch) error {
	b := storage.NewUpdate("programs")
	if patch.Name != nil {
		b.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.PrimaryColor != nil {
		b.Set("primary_color", *patch.PrimaryColor)
	}
	if patch.AccentColors != nil {
		b.Set("accent_colors", pq.Array(patch.AccentColors))
	}
	if patch.Features != nil {
		b.Set("features", pq.Array(patch.Features))
	}
	if b.Empty() {
		return nil
	}
	query, args := b.WhereID(id)
	_, err := s.write.ExecContext(ctx, query, args...)
	return err
}

// InsertMissing writes the given programs in one statement, skipping ids
// that already exist so edited rows are never overwritten.
// PRE: programs is non-empty
// POST: Every id in programs has a row
func (s *PostgresStore) InsertMissing(ctx context.Context, programs []domain.Program) error {
	if len(programs) == 0 {
		return nil
	}
	values := make([]string, 0, len(programs))
	args := make([]any, 0, len(programs)*6)
	for i, p := range programs {
		n := i * 6
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, p.ID, p.Name, p.Description, p.PrimaryColor, pq.Array(p.AccentColors), pq.Array(p.Features))
	}
	query := "INSERT INTO programs (id, name, description, primary_color, accent_colors, features) VALUES " +
		strings.Join(values, ", ") + " ON CONFLICT (id) DO NOTHING"
	_, err := s.write.ExecContext(ctx, query, args...)
	return err
}
