package business

import (
	"context"

	"kingdomstudio/internal/adapters/storage"
	domain "kingdomstudio/internal/domain/business"
)

// PostgresStore implements Store against the remote store.
// Reads go through the public pool, writes through the privileged one.
type PostgresStore struct {
	read  storage.SQLDB
	write storage.SQLDB
}

// NewPostgresStore creates a new BusinessStore.
func NewPostgresStore(read, write storage.SQLDB) *PostgresStore {
	return &PostgresStore{read: read, write: write}
}

// List retrieves all businesses, newest first.
// PRE: none
// POST: Returns every row ordered by created_at descending
func (s *PostgresStore) List(ctx context.Context) ([]domain.Business, error) {
	rows, err := s.read.QueryContext(ctx,
		"SELECT id, name, logo, category, description, is_new, created_at FROM businesses ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Business{}
	for rows.Next() {
		var b domain.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Logo, &b.Category, &b.Description, &b.IsNew, &b.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// Create inserts a new business.
// PRE: value has been validated and carries an id and created_at
// POST: Row is persisted
func (s *PostgresStore) Create(ctx context.Context, value domain.Business) error {
	_, err := s.write.ExecContext(ctx,
		"INSERT INTO businesses (id, name, logo, category, description, is_new, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		value.ID, value.Name, value.Logo, value.Category, value.Description, value.IsNew, value.CreatedAt,
	)
	return err
}

// Update writes only the fields present in patch.
// PRE: patch is non-empty and validated
// POST: Present fields are overwritten; other fields and id are untouched
func (s *PostgresStore) Update(ctx context.Context, id string, patch domain.Patch) error {
	b := storage.NewUpdate("businesses")
	if patch.Name != nil {
		b.Set("name", *patch.Name)
	}
	if patch.Logo != nil {
		b.Set("logo", *patch.Logo)
	}
	if patch.Category != nil {
		b.Set("category", *patch.Category)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.IsNew != nil {
		b.Set("is_new", *patch.IsNew)
	}
	if b.Empty() {
		return nil
	}
	query, args := b.WhereID(id)
	_, err := s.write.ExecContext(ctx, query, args...)
	return err
}

// Delete removes a business. Deleting a missing id is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.write.ExecContext(ctx, "DELETE FROM businesses WHERE id = $1", id)
	return err
}
