package registration

import (
	"context"

	"github.com/lib/pq"

	"kingdomstudio/internal/adapters/storage"
	domain "kingdomstudio/internal/domain/registration"
)

// PostgresStore implements Store against the remote store.
// Submissions come from anonymous visitors, so Create uses the public
// pool; listing and deleting need the privileged pool.
type PostgresStore struct {
	public     storage.SQLDB
	privileged storage.SQLDB
}

// NewPostgresStore creates a new RegistrationStore.
func NewPostgresStore(public, privileged storage.SQLDB) *PostgresStore {
	return &PostgresStore{public: public, privileged: privileged}
}

// List retrieves all registrations, newest first.
// PRE: privileged credentials are configured
// POST: Returns every row ordered by created_at descending
func (s *PostgresStore) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := s.privileged.QueryContext(ctx, `SELECT id, full_name, phone_number, country, industry, business_idea,
		open_to_collaboration, born_again, available_8_weeks, time_preference, days_preference,
		payment_method, payment_proof, created_at
		FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Registration{}
	for rows.Next() {
		var r domain.Registration
		if err := rows.Scan(&r.ID, &r.FullName, &r.PhoneNumber, &r.Country, &r.Industry, &r.BusinessIdea,
			&r.OpenToCollaboration, &r.BornAgain, &r.Available8Weeks, &r.TimePreference, pq.Array(&r.DaysPreference),
			&r.PaymentMethod, &r.PaymentProof, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Create inserts a submitted registration.
// PRE: value has been validated and carries an id and created_at
// POST: Row is persisted
func (s *PostgresStore) Create(ctx context.Context, value domain.Registration) error {
	_, err := s.public.ExecContext(ctx, `INSERT INTO registrations (id, full_name, phone_number, country, industry,
		business_idea, open_to_collaboration, born_again, available_8_weeks, time_preference, days_preference,
		payment_method, payment_proof, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		value.ID, value.FullName, value.PhoneNumber, value.Country, value.Industry,
		value.BusinessIdea, value.OpenToCollaboration, value.BornAgain, value.Available8Weeks, value.TimePreference,
		pq.Array(value.DaysPreference), value.PaymentMethod, value.PaymentProof, value.CreatedAt,
	)
	return err
}

// Delete removes a registration. Deleting a missing id is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.privileged.ExecContext(ctx, "DELETE FROM registrations WHERE id = $1", id)
	return err
}
