package registration

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "kingdomstudio/internal/domain/registration"
)

var registrationColumns = []string{
	"id", "full_name", "phone_number", "country", "industry", "business_idea",
	"open_to_collaboration", "born_again", "available_8_weeks", "time_preference", "days_preference",
	"payment_method", "payment_proof", "created_at",
}

func TestListUsesPrivilegedPool(t *testing.T) {
	public, _, err := sqlmock.New()
	require.NoError(t, err)
	defer public.Close()
	privileged, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer privileged.Close()

	store := NewPostgresStore(public, privileged)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(registrationColumns).
			AddRow("r1", "Amani", "+254711000111", "Kenya", "Agriculture", "Cold storage",
				"yes", "yes", "yes", "evening", "{Monday,Wednesday}", "M-Pesa", "QX12", created))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Monday", "Wednesday"}, got[0].DaysPreference)
	assert.Equal(t, created, got[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUsesPublicPool(t *testing.T) {
	public, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer public.Close()
	privileged, privMock, err := sqlmock.New()
	require.NoError(t, err)
	defer privileged.Close()

	store := NewPostgresStore(public, privileged)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := domain.Registration{
		ID: "r1", FullName: "Amani", PhoneNumber: "+254711000111", Country: "Kenya", Industry: "Agriculture",
		BusinessIdea: "Cold storage", OpenToCollaboration: "yes", BornAgain: "not-sure", Available8Weeks: "heavy",
		TimePreference: "morning", DaysPreference: []string{"Friday"}, PaymentMethod: "M-Pesa", PaymentProof: "QX12",
		CreatedAt: created,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registrations")).
		WithArgs("r1", "Amani", "+254711000111", "Kenya", "Agriculture", "Cold storage", "yes", "not-sure", "heavy",
			"morning", sqlmock.AnyArg(), "M-Pesa", "QX12", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Create(context.Background(), r))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, privMock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	public, _, err := sqlmock.New()
	require.NoError(t, err)
	defer public.Close()
	privileged, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer privileged.Close()

	store := NewPostgresStore(public, privileged)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM registrations WHERE id = $1")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
