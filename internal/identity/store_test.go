package identity

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmelody/internal/apperr"
)

func setupMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStoreWithDB(mock), mock
}

func TestCreateUser(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "andi", "hashed", "Andi Wijaya").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("user-abc"))

	id, err := store.CreateUser(context.Background(), "andi", "hashed", "Andi Wijaya")
	require.NoError(t, err)
	assert.Equal(t, "user-abc", id)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "andi", "hashed", "Andi Wijaya").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.CreateUser(context.Background(), "andi", "hashed", "Andi Wijaya")

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindInvariant, ae.Kind)
}

func TestGetUserByIDNotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT id, username, fullname FROM users").
		WithArgs("user-x").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "fullname"}))

	_, err := store.GetUserByID(context.Background(), "user-x")

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
}

func TestGetCredentialsUnknownUsername(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT id, password FROM users").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password"}))

	_, _, err := store.GetCredentials(context.Background(), "ghost")

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindUnauthorized, ae.Kind)
}
