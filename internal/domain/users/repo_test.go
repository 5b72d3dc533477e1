package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewRepo(mock), mock
}

var userColumns = []string{
	"id", "telegram_id", "username", "first_name", "last_name", "role", "created_at", "updated_at",
}

func TestRepo_UpsertFromTelegram(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO users .+ ON CONFLICT \\(telegram_id\\) DO UPDATE SET").
		WithArgs(int64(42), "boss", "Ivan", "", "admin").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), int64(42), "boss", "Ivan", "", "admin", now, now))

	u, err := repo.UpsertFromTelegram(context.Background(), Telegram{ID: 42, Username: "boss", FirstName: "Ivan"}, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "@boss", u.DisplayName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpsertFromTelegram_Error(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(int64(42), "", "", "", "user").
		WillReturnError(errors.New("boom"))

	_, err := repo.UpsertFromTelegram(context.Background(), Telegram{ID: 42}, RoleUser)
	assert.ErrorContains(t, err, "upsert user 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByTelegramID_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE telegram_id = \\$1").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByTelegramID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminList(t *testing.T) {
	l := NewAdminList([]int64{1, 2})
	assert.True(t, l.IsAdmin(1))
	assert.False(t, l.IsAdmin(3))
	assert.Equal(t, RoleAdmin, l.RoleOf(2))
	assert.Equal(t, RoleUser, l.RoleOf(3))
	assert.Equal(t, "Ivan Petrov", User{FirstName: "Ivan", LastName: "Petrov"}.DisplayName())
}
