package catalog

import (
	"context"
	"errors"
	"testing"

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

func TestRepo_Stats(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT b.category, .+ FROM brands b LEFT JOIN products p").
		WillReturnRows(pgxmock.NewRows([]string{"category", "brands", "products", "units"}).
			AddRow("pods", 2, 5, 40).
			AddRow("snus", 1, 1, 0))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 5)
	assert.Equal(t, Stat{Category: Snus, Brands: 1, Products: 1, Units: 0}, stats[0])
	assert.Equal(t, Stat{Category: Pods, Brands: 2, Products: 5, Units: 40}, stats[1])
	assert.Equal(t, Stat{Category: Liquids}, stats[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Stats_Error(t *testing.T) {
	repo, mock := setupRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT b.category").WillReturnError(errors.New("boom"))

	_, err := repo.Stats(context.Background())
	assert.ErrorContains(t, err, "category stats")
	assert.NoError(t, mock.ExpectationsWereMet())
}
