package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/crm-backend/internal/clients/domain"
)

func setupRepo(t *testing.T, matchCompany bool) (*PostgresRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgresRepo(db, matchCompany), mock, db
}

func TestResolveOrCreate_ExistingClient(t *testing.T) {
	repo, mock, db := setupRepo(t, false)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM clients WHERE name = \$1 AND created_by = \$2`).
		WithArgs("Acme", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.ResolveOrCreate(context.Background(), 1, "Acme", domain.Contact{
		Email: "someone-else@acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	// No insert or update: existing contact fields stay untouched.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveOrCreate_InsertsWhenMissing(t *testing.T) {
	repo, mock, db := setupRepo(t, false)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM clients WHERE name = \$1 AND created_by = \$2`).
		WithArgs("Acme", int64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO clients`).
		WithArgs("Acme", "info@acme.com", "555-0100", "Acme Corp", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := repo.ResolveOrCreate(context.Background(), 1, "Acme", domain.Contact{
		Email:   "info@acme.com",
		Phone:   "555-0100",
		Company: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveOrCreate_EmptyName(t *testing.T) {
	repo, mock, db := setupRepo(t, false)
	defer db.Close()

	_, err := repo.ResolveOrCreate(context.Background(), 1, "", domain.Contact{})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveOrCreate_MatchCompanyMode(t *testing.T) {
	repo, mock, db := setupRepo(t, true)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM clients WHERE name = \$1 AND company = \$2 AND created_by = \$3`).
		WithArgs("Jane", "Globex", int64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO clients`).
		WithArgs("Jane", "", "", "Globex", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	id, err := repo.ResolveOrCreate(context.Background(), 1, "Jane", domain.Contact{Company: "Globex"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRefs(t *testing.T) {
	repo, mock, db := setupRepo(t, false)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, COALESCE\(company,''\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "company"}).
			AddRow(2, "Acme", "Acme Corp").
			AddRow(5, "Globex", ""))

	refs, err := repo.ListRefs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, domain.Ref{ID: 2, Name: "Acme", Company: "Acme Corp"}, refs[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithDealSummary(t *testing.T) {
	repo, mock, db := setupRepo(t, false)
	defer db.Close()

	created := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	lastDeal := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM clients c`).
		WithArgs("completed", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "company",
			"created_by", "created_at", "updated_at",
			"deal_count", "total_value", "last_deal_date",
		}).
			AddRow(2, "Acme", "info@acme.com", "", "Acme Corp", 1, created, created, 3, 4500.0, lastDeal).
			AddRow(5, "Quiet Co", "", "", "", 1, created, created, 0, 0.0, nil))

	out, err := repo.ListWithDealSummary(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, 3, out[0].DealCount)
	assert.Equal(t, 4500.0, out[0].TotalValue)
	require.NotNil(t, out[0].LastDealDate)
	assert.Equal(t, lastDeal, *out[0].LastDealDate)

	assert.Equal(t, 0, out[1].DealCount)
	assert.Nil(t, out[1].LastDealDate, "zero completed deals report a null last deal date")
	require.NoError(t, mock.ExpectationsWereMet())
}
