package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/crm-backend/internal/deals/domain"
)

func setupRepo(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgresRepo(db, false), mock, db
}

var stagingCols = []string{
	"id", "client_name", "client_email", "client_phone", "client_company",
	"deal_title", "deal_notes", "status", "created_by", "created_at", "updated_at",
}

var dealCols = []string{
	"id", "client_id", "title", "value", "status", "notes", "created_by", "created_at", "updated_at",
}

func stagingRow(id int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(stagingCols).
		AddRow(id, "Acme", "info@acme.com", "555-0100", "Acme Corp",
			"Website", "rush job", "in_progress", 1, now, now)
}

func TestCreateStaging(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO staging_deals`).
		WithArgs("Acme", "info@acme.com", "", "", "Website", "", "in_progress", int64(1)).
		WillReturnRows(stagingRow(4))

	deal, err := repo.CreateStaging(context.Background(), 1, domain.CreateStagingRequest{
		ClientName:  "Acme",
		ClientEmail: "info@acme.com",
		DealTitle:   "Website",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), deal.ID)
	assert.Equal(t, domain.StatusInProgress, deal.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStaging_Validation(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	_, err := repo.CreateStaging(context.Background(), 1, domain.CreateStagingRequest{DealTitle: "Website"})
	assert.ErrorIs(t, err, domain.ErrClientNameRequired)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStaging(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`FROM staging_deals`).
		WithArgs(int64(1)).
		WillReturnRows(stagingRow(4))

	deals, err := repo.ListStaging(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "Website", deals[0].DealTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromote_NewClient(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM staging_deals WHERE id = \$1 AND created_by = \$2 FOR UPDATE`).
		WithArgs(int64(4), int64(1)).
		WillReturnRows(stagingRow(4))
	mock.ExpectQuery(`SELECT id FROM clients WHERE name = \$1 AND created_by = \$2`).
		WithArgs("Acme", int64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO clients`).
		WithArgs("Acme", "info@acme.com", "555-0100", "Acme Corp", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO deals`).
		WithArgs(int64(7), "Website", "completed", "rush job", int64(1)).
		WillReturnRows(sqlmock.NewRows(dealCols).
			AddRow(20, 7, "Website", nil, "completed", "rush job", 1, now, now))
	mock.ExpectExec(`DELETE FROM staging_deals`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deal, err := repo.Promote(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(20), deal.ID)
	assert.Equal(t, int64(7), deal.ClientID)
	assert.Equal(t, domain.StatusCompleted, deal.Status)
	assert.Nil(t, deal.Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromote_ExistingClient(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM staging_deals WHERE id = \$1 AND created_by = \$2 FOR UPDATE`).
		WithArgs(int64(4), int64(1)).
		WillReturnRows(stagingRow(4))
	mock.ExpectQuery(`SELECT id FROM clients WHERE name = \$1 AND created_by = \$2`).
		WithArgs("Acme", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO deals`).
		WithArgs(int64(7), "Website", "completed", "rush job", int64(1)).
		WillReturnRows(sqlmock.NewRows(dealCols).
			AddRow(21, 7, "Website", nil, "completed", "rush job", 1, now, now))
	mock.ExpectExec(`DELETE FROM staging_deals`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deal, err := repo.Promote(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deal.ClientID, "existing client is reused, not duplicated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromote_StagingNotFound(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM staging_deals WHERE id = \$1 AND created_by = \$2 FOR UPDATE`).
		WithArgs(int64(99), int64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Promote(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrStagingDealNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPromote_RollsBackOnFailure(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM staging_deals WHERE id = \$1 AND created_by = \$2 FOR UPDATE`).
		WithArgs(int64(4), int64(1)).
		WillReturnRows(stagingRow(4))
	mock.ExpectQuery(`SELECT id FROM clients WHERE name = \$1 AND created_by = \$2`).
		WithArgs("Acme", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO deals`).
		WithArgs(int64(7), "Website", "completed", "rush job", int64(1)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Promote(context.Background(), 1, 4)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet(), "the transaction must roll back, leaving the staging row intact")
}

func TestCreateDeal_WithExistingClientID(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	now := time.Now()
	clientID := int64(7)
	value := 1200.0

	mock.ExpectQuery(`SELECT id FROM clients WHERE id = \$1 AND created_by = \$2`).
		WithArgs(clientID, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO deals`).
		WithArgs(clientID, "Consulting", 1200.0, "completed", "", int64(1)).
		WillReturnRows(sqlmock.NewRows(dealCols).
			AddRow(30, 7, "Consulting", 1200.0, "completed", "", 1, now, now))

	deal, err := repo.CreateDeal(context.Background(), 1, domain.CreateDealRequest{
		ClientID:   &clientID,
		DealTitle:  "Consulting",
		DealValue:  &value,
		DealStatus: domain.StatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, deal.Value)
	assert.Equal(t, 1200.0, *deal.Value)
	require.NoError(t, mock.ExpectationsWereMet())
}
