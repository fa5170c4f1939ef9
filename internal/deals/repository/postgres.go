package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	clientsdomain "github.com/dealdesk/crm-backend/internal/clients/domain"
	clientsrepo "github.com/dealdesk/crm-backend/internal/clients/repository"
	"github.com/dealdesk/crm-backend/internal/deals/domain"
)

var _ Repository = (*PostgresRepo)(nil)

type PostgresRepo struct {
	db           *sql.DB
	matchCompany bool
}

func NewPostgresRepo(db *sql.DB, matchCompany bool) *PostgresRepo {
	return &PostgresRepo{db: db, matchCompany: matchCompany}
}

const stagingColumns = `id, client_name, COALESCE(client_email,''), COALESCE(client_phone,''), COALESCE(client_company,''), deal_title, COALESCE(deal_notes,''), status, created_by, created_at, updated_at`

const dealColumns = `id, client_id, title, value, status, COALESCE(notes,''), created_by, created_at, updated_at`

func (r *PostgresRepo) CreateStaging(ctx context.Context, owner int64, req domain.CreateStagingRequest) (*domain.StagingDeal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
INSERT INTO staging_deals (client_name, client_email, client_phone, client_company, deal_title, deal_notes, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING %s`, stagingColumns)

	row := r.db.QueryRowContext(ctx, q,
		req.ClientName, req.ClientEmail, req.ClientPhone, req.ClientCompany,
		req.DealTitle, req.DealNotes, string(domain.StatusInProgress), owner)
	return scanStaging(row)
}

func (r *PostgresRepo) ListStaging(ctx context.Context, owner int64) ([]domain.StagingDeal, error) {
	q := fmt.Sprintf(`
SELECT %s
FROM staging_deals
WHERE created_by = $1
ORDER BY created_at DESC`, stagingColumns)

	rows, err := r.db.QueryContext(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("list staging deals: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StagingDeal, 0, 16)
	for rows.Next() {
		var d domain.StagingDeal
		err := rows.Scan(&d.ID, &d.ClientName, &d.ClientEmail, &d.ClientPhone, &d.ClientCompany,
			&d.DealTitle, &d.DealNotes, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Promote moves a staging deal into the clients/deals tables. The staging row
// is locked for the duration of the transaction so two racing promotions of
// the same id cannot both pass the existence check.
func (r *PostgresRepo) Promote(ctx context.Context, owner, stagingID int64) (*domain.Deal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin promote: %w", err)
	}
	defer tx.Rollback()

	q := fmt.Sprintf(`SELECT %s FROM staging_deals WHERE id = $1 AND created_by = $2 FOR UPDATE`, stagingColumns)
	staging, err := scanStaging(tx.QueryRowContext(ctx, q, stagingID, owner))
	if err != nil {
		return nil, err
	}

	clientID, err := clientsrepo.ResolveOrCreateWith(ctx, tx, owner, staging.ClientName, clientsdomain.Contact{
		Email:   staging.ClientEmail,
		Phone:   staging.ClientPhone,
		Company: staging.ClientCompany,
	}, r.matchCompany)
	if err != nil {
		return nil, err
	}

	// Staging deals never carry a monetary value; the promoted deal's value
	// stays null.
	insertQ := fmt.Sprintf(`
INSERT INTO deals (client_id, title, status, notes, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING %s`, dealColumns)
	deal, err := scanDeal(tx.QueryRowContext(ctx, insertQ,
		clientID, staging.DealTitle, string(domain.StatusCompleted), staging.DealNotes, owner))
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM staging_deals WHERE id = $1`, stagingID); err != nil {
		return nil, fmt.Errorf("delete staging deal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit promote: %w", err)
	}
	return deal, nil
}

func (r *PostgresRepo) CreateDeal(ctx context.Context, owner int64, req domain.CreateDealRequest) (*domain.Deal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	clientID, err := r.resolveDealClient(ctx, owner, req)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
INSERT INTO deals (client_id, title, value, status, notes, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING %s`, dealColumns)
	return scanDeal(r.db.QueryRowContext(ctx, q,
		clientID, req.DealTitle, req.DealValue, string(req.DealStatus), req.DealNotes, owner))
}

func (r *PostgresRepo) resolveDealClient(ctx context.Context, owner int64, req domain.CreateDealRequest) (int64, error) {
	if req.ClientID != nil {
		var id int64
		err := r.db.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE id = $1 AND created_by = $2`, *req.ClientID, owner).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, clientsdomain.ErrClientNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("lookup client: %w", err)
		}
		return id, nil
	}

	return clientsrepo.ResolveOrCreateWith(ctx, r.db, owner, req.ClientName, clientsdomain.Contact{
		Email:   req.ClientEmail,
		Phone:   req.ClientPhone,
		Company: req.ClientCompany,
	}, r.matchCompany)
}

func scanStaging(row *sql.Row) (*domain.StagingDeal, error) {
	var d domain.StagingDeal
	err := row.Scan(&d.ID, &d.ClientName, &d.ClientEmail, &d.ClientPhone, &d.ClientCompany,
		&d.DealTitle, &d.DealNotes, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStagingDealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan staging deal: %w", err)
	}
	return &d, nil
}

func scanDeal(row *sql.Row) (*domain.Deal, error) {
	var (
		d     domain.Deal
		value sql.NullFloat64
	)
	err := row.Scan(&d.ID, &d.ClientID, &d.Title, &value, &d.Status, &d.Notes,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan deal: %w", err)
	}
	if value.Valid {
		v := value.Float64
		d.Value = &v
	}
	return &d, nil
}
