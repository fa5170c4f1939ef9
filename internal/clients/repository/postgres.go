package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dealdesk/crm-backend/internal/clients/domain"
	dealsdomain "github.com/dealdesk/crm-backend/internal/deals/domain"
)

var _ Repository = (*PostgresRepo)(nil)

type PostgresRepo struct {
	db *sql.DB
	// matchCompany widens the dedup key to (name, company).
	matchCompany bool
}

func NewPostgresRepo(db *sql.DB, matchCompany bool) *PostgresRepo {
	return &PostgresRepo{db: db, matchCompany: matchCompany}
}

// Querier is satisfied by both *sql.DB and *sql.Tx so the resolve-or-create
// step can run inside the promotion transaction.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ResolveOrCreateWith looks up a client by exact name (optionally also
// company) for the owner and inserts one when absent. The returned id is
// stable across repeated calls with the same name; contact fields of an
// existing client are left untouched.
func ResolveOrCreateWith(ctx context.Context, q Querier, owner int64, name string, contact domain.Contact, matchCompany bool) (int64, error) {
	if name == "" {
		return 0, domain.ErrNameRequired
	}

	var (
		id  int64
		err error
	)
	if matchCompany {
		err = q.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE name = $1 AND company = $2 AND created_by = $3`,
			name, contact.Company, owner).Scan(&id)
	} else {
		err = q.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE name = $1 AND created_by = $2`,
			name, owner).Scan(&id)
	}
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup client: %w", err)
	}

	err = q.QueryRowContext(ctx,
		`INSERT INTO clients (name, email, phone, company, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		name, contact.Email, contact.Phone, contact.Company, owner).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) ResolveOrCreate(ctx context.Context, owner int64, name string, contact domain.Contact) (int64, error) {
	return ResolveOrCreateWith(ctx, r.db, owner, name, contact, r.matchCompany)
}

func (r *PostgresRepo) ListRefs(ctx context.Context, owner int64) ([]domain.Ref, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(company,'')
		 FROM clients
		 WHERE created_by = $1
		 ORDER BY name ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Ref, 0, 16)
	for rows.Next() {
		var c domain.Ref
		if err := rows.Scan(&c.ID, &c.Name, &c.Company); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListWithDealSummary(ctx context.Context, owner int64) ([]domain.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT
	c.id, c.name, COALESCE(c.email,''), COALESCE(c.phone,''), COALESCE(c.company,''),
	c.created_by, c.created_at, c.updated_at,
	COUNT(d.id) AS deal_count,
	COALESCE(SUM(d.value), 0) AS total_value,
	MAX(d.created_at) AS last_deal_date
FROM clients c
LEFT JOIN deals d ON d.client_id = c.id AND d.status = $1
WHERE c.created_by = $2
GROUP BY c.id
ORDER BY c.created_at DESC`, string(dealsdomain.StatusCompleted), owner)
	if err != nil {
		return nil, fmt.Errorf("list clients with summary: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Summary, 0, 16)
	for rows.Next() {
		var (
			s        domain.Summary
			lastDeal sql.NullTime
		)
		err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.Phone, &s.Company,
			&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
			&s.DealCount, &s.TotalValue, &lastDeal,
		)
		if err != nil {
			return nil, err
		}
		if lastDeal.Valid {
			t := lastDeal.Time
			s.LastDealDate = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
