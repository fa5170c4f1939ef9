package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dealdesk/crm-backend/internal/users/domain"
)

var _ Repository = (*PostgresRepo)(nil)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const userColumns = `id, email, password, COALESCE(username,''), COALESCE(first_name,''), COALESCE(last_name,''), created_at, updated_at`

func (r *PostgresRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	q := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresRepo) UpdateProfile(ctx context.Context, id int64, req domain.UpdateProfileRequest) (*domain.User, error) {
	q := fmt.Sprintf(`
UPDATE users
SET email = $2, username = $3, first_name = $4, last_name = $5, updated_at = NOW()
WHERE id = $1
RETURNING %s`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, q, id, req.Email, req.Username, req.FirstName, req.LastName))
}

func (r *PostgresRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	ct, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := ct.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
