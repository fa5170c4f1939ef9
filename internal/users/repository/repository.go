package repository

import (
	"context"

	"github.com/dealdesk/crm-backend/internal/users/domain"
)

// Repository is the user store contract shared by both backings.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, req domain.UpdateProfileRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
