package repository

import (
	"context"

	"github.com/dealdesk/crm-backend/internal/deals/domain"
)

// Repository is the deal lifecycle contract shared by both backings.
//
// Promote is the staging transition: resolve-or-create the client named by
// the staging deal, insert a completed deal, delete the staging row. The
// postgres backing runs the three steps in one transaction; the in-memory
// backing holds the store lock across them.
type Repository interface {
	CreateStaging(ctx context.Context, owner int64, req domain.CreateStagingRequest) (*domain.StagingDeal, error)
	ListStaging(ctx context.Context, owner int64) ([]domain.StagingDeal, error)
	Promote(ctx context.Context, owner, stagingID int64) (*domain.Deal, error)
	CreateDeal(ctx context.Context, owner int64, req domain.CreateDealRequest) (*domain.Deal, error)
}
