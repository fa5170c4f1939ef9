package repository

import (
	"context"

	"github.com/dealdesk/crm-backend/internal/clients/domain"
)

// Repository is the client registry contract shared by both backings.
//
// ResolveOrCreate is the dedup primitive: an exact case-sensitive name match
// scoped to the owner wins, and an existing client keeps its stored contact
// fields even when the caller supplies different ones.
type Repository interface {
	ResolveOrCreate(ctx context.Context, owner int64, name string, contact domain.Contact) (int64, error)
	ListRefs(ctx context.Context, owner int64) ([]domain.Ref, error)
	ListWithDealSummary(ctx context.Context, owner int64) ([]domain.Summary, error)
}
