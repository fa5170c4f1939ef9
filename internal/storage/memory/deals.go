package memory

import (
	"context"
	"sort"

	clientsdomain "github.com/dealdesk/crm-backend/internal/clients/domain"
	"github.com/dealdesk/crm-backend/internal/deals/domain"
	dealsrepo "github.com/dealdesk/crm-backend/internal/deals/repository"
)

var _ dealsrepo.Repository = (*Store)(nil)

func (s *Store) CreateStaging(_ context.Context, owner int64, req domain.CreateStagingRequest) (*domain.StagingDeal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextStagingID++
	now := s.now()
	d := &domain.StagingDeal{
		ID:            s.nextStagingID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientCompany: req.ClientCompany,
		DealTitle:     req.DealTitle,
		DealNotes:     req.DealNotes,
		Status:        domain.StatusInProgress,
		CreatedBy:     owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.staging[d.ID] = d

	copied := *d
	return &copied, nil
}

func (s *Store) ListStaging(_ context.Context, owner int64) ([]domain.StagingDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.StagingDeal, 0, len(s.staging))
	for _, d := range s.staging {
		if d.CreatedBy == owner {
			out = append(out, *d)
		}
	}
	// Most-recent-first; ids break ties for deals created in the same instant.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Promote performs the staging transition under the store lock. Removing the
// staging row first is the compare-and-swap on its existence: once it is
// gone, a second promotion of the same id fails the lookup instead of
// duplicating the client and the deal.
func (s *Store) Promote(_ context.Context, owner, stagingID int64) (*domain.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staging, ok := s.staging[stagingID]
	if !ok || staging.CreatedBy != owner {
		return nil, domain.ErrStagingDealNotFound
	}
	delete(s.staging, stagingID)

	clientID, err := s.resolveOrCreateLocked(owner, staging.ClientName, clientsdomain.Contact{
		Email:   staging.ClientEmail,
		Phone:   staging.ClientPhone,
		Company: staging.ClientCompany,
	})
	if err != nil {
		// Undo the removal so the staging deal is not lost. Name is already
		// validated at creation, so this path is unreachable in practice.
		s.staging[stagingID] = staging
		return nil, err
	}

	deal := s.insertDealLocked(owner, clientID, staging.DealTitle, nil, domain.StatusCompleted, staging.DealNotes)
	copied := *deal
	return &copied, nil
}

func (s *Store) CreateDeal(_ context.Context, owner int64, req domain.CreateDealRequest) (*domain.Deal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var clientID int64
	if req.ClientID != nil {
		c, ok := s.clients[*req.ClientID]
		if !ok || c.CreatedBy != owner {
			return nil, clientsdomain.ErrClientNotFound
		}
		clientID = c.ID
	} else {
		var err error
		clientID, err = s.resolveOrCreateLocked(owner, req.ClientName, clientsdomain.Contact{
			Email:   req.ClientEmail,
			Phone:   req.ClientPhone,
			Company: req.ClientCompany,
		})
		if err != nil {
			return nil, err
		}
	}

	deal := s.insertDealLocked(owner, clientID, req.DealTitle, req.DealValue, req.DealStatus, req.DealNotes)
	copied := *deal
	return &copied, nil
}

func (s *Store) insertDealLocked(owner, clientID int64, title string, value *float64, status domain.Status, notes string) *domain.Deal {
	s.nextDealID++
	now := s.now()
	d := &domain.Deal{
		ID:        s.nextDealID,
		ClientID:  clientID,
		Title:     title,
		Value:     value,
		Status:    status,
		Notes:     notes,
		CreatedBy: owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.deals[d.ID] = d
	return d
}
