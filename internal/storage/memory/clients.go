package memory

import (
	"context"
	"sort"

	"github.com/dealdesk/crm-backend/internal/clients/domain"
	clientsrepo "github.com/dealdesk/crm-backend/internal/clients/repository"
	dealsdomain "github.com/dealdesk/crm-backend/internal/deals/domain"
)

var _ clientsrepo.Repository = (*Store)(nil)

func (s *Store) ResolveOrCreate(_ context.Context, owner int64, name string, contact domain.Contact) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveOrCreateLocked(owner, name, contact)
}

// resolveOrCreateLocked holds the dedup rule: exact case-sensitive name match
// within the owner (optionally also company). First write wins — an existing
// client's contact fields are never overwritten here. Callers hold s.mu.
func (s *Store) resolveOrCreateLocked(owner int64, name string, contact domain.Contact) (int64, error) {
	if name == "" {
		return 0, domain.ErrNameRequired
	}

	for _, c := range s.clients {
		if c.CreatedBy != owner || c.Name != name {
			continue
		}
		if s.matchCompany && c.Company != contact.Company {
			continue
		}
		return c.ID, nil
	}

	s.nextClientID++
	now := s.now()
	c := &domain.Client{
		ID:        s.nextClientID,
		Name:      name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		CreatedBy: owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.clients[c.ID] = c
	return c.ID, nil
}

func (s *Store) ListRefs(_ context.Context, owner int64) ([]domain.Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Ref, 0, len(s.clients))
	for _, c := range s.clients {
		if c.CreatedBy != owner {
			continue
		}
		out = append(out, domain.Ref{ID: c.ID, Name: c.Name, Company: c.Company})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) ListWithDealSummary(_ context.Context, owner int64) ([]domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Summary, 0, len(s.clients))
	for _, c := range s.clients {
		if c.CreatedBy != owner {
			continue
		}

		sum := domain.Summary{Client: *c}
		for _, d := range s.deals {
			if d.ClientID != c.ID || d.Status != dealsdomain.StatusCompleted {
				continue
			}
			sum.DealCount++
			if d.Value != nil {
				sum.TotalValue += *d.Value
			}
			if sum.LastDealDate == nil || d.CreatedAt.After(*sum.LastDealDate) {
				t := d.CreatedAt
				sum.LastDealDate = &t
			}
		}
		out = append(out, sum)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
