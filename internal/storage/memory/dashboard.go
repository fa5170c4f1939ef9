package memory

import (
	"context"
	"time"

	dashrepo "github.com/dealdesk/crm-backend/internal/dashboard/repository"
	dealsdomain "github.com/dealdesk/crm-backend/internal/deals/domain"
)

var _ dashrepo.Source = (*Store)(nil)

func (s *Store) DailyCompletedCounts(_ context.Context, owner int64, year int, month time.Month) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[int]int)
	for _, d := range s.deals {
		if d.CreatedBy != owner || d.Status != dealsdomain.StatusCompleted {
			continue
		}
		if d.CreatedAt.Year() != year || d.CreatedAt.Month() != month {
			continue
		}
		counts[d.CreatedAt.Day()]++
	}
	return counts, nil
}

func (s *Store) MonthlyCompletedCount(_ context.Context, owner int64, year int, month time.Month) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, d := range s.deals {
		if d.CreatedBy != owner || d.Status != dealsdomain.StatusCompleted {
			continue
		}
		if d.CreatedAt.Year() == year && d.CreatedAt.Month() == month {
			n++
		}
	}
	return n, nil
}
