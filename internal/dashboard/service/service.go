package service

import (
	"context"
	"strconv"
	"time"

	"github.com/dealdesk/crm-backend/internal/dashboard/domain"
	"github.com/dealdesk/crm-backend/internal/dashboard/repository"
)

// Service turns raw completed-deal counts into chart buckets. Buckets are
// always chronological, oldest first, and never omitted: months or days with
// zero deals report zero.
type Service struct {
	src repository.Source
	// cumulative switches current_month between a running total and a
	// per-day count.
	cumulative bool
	now        func() time.Time
}

func New(src repository.Source, cumulative bool) *Service {
	return &Service{src: src, cumulative: cumulative, now: time.Now}
}

// NewAt pins the clock, for tests.
func NewAt(src repository.Source, cumulative bool, now func() time.Time) *Service {
	return &Service{src: src, cumulative: cumulative, now: now}
}

func (s *Service) BucketedCounts(ctx context.Context, owner int64, tf domain.Timeframe) ([]domain.Bucket, error) {
	now := s.now()

	switch tf {
	case domain.TimeframeCurrentMonth:
		return s.currentMonth(ctx, owner, now)
	case domain.TimeframeLast3Months:
		return s.trailingMonths(ctx, owner, now, 3)
	case domain.TimeframeYearToDate:
		return s.trailingMonths(ctx, owner, now, int(now.Month()))
	}
	return nil, domain.ErrInvalidTimeframe
}

func (s *Service) currentMonth(ctx context.Context, owner int64, now time.Time) ([]domain.Bucket, error) {
	counts, err := s.src.DailyCompletedCounts(ctx, owner, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	days := daysInMonth(now.Year(), now.Month())
	buckets := make([]domain.Bucket, 0, days)
	running := 0
	for day := 1; day <= days; day++ {
		n := counts[day]
		if s.cumulative {
			running += n
			n = running
		}
		buckets = append(buckets, domain.Bucket{Period: strconv.Itoa(day), Deals: n})
	}
	return buckets, nil
}

// trailingMonths builds one bucket per month for the n months ending at the
// current one. last_3_months is n=3; year_to_date is n=current month index,
// which makes January the first bucket.
func (s *Service) trailingMonths(ctx context.Context, owner int64, now time.Time, n int) ([]domain.Bucket, error) {
	buckets := make([]domain.Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		count, err := s.src.MonthlyCompletedCount(ctx, owner, monthStart.Year(), monthStart.Month())
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, domain.Bucket{
			Period: domain.MonthAbbrev(monthStart.Month()),
			Deals:  count,
		})
	}
	return buckets, nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
