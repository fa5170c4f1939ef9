package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/crm-backend/internal/dashboard/domain"
)

// stubSource returns canned counts keyed by year/month.
type stubSource struct {
	daily   map[int]int
	monthly map[string]int
}

func (s *stubSource) DailyCompletedCounts(_ context.Context, _ int64, _ int, _ time.Month) (map[int]int, error) {
	return s.daily, nil
}

func (s *stubSource) MonthlyCompletedCount(_ context.Context, _ int64, year int, month time.Month) (int, error) {
	return s.monthly[time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")], nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCurrentMonth_Cumulative(t *testing.T) {
	now := time.Date(2026, time.April, 20, 10, 0, 0, 0, time.UTC)
	src := &stubSource{daily: map[int]int{1: 2, 3: 1, 20: 3}}
	svc := NewAt(src, true, fixedNow(now))

	buckets, err := svc.BucketedCounts(context.Background(), 1, domain.TimeframeCurrentMonth)
	require.NoError(t, err)
	require.Len(t, buckets, 30, "April has 30 day buckets")

	assert.Equal(t, domain.Bucket{Period: "1", Deals: 2}, buckets[0])
	assert.Equal(t, domain.Bucket{Period: "2", Deals: 2}, buckets[1], "running total carries forward")
	assert.Equal(t, domain.Bucket{Period: "3", Deals: 3}, buckets[2])
	assert.Equal(t, domain.Bucket{Period: "20", Deals: 6}, buckets[19])
	assert.Equal(t, domain.Bucket{Period: "30", Deals: 6}, buckets[29])
}

func TestCurrentMonth_PerDay(t *testing.T) {
	now := time.Date(2026, time.April, 20, 10, 0, 0, 0, time.UTC)
	src := &stubSource{daily: map[int]int{1: 2, 3: 1}}
	svc := NewAt(src, false, fixedNow(now))

	buckets, err := svc.BucketedCounts(context.Background(), 1, domain.TimeframeCurrentMonth)
	require.NoError(t, err)
	require.Len(t, buckets, 30)

	assert.Equal(t, 2, buckets[0].Deals)
	assert.Equal(t, 0, buckets[1].Deals, "per-day policy does not accumulate")
	assert.Equal(t, 1, buckets[2].Deals)
	assert.Equal(t, 0, buckets[29].Deals)
}

func TestLast3Months_AlwaysThreeBuckets(t *testing.T) {
	now := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	src := &stubSource{monthly: map[string]int{"2026-03": 4, "2026-05": 1}}
	svc := NewAt(src, true, fixedNow(now))

	buckets, err := svc.BucketedCounts(context.Background(), 1, domain.TimeframeLast3Months)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	assert.Equal(t, []domain.Bucket{
		{Period: "Mar", Deals: 4},
		{Period: "Apr", Deals: 0},
		{Period: "May", Deals: 1},
	}, buckets, "oldest first, zero-filled")
}

func TestLast3Months_CrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	src := &stubSource{monthly: map[string]int{"2025-11": 2, "2025-12": 3, "2026-01": 5}}
	svc := NewAt(src, true, fixedNow(now))

	buckets, err := svc.BucketedCounts(context.Background(), 1, domain.TimeframeLast3Months)
	require.NoError(t, err)
	require.Equal(t, []domain.Bucket{
		{Period: "Nov", Deals: 2},
		{Period: "Dec", Deals: 3},
		{Period: "Jan", Deals: 5},
	}, buckets)
}

func TestYearToDate_JanThroughCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)
	src := &stubSource{monthly: map[string]int{"2026-01": 1, "2026-04": 2}}
	svc := NewAt(src, true, fixedNow(now))

	buckets, err := svc.BucketedCounts(context.Background(), 1, domain.TimeframeYearToDate)
	require.NoError(t, err)
	require.Len(t, buckets, 5, "May means Jan..May")

	assert.Equal(t, "Jan", buckets[0].Period)
	assert.Equal(t, "May", buckets[4].Period)
	assert.Equal(t, 1, buckets[0].Deals)
	assert.Equal(t, 2, buckets[3].Deals)
	assert.Equal(t, 0, buckets[4].Deals)
}

func TestYearToDate_JanuaryHasOneBucket(t *testing.T) {
	now := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	svc := NewAt(&stubSource{}, true, fixedNow(now))

	buckets, err := svc.BucketedCounts(context.Background(), 1, domain.TimeframeYearToDate)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "Jan", buckets[0].Period)
}

func TestParseTimeframe(t *testing.T) {
	for _, valid := range []string{"current_month", "last_3_months", "year_to_date"} {
		_, err := domain.ParseTimeframe(valid)
		assert.NoError(t, err, valid)
	}

	_, err := domain.ParseTimeframe("all_time")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeframe)
}
