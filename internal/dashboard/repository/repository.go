package repository

import (
	"context"
	"time"
)

// Source supplies raw completed-deal counts. Only deals with status
// completed are ever counted; other statuses never reach the dashboard.
// Bucket assembly (zero-fill, ordering, cumulative policy) lives in the
// service so both backings share it.
type Source interface {
	// DailyCompletedCounts returns day-of-month -> count for the owner's
	// completed deals in the given month. Days with no deals are absent.
	DailyCompletedCounts(ctx context.Context, owner int64, year int, month time.Month) (map[int]int, error)
	// MonthlyCompletedCount returns the owner's completed-deal count for the
	// given month.
	MonthlyCompletedCount(ctx context.Context, owner int64, year int, month time.Month) (int, error)
}
