package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dealsdomain "github.com/dealdesk/crm-backend/internal/deals/domain"
)

var _ Source = (*PostgresSource)(nil)

type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) DailyCompletedCounts(ctx context.Context, owner int64, year int, month time.Month) (map[int]int, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.QueryContext(ctx, `
SELECT EXTRACT(DAY FROM created_at)::int AS day, COUNT(*)::int
FROM deals
WHERE created_by = $1
  AND status = $2
  AND created_at >= $3
  AND created_at < $4
GROUP BY day`, owner, string(dealsdomain.StatusCompleted), start, end)
	if err != nil {
		return nil, fmt.Errorf("daily deal counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var day, n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	return counts, rows.Err()
}

func (s *PostgresSource) MonthlyCompletedCount(ctx context.Context, owner int64, year int, month time.Month) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*)::int
FROM deals
WHERE created_by = $1
  AND status = $2
  AND EXTRACT(MONTH FROM created_at) = $3
  AND EXTRACT(YEAR FROM created_at) = $4`,
		owner, string(dealsdomain.StatusCompleted), int(month), year).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("monthly deal count: %w", err)
	}
	return n, nil
}
