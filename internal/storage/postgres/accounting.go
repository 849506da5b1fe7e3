// internal/storage/postgres/accounting.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"foyer-finance/internal/domain"
)

// === AccountingStorage ===

func (s *Storage) AccountingRows(ctx context.Context, orgID string, year int) ([]domain.NetTransaction, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	rows, err := s.db.Query(ctx, `
		SELECT id, amount, refund_total, description, accounting_date,
			category_id, category_name, subcategory_id, subcategory_name,
			user_id, is_income
		FROM transactions_with_refunds
		WHERE organization_id = $1
		AND accounting_date >= $2 AND accounting_date < $3
		ORDER BY accounting_date, id
	`, orgID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query accounting rows: %w", err)
	}
	defer rows.Close()

	return scanNetTransactions(rows)
}

func (s *Storage) AccountingYears(ctx context.Context, orgID string) ([]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM accounting_date)::int AS year
		FROM transactions
		WHERE organization_id = $1
		ORDER BY year DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query accounting years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
