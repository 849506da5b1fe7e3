// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foyer-finance/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	db     *pgxpool.Pool
	events notifyHub
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === DirectoryStorage ===

func (s *Storage) UserByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, COALESCE(avatar, ''), COALESCE(organization_id::text, '')
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.Avatar, &u.OrganizationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *Storage) UsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, email, name, COALESCE(avatar, ''), organization_id
		FROM users
		WHERE organization_id = $1
		ORDER BY created_at, id
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Avatar, &u.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Storage) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name, type FROM categories ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) Subcategories(ctx context.Context) ([]domain.Subcategory, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name, category_id FROM subcategories ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []domain.Subcategory
	for rows.Next() {
		var sub domain.Subcategory
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subcategories = append(subcategories, sub)
	}
	return subcategories, rows.Err()
}

// === TransactionStorage ===

func (s *Storage) CreateTransaction(ctx context.Context, tx domain.Transaction) (string, error) {
	if tx.Amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}

	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO transactions
			(amount, description, transaction_date, accounting_date,
			 category_id, subcategory_id, user_id, expense_type, is_income, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, tx.Amount, tx.Description, tx.TransactionDate, tx.AccountingDate,
		tx.CategoryID, nullable(tx.SubcategoryID), tx.UserID, tx.ExpenseType, tx.IsIncome, tx.OrganizationID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

func (s *Storage) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	result, err := s.db.Exec(ctx, `
		UPDATE transactions
		SET amount = $1, description = $2, transaction_date = $3, accounting_date = $4,
			category_id = $5, subcategory_id = $6, user_id = $7, expense_type = $8, is_income = $9
		WHERE id = $10 AND organization_id = $11
	`, tx.Amount, tx.Description, tx.TransactionDate, tx.AccountingDate,
		tx.CategoryID, nullable(tx.SubcategoryID), tx.UserID, tx.ExpenseType, tx.IsIncome,
		tx.ID, tx.OrganizationID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %q not found", tx.ID)
	}
	return nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, orgID, id string) error {
	// Les remboursements suivent via la contrainte ON DELETE CASCADE.
	result, err := s.db.Exec(ctx, `
		DELETE FROM transactions WHERE id = $1 AND organization_id = $2
	`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction %q not found", id)
	}
	return nil
}

func (s *Storage) TransactionsByMonth(ctx context.Context, orgID string, monthStr string) ([]domain.NetTransaction, error) {
	monthTime, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid month format, expected YYYY-MM: %w", err)
	}
	nextMonth := monthTime.AddDate(0, 1, 0)

	rows, err := s.db.Query(ctx, `
		SELECT id, amount, refund_total, description, accounting_date,
			category_id, category_name, subcategory_id, subcategory_name,
			user_id, is_income
		FROM transactions_with_refunds
		WHERE organization_id = $1
		AND accounting_date >= $2 AND accounting_date < $3
		ORDER BY accounting_date, id
	`, orgID, monthTime, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("query month transactions: %w", err)
	}
	defer rows.Close()

	return scanNetTransactions(rows)
}

// InsertTransactionBatch insère un lot en une seule requête ; Postgres
// renvoie les lignes de RETURNING dans l'ordre du VALUES, ce qui garantit
// la correspondance positionnelle attendue par le générateur.
func (s *Storage) InsertTransactionBatch(ctx context.Context, batch []domain.Transaction) ([]string, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO transactions
		(amount, description, transaction_date, accounting_date,
		 category_id, subcategory_id, user_id, expense_type, is_income, organization_id)
		VALUES `)

	args := make([]interface{}, 0, len(batch)*10)
	for i, tx := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 10
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10)
		args = append(args,
			tx.Amount, tx.Description, tx.TransactionDate, tx.AccountingDate,
			tx.CategoryID, nullable(tx.SubcategoryID), tx.UserID, tx.ExpenseType, tx.IsIncome, tx.OrganizationID)
	}
	sb.WriteString(" RETURNING id")

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("insert transaction batch: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, len(batch))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan inserted id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert transaction batch: %w", err)
	}
	if len(ids) != len(batch) {
		return nil, fmt.Errorf("insert transaction batch: expected %d ids, got %d", len(batch), len(ids))
	}

	slog.Debug("transaction batch inserted", "count", len(ids))
	return ids, nil
}

// === RefundStorage ===

func (s *Storage) InsertRefundBatch(ctx context.Context, batch []domain.Refund) error {
	if len(batch) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO refunds
		(transaction_id, amount, refund_date, description, user_id, organization_id)
		VALUES `)

	args := make([]interface{}, 0, len(batch)*6)
	for i, r := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, r.TransactionID, r.Amount, r.RefundDate, r.Description, r.UserID, r.OrganizationID)
	}

	if _, err := s.db.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert refund batch: %w", err)
	}

	slog.Debug("refund batch inserted", "count", len(batch))
	return nil
}

func (s *Storage) RefundsByTransaction(ctx context.Context, transactionID string) ([]domain.Refund, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, transaction_id, amount, refund_date, description, user_id, organization_id
		FROM refunds
		WHERE transaction_id = $1
		ORDER BY refund_date
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("query refunds: %w", err)
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		var r domain.Refund
		if err := rows.Scan(&r.ID, &r.TransactionID, &r.Amount, &r.RefundDate, &r.Description, &r.UserID, &r.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan refund: %w", err)
		}
		refunds = append(refunds, r)
	}
	return refunds, rows.Err()
}

// === helpers ===

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func scanNetTransactions(rows pgx.Rows) ([]domain.NetTransaction, error) {
	var result []domain.NetTransaction
	for rows.Next() {
		var t domain.NetTransaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.RefundTotal, &t.Description, &t.AccountingDate,
			&t.CategoryID, &t.CategoryName, &t.SubcategoryID, &t.SubcategoryName,
			&t.UserID, &t.IsIncome); err != nil {
			return nil, fmt.Errorf("scan net transaction: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
