package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/models"
)

// TxDB is the handle the transaction repository needs: plain queries plus
// the ability to open a transaction. Satisfied by pgxpool.Pool and pgx.Tx.
type TxDB interface {
	database.PGXDB
	database.TxBeginner
}

// TransactionRepository handles ledger database operations.
type TransactionRepository struct {
	db TxDB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db TxDB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Commit records a transaction and applies it to the wallet balance
// atomically. Either both writes land or neither does.
func (r *TransactionRepository) Commit(ctx context.Context, txn *models.Transaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, user_id, wallet_id, category_id, transaction_type, amount, title, notes, date, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, txn.ID, txn.UserID, txn.WalletID, txn.CategoryID, txn.Type, txn.Amount, txn.Title, txn.Notes, txn.Date, txn.Source)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	delta := txn.Type.BalanceDelta(txn.Amount)
	tag, err := tx.Exec(ctx, `
		UPDATE wallets SET balance = balance + $2 WHERE id = $1 AND user_id = $3
	`, txn.WalletID, delta, txn.UserID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return models.ErrNoWallet
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PeriodTotals holds income and expense sums for a date range.
type PeriodTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// SumByRange returns income and expense totals for [from, to).
func (r *TransactionRepository) SumByRange(ctx context.Context, userID string, from, to time.Time) (*PeriodTotals, error) {
	var totals PeriodTotals
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
	`, userID, from, to).Scan(&totals.Income, &totals.Expense, &totals.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return &totals, nil
}

// CategoryTotal is an expense sum grouped by category.
type CategoryTotal struct {
	Title string
	Total decimal.Decimal
}

// ExpenseTotalsByCategory returns expense sums per category for [from, to),
// largest first.
func (r *TransactionRepository) ExpenseTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.title, COALESCE(SUM(t.amount), 0) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.transaction_type = 'expense' AND t.date >= $2 AND t.date < $3
		GROUP BY c.title
		ORDER BY total DESC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Title, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

// ListByRange returns the newest transactions for [from, to), capped at limit.
func (r *TransactionRepository) ListByRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, wallet_id, category_id, transaction_type, amount, title, notes, date, source, created_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC, created_at DESC
		LIMIT $4
	`, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.WalletID, &t.CategoryID, &t.Type, &t.Amount, &t.Title, &t.Notes, &t.Date, &t.Source, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}
