package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/models"
)

// WalletRepository handles wallet database operations.
type WalletRepository struct {
	db database.PGXDB
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db database.PGXDB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetDefault returns the wallet transactions are recorded against: the one
// flagged as default, or the oldest wallet when none is flagged.
// Returns models.ErrNoWallet when the account has no wallets.
func (r *WalletRepository) GetDefault(ctx context.Context, userID string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, currency, balance, is_default, created_at
		FROM wallets WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC, id ASC
		LIMIT 1
	`, userID).Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.Balance, &w.IsDefault, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNoWallet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default wallet: %w", err)
	}
	return &w, nil
}

// GetByID retrieves a wallet by ID, scoped to its owner.
func (r *WalletRepository) GetByID(ctx context.Context, userID string, id int64) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, currency, balance, is_default, created_at
		FROM wallets WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.Balance, &w.IsDefault, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNoWallet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

// ListByUser returns all wallets for an account, default first.
func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]models.Wallet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, currency, balance, is_default, created_at
		FROM wallets WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.Balance, &w.IsDefault, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallets: %w", err)
	}
	return wallets, nil
}

// Create adds a new wallet and fills in the generated fields.
func (r *WalletRepository) Create(ctx context.Context, w *models.Wallet) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO wallets (user_id, name, currency, balance, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, w.UserID, w.Name, w.Currency, w.Balance, w.IsDefault).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}
