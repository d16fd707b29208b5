package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/models"
)

func seedAccount(t *testing.T, tx TxDB, userID string) (*models.Wallet, *models.Category) {
	t.Helper()
	ctx := context.Background()

	wallet := &models.Wallet{
		UserID:    userID,
		Name:      "Main",
		Currency:  "VND",
		Balance:   decimal.NewFromInt(1000000),
		IsDefault: true,
	}
	require.NoError(t, NewWalletRepository(tx).Create(ctx, wallet))

	category := &models.Category{
		UserID:          userID,
		Title:           "Food & Drinks",
		TransactionType: models.TypeExpense,
	}
	require.NoError(t, NewCategoryRepository(tx).Create(ctx, category))

	return wallet, category
}

func newTestTransaction(userID string, wallet *models.Wallet, category *models.Category) *models.Transaction {
	id, _ := uuid.NewV7()
	return &models.Transaction{
		ID:         id,
		UserID:     userID,
		WalletID:   wallet.ID,
		CategoryID: category.ID,
		Type:       models.TypeExpense,
		Amount:     decimal.NewFromInt(50000),
		Title:      "lunch",
		Date:       time.Now().UTC(),
		Source:     "telegram_bot",
	}
}

func TestTransactionRepository_Commit(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewTransactionRepository(tx)
	wallets := NewWalletRepository(tx)

	wallet, category := seedAccount(t, tx, "acct-1")

	t.Run("expense decrements the wallet balance", func(t *testing.T) {
		txn := newTestTransaction("acct-1", wallet, category)
		require.NoError(t, repo.Commit(ctx, txn))

		updated, err := wallets.GetByID(ctx, "acct-1", wallet.ID)
		require.NoError(t, err)
		require.True(t, updated.Balance.Equal(decimal.NewFromInt(950000)),
			"expected 950000, got %s", updated.Balance)
	})

	t.Run("income increments the wallet balance", func(t *testing.T) {
		txn := newTestTransaction("acct-1", wallet, category)
		txn.Type = models.TypeIncome
		txn.Amount = decimal.NewFromInt(200000)
		require.NoError(t, repo.Commit(ctx, txn))

		updated, err := wallets.GetByID(ctx, "acct-1", wallet.ID)
		require.NoError(t, err)
		require.True(t, updated.Balance.Equal(decimal.NewFromInt(1150000)),
			"expected 1150000, got %s", updated.Balance)
	})

	t.Run("wallet owned by someone else leaves no trace", func(t *testing.T) {
		txn := newTestTransaction("acct-other", wallet, category)
		err := repo.Commit(ctx, txn)
		require.ErrorIs(t, err, models.ErrNoWallet)

		totals, err := repo.SumByRange(ctx, "acct-other",
			time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.Zero(t, totals.Count, "failed commit must not insert the row")
	})

	t.Run("duplicate id leaves the balance untouched", func(t *testing.T) {
		txn := newTestTransaction("acct-1", wallet, category)
		require.NoError(t, repo.Commit(ctx, txn))

		before, err := wallets.GetByID(ctx, "acct-1", wallet.ID)
		require.NoError(t, err)

		require.Error(t, repo.Commit(ctx, txn))

		after, err := wallets.GetByID(ctx, "acct-1", wallet.ID)
		require.NoError(t, err)
		require.True(t, after.Balance.Equal(before.Balance))
	})
}

func TestTransactionRepository_SumByRange(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewTransactionRepository(tx)
	wallet, category := seedAccount(t, tx, "acct-2")

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	commitAt := func(txType models.TransactionType, amount int64, at time.Time) {
		txn := newTestTransaction("acct-2", wallet, category)
		txn.Type = txType
		txn.Amount = decimal.NewFromInt(amount)
		txn.Date = at
		require.NoError(t, repo.Commit(ctx, txn))
	}

	commitAt(models.TypeExpense, 50000, base)
	commitAt(models.TypeExpense, 30000, base.Add(2*time.Hour))
	commitAt(models.TypeIncome, 10000000, base.Add(3*time.Hour))
	commitAt(models.TypeExpense, 99999, base.Add(48*time.Hour))

	t.Run("sums only the requested range", func(t *testing.T) {
		totals, err := repo.SumByRange(ctx, "acct-2", base, base.Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 3, totals.Count)
		require.True(t, totals.Expense.Equal(decimal.NewFromInt(80000)))
		require.True(t, totals.Income.Equal(decimal.NewFromInt(10000000)))
	})

	t.Run("upper bound is exclusive", func(t *testing.T) {
		totals, err := repo.SumByRange(ctx, "acct-2", base, base.Add(2*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 1, totals.Count)
		require.True(t, totals.Expense.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("empty range is all zeros", func(t *testing.T) {
		totals, err := repo.SumByRange(ctx, "acct-2", base.Add(-48*time.Hour), base.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Zero(t, totals.Count)
		require.True(t, totals.Expense.IsZero())
		require.True(t, totals.Income.IsZero())
	})
}

func TestTransactionRepository_ExpenseTotalsByCategory(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewTransactionRepository(tx)
	wallet, food := seedAccount(t, tx, "acct-3")

	taxi := &models.Category{UserID: "acct-3", Title: "Transportation", TransactionType: models.TypeExpense}
	require.NoError(t, NewCategoryRepository(tx).Create(ctx, taxi))

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	commit := func(cat *models.Category, txType models.TransactionType, amount int64) {
		txn := newTestTransaction("acct-3", wallet, cat)
		txn.CategoryID = cat.ID
		txn.Type = txType
		txn.Amount = decimal.NewFromInt(amount)
		txn.Date = base
		require.NoError(t, repo.Commit(ctx, txn))
	}

	commit(food, models.TypeExpense, 50000)
	commit(food, models.TypeExpense, 70000)
	commit(taxi, models.TypeExpense, 30000)
	commit(food, models.TypeIncome, 500000)

	totals, err := repo.ExpenseTotalsByCategory(ctx, "acct-3", base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	require.Equal(t, "Food & Drinks", totals[0].Title, "largest category first")
	require.True(t, totals[0].Total.Equal(decimal.NewFromInt(120000)))
	require.Equal(t, "Transportation", totals[1].Title)
	require.True(t, totals[1].Total.Equal(decimal.NewFromInt(30000)))
}

func TestTransactionRepository_ListByRange(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewTransactionRepository(tx)
	wallet, category := seedAccount(t, tx, "acct-4")

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		txn := newTestTransaction("acct-4", wallet, category)
		txn.Title = string(rune('a' + i))
		txn.Date = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Commit(ctx, txn))
	}

	t.Run("newest first, capped at limit", func(t *testing.T) {
		txns, err := repo.ListByRange(ctx, "acct-4", base, base.Add(24*time.Hour), 3)
		require.NoError(t, err)
		require.Len(t, txns, 3)
		require.Equal(t, "e", txns[0].Title)
		require.Equal(t, "d", txns[1].Title)
		require.Equal(t, "c", txns[2].Title)
	})

	t.Run("range bounds apply", func(t *testing.T) {
		txns, err := repo.ListByRange(ctx, "acct-4", base, base.Add(2*time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, txns, 2)
	})
}
