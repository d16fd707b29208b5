package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexly/bexly-bot/internal/models"
)

func TestResolveCategory(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Title: "Food & Drinks", TransactionType: models.TypeExpense},
		{ID: 2, Title: "Khác", TransactionType: models.TypeExpense},
		{ID: 3, Title: "Salary", TransactionType: models.TypeIncome},
	}

	t.Run("exact title wins", func(t *testing.T) {
		got, err := ResolveCategory(categories, "Salary", models.TypeIncome)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
	})

	t.Run("unknown title falls to other variant", func(t *testing.T) {
		got, err := ResolveCategory(categories, "Groceries", models.TypeExpense)
		require.NoError(t, err)
		assert.Equal(t, "Khác", got.Title)
	})

	t.Run("same type when no other variant exists", func(t *testing.T) {
		typed := []models.Category{
			{ID: 10, Title: "Rent", TransactionType: models.TypeExpense},
			{ID: 11, Title: "Bonus", TransactionType: models.TypeIncome},
		}
		got, err := ResolveCategory(typed, "Groceries", models.TypeIncome)
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
	})

	t.Run("any category as last resort", func(t *testing.T) {
		onlyIncome := []models.Category{
			{ID: 20, Title: "Bonus", TransactionType: models.TypeIncome},
		}
		got, err := ResolveCategory(onlyIncome, "Groceries", models.TypeExpense)
		require.NoError(t, err)
		assert.Equal(t, int64(20), got.ID)
	})

	t.Run("no categories at all", func(t *testing.T) {
		_, err := ResolveCategory(nil, "Groceries", models.TypeExpense)
		assert.ErrorIs(t, err, models.ErrNoCategory)
	})

	t.Run("exact match is case sensitive", func(t *testing.T) {
		got, err := ResolveCategory(categories, "food & drinks", models.TypeExpense)
		require.NoError(t, err)
		assert.Equal(t, "Khác", got.Title, "mismatched case goes through the other tier")
	})
}
