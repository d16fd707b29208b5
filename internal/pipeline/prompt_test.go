package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bexly/bexly-bot/internal/models"
)

func TestBuildPromptIncludesUserCategories(t *testing.T) {
	categories := []models.Category{
		{Title: "Food & Drinks", TransactionType: models.TypeExpense},
		{Title: "Quần áo", TransactionType: models.TypeExpense},
		{Title: "Salary", TransactionType: models.TypeIncome},
	}

	prompt := BuildPrompt(categories, "VND")

	assert.Contains(t, prompt, "Food & Drinks|Quần áo")
	assert.Contains(t, prompt, "INCOME categories: Salary")
	assert.Contains(t, prompt, "wallet currency VND")
}

func TestBuildPromptGrammarLines(t *testing.T) {
	prompt := BuildPrompt(nil, "USD")

	assert.Contains(t, prompt, `"action":"create_expense"|"create_income"|"none"`)
	assert.Contains(t, prompt, "k=×1000,tr=×1000000→VND.$→USD.No symbol→null")
	assert.Contains(t, prompt, `"hi"→{"action":"none"`)
	assert.Contains(t, prompt, `"time":"TIME_HINT"`)
}

func TestBuildPromptEmptyCategoriesFallBack(t *testing.T) {
	prompt := BuildPrompt(nil, "")

	assert.Contains(t, prompt, "EXPENSE categories: Other")
	assert.Contains(t, prompt, "INCOME categories: Other Income")
	assert.Contains(t, prompt, "wallet currency USD", "empty wallet currency defaults to USD")
}

func TestBuildPromptCapsAndDedupes(t *testing.T) {
	var categories []models.Category
	for i := range 15 {
		categories = append(categories, models.Category{
			Title:           fmt.Sprintf("Expense %02d", i),
			TransactionType: models.TypeExpense,
		})
	}
	// Duplicate of the first title must not appear twice.
	categories = append(categories, models.Category{
		Title:           "Expense 00",
		TransactionType: models.TypeExpense,
	})
	for i := range 8 {
		categories = append(categories, models.Category{
			Title:           fmt.Sprintf("Income %02d", i),
			TransactionType: models.TypeIncome,
		})
	}

	prompt := BuildPrompt(categories, "USD")

	assert.Contains(t, prompt, "Expense 09")
	assert.NotContains(t, prompt, "Expense 10", "expense titles capped at 10")
	assert.Contains(t, prompt, "Income 04")
	assert.NotContains(t, prompt, "Income 05", "income titles capped at 5")
	assert.Equal(t, 1, strings.Count(prompt, "Expense 01"), "no duplicate titles")
}

func TestBuildPromptExamplesUseFirstExpenseCategory(t *testing.T) {
	categories := []models.Category{
		{Title: "Ăn uống", TransactionType: models.TypeExpense},
	}

	prompt := BuildPrompt(categories, "VND")
	require.Contains(t, prompt, `"cat":"Ăn uống"`)
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		var categories []models.Category
		for i := range n {
			title := rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, fmt.Sprintf("title%d", i))
			txType := models.TypeExpense
			if rapid.Bool().Draw(t, fmt.Sprintf("income%d", i)) {
				txType = models.TypeIncome
			}
			categories = append(categories, models.Category{Title: title, TransactionType: txType})
		}
		currency := rapid.SampledFrom([]string{"USD", "VND", "EUR"}).Draw(t, "currency")

		first := BuildPrompt(categories, currency)
		second := BuildPrompt(categories, currency)
		if first != second {
			t.Fatalf("prompt is not deterministic")
		}
	})
}
