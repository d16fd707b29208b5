// Package pipeline turns a free-text chat message into a confirmed-ready
// transaction: prompt construction, AI response decoding, the regex
// fallback, category and wallet resolution, and time-hint handling.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/bexly/bexly-bot/internal/models"
)

// Caps keep the prompt small for users with very long category lists.
const (
	maxExpenseTitles = 10
	maxIncomeTitles  = 5
)

// BuildPrompt returns the system instruction for the extraction call. The
// category lists come verbatim from the user's synced categories so the
// model can only answer with titles that actually exist.
func BuildPrompt(categories []models.Category, walletCurrency string) string {
	expenseTitles := categoryTitles(categories, models.TypeExpense, maxExpenseTitles)
	incomeTitles := categoryTitles(categories, models.TypeIncome, maxIncomeTitles)

	expenseList := "Other"
	if len(expenseTitles) > 0 {
		expenseList = strings.Join(expenseTitles, "|")
	}
	incomeList := "Other Income"
	if len(incomeTitles) > 0 {
		incomeList = strings.Join(incomeTitles, "|")
	}

	firstExpense := "Other"
	if len(expenseTitles) > 0 {
		firstExpense = expenseTitles[0]
	}

	if walletCurrency == "" {
		walletCurrency = "USD"
	}

	return fmt.Sprintf(`Parse→JSON.{"action":"create_expense"|"create_income"|"none","amount":num,"currency":"VND"|"USD"|null,"lang":"ISO 639-1 of the message","desc":"str","cat":"EXACT_CATEGORY_NAME","time":"TIME_HINT"}
k=×1000,tr=×1000000→VND.$→USD.No symbol→null (wallet currency %s applies).

CATEGORY RULES:
1. EXPENSE categories: %s
2. INCOME categories: %s
3. cat MUST be EXACTLY one of the names above, copied including case.
4. If no good match, use the first expense category for expenses, the first income category for income.
5. NEVER invent category names.

TIME EXTRACTION (time field):
- breakfast/"ăn sáng"→"morning"
- lunch/"ăn trưa"→"noon"
- afternoon snack/"ăn chiều"→"afternoon"
- dinner/"ăn tối"→"evening"
- "last night"/"đêm qua"→"yesterday_night"
- yesterday/"hôm qua"→"yesterday"
- last week/"tuần trước"→"last_week"
- last month/"tháng trước"→"last_month"
- explicit time "at 3pm"/"lúc 3h"→"15:00"
- no time hint→null

Examples:
"50k ăn sáng"→{"action":"create_expense","amount":50000,"currency":"VND","lang":"vi","desc":"ăn sáng","cat":"%s","time":"morning"}
"lunch $20"→{"action":"create_expense","amount":20,"currency":"USD","lang":"en","desc":"lunch","cat":"%s","time":"noon"}
"hi"→{"action":"none","amount":0,"currency":null,"lang":"en","desc":"","cat":"","time":null}`,
		walletCurrency, expenseList, incomeList, firstExpense, firstExpense)
}

// categoryTitles collects up to limit distinct titles of one transaction
// type, preserving the user's order.
func categoryTitles(categories []models.Category, txType models.TransactionType, limit int) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, c := range categories {
		if c.TransactionType != txType || seen[c.Title] {
			continue
		}
		seen[c.Title] = true
		titles = append(titles, c.Title)
		if len(titles) == limit {
			break
		}
	}
	return titles
}
