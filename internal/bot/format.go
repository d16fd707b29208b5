package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/bexly/bexly-bot/internal/i18n"
	"github.com/bexly/bexly-bot/internal/models"
	"github.com/bexly/bexly-bot/internal/pipeline"
)

func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// displayCurrency is the currency a proposal is shown in: the explicit one
// from parsing, or the wallet's when the text named no currency.
func displayCurrency(parsed *models.ParsedTransaction, walletCurrency string) string {
	if parsed.Currency != "" {
		return parsed.Currency
	}
	return walletCurrency
}

// proposalPreview renders the confirmation message for a parsed transaction.
func proposalPreview(
	parsed *models.ParsedTransaction,
	categories []models.Category,
	walletCurrency string,
	loc i18n.Strings,
) string {
	header := "💸 " + loc.ExpenseDetected
	if parsed.Type == models.TypeIncome {
		header = "💰 " + loc.IncomeDetected
	}

	categoryLabel := parsed.Category
	if cat, err := pipeline.ResolveCategory(categories, parsed.Category, parsed.Type); err == nil {
		categoryLabel = cat.LocalizedTitle(parsed.Language)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n<b>%s</b>\n📁 %s\n",
		header,
		models.FormatAmount(parsed.Amount, displayCurrency(parsed, walletCurrency)),
		escapeHTML(categoryLabel),
	))
	if parsed.Description != "" && parsed.Description != parsed.Category {
		sb.WriteString(fmt.Sprintf("📝 %s\n", escapeHTML(parsed.Description)))
	}
	sb.WriteString("\n" + loc.ConfirmPrompt)
	return sb.String()
}
