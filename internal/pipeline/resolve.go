package pipeline

import (
	"github.com/bexly/bexly-bot/internal/models"
)

// otherTitles are the catch-all category names the app may have created,
// in any of its languages.
var otherTitles = []string{"Other", "Other Income", "Other Expense", "Khác"}

// ResolveCategory maps a parsed category title onto one of the user's real
// categories. Tiers: exact title match, then a catch-all "Other" variant,
// then the first category of the same transaction type, then any category.
// Returns models.ErrNoCategory only when the user has no categories at all.
func ResolveCategory(
	categories []models.Category,
	title string,
	txType models.TransactionType,
) (*models.Category, error) {
	for i := range categories {
		if categories[i].Title == title {
			return &categories[i], nil
		}
	}

	for _, other := range otherTitles {
		for i := range categories {
			if categories[i].Title == other {
				return &categories[i], nil
			}
		}
	}

	for i := range categories {
		if categories[i].TransactionType == txType {
			return &categories[i], nil
		}
	}

	if len(categories) > 0 {
		return &categories[0], nil
	}

	return nil, models.ErrNoCategory
}
