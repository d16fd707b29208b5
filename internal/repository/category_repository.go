package repository

import (
	"context"
	"fmt"

	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/models"
)

// CategoryRepository handles category database operations.
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByUser returns all categories for an account in creation order.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, transaction_type, localized_titles, created_at
		FROM categories WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Title, &cat.TransactionType, &cat.LocalizedTitles, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// Create adds a new category and fills in the generated fields.
func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	titles := cat.LocalizedTitles
	if titles == nil {
		titles = map[string]string{}
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, title, transaction_type, localized_titles)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, cat.UserID, cat.Title, cat.TransactionType, titles).Scan(&cat.ID, &cat.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the standard category set for accounts that have
// none yet. Existing categories are left untouched.
func (r *CategoryRepository) EnsureDefaults(ctx context.Context, userID string) error {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM categories WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, def := range defaultCategories {
		_, err := r.db.Exec(ctx, `
			INSERT INTO categories (user_id, title, transaction_type, localized_titles)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, title, transaction_type) DO NOTHING
		`, userID, def.title, def.txType, def.titles)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", def.title, err)
		}
	}
	return nil
}

// defaultCategories mirrors the app's starter set for new accounts.
var defaultCategories = []struct {
	title  string
	txType models.TransactionType
	titles map[string]string
}{
	{"Food & Drinks", models.TypeExpense, map[string]string{"en": "Food & Drinks", "vi": "Ăn uống"}},
	{"Transportation", models.TypeExpense, map[string]string{"en": "Transportation", "vi": "Di chuyển"}},
	{"Shopping", models.TypeExpense, map[string]string{"en": "Shopping", "vi": "Mua sắm"}},
	{"Entertainment", models.TypeExpense, map[string]string{"en": "Entertainment", "vi": "Giải trí"}},
	{"Bills & Utilities", models.TypeExpense, map[string]string{"en": "Bills & Utilities", "vi": "Hóa đơn & Tiện ích"}},
	{"Health", models.TypeExpense, map[string]string{"en": "Health", "vi": "Sức khỏe"}},
	{"Other", models.TypeExpense, map[string]string{"en": "Other", "vi": "Khác"}},
	{"Salary", models.TypeIncome, map[string]string{"en": "Salary", "vi": "Lương"}},
	{"Other Income", models.TypeIncome, map[string]string{"en": "Other Income", "vi": "Thu nhập khác"}},
}
