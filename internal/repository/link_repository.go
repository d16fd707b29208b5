// Package repository provides database access for domain entities.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/models"
)

// ErrLinkConflict is returned when a platform identity is already linked
// to a different account.
var ErrLinkConflict = errors.New("platform identity already linked to another account")

// LinkRepository handles platform link database operations.
type LinkRepository struct {
	db database.PGXDB
}

// NewLinkRepository creates a new LinkRepository.
func NewLinkRepository(db database.PGXDB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Lookup resolves a platform identity to an account ID.
// Returns models.ErrNotLinked when no link exists.
func (r *LinkRepository) Lookup(ctx context.Context, platform, platformUserID string) (string, error) {
	var userID string
	err := r.db.QueryRow(ctx, `
		SELECT user_id FROM platform_links WHERE platform = $1 AND platform_user_id = $2
	`, platform, platformUserID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", models.ErrNotLinked
	}
	if err != nil {
		return "", fmt.Errorf("failed to lookup platform link: %w", err)
	}
	return userID, nil
}

// Create links a platform identity to an account. Linking the same pair
// again is a no-op; linking to a different account fails with
// ErrLinkConflict and requires an explicit unlink first.
func (r *LinkRepository) Create(ctx context.Context, link *models.PlatformLink) error {
	existing, err := r.Lookup(ctx, link.Platform, link.PlatformUserID)
	if err != nil && !errors.Is(err, models.ErrNotLinked) {
		return err
	}
	if err == nil {
		if existing == link.UserID {
			return nil
		}
		return ErrLinkConflict
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO platform_links (platform, platform_user_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (platform, platform_user_id) DO NOTHING
	`, link.Platform, link.PlatformUserID, link.UserID)
	if err != nil {
		return fmt.Errorf("failed to create platform link: %w", err)
	}
	return nil
}

// Delete removes a platform link. Returns true when a link was removed.
func (r *LinkRepository) Delete(ctx context.Context, platform, platformUserID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM platform_links WHERE platform = $1 AND platform_user_id = $2
	`, platform, platformUserID)
	if err != nil {
		return false, fmt.Errorf("failed to delete platform link: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
