package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bexly/bexly-bot/internal/database"
	"github.com/bexly/bexly-bot/internal/models"
)

func TestLinkRepository_Lookup(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewLinkRepository(tx)

	t.Run("returns ErrNotLinked for unknown identity", func(t *testing.T) {
		_, err := repo.Lookup(ctx, "telegram", "12345")
		require.ErrorIs(t, err, models.ErrNotLinked)
	})

	t.Run("resolves linked identity", func(t *testing.T) {
		err := repo.Create(ctx, &models.PlatformLink{
			Platform:       "telegram",
			PlatformUserID: "12345",
			UserID:         "acct-1",
		})
		require.NoError(t, err)

		userID, err := repo.Lookup(ctx, "telegram", "12345")
		require.NoError(t, err)
		require.Equal(t, "acct-1", userID)
	})

	t.Run("identities are scoped per platform", func(t *testing.T) {
		_, err := repo.Lookup(ctx, "discord", "12345")
		require.ErrorIs(t, err, models.ErrNotLinked)
	})
}

func TestLinkRepository_Create(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewLinkRepository(tx)

	link := &models.PlatformLink{Platform: "telegram", PlatformUserID: "777", UserID: "acct-7"}
	require.NoError(t, repo.Create(ctx, link))

	t.Run("relinking same account is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, link))

		userID, err := repo.Lookup(ctx, "telegram", "777")
		require.NoError(t, err)
		require.Equal(t, "acct-7", userID)
	})

	t.Run("relinking different account fails", func(t *testing.T) {
		err := repo.Create(ctx, &models.PlatformLink{
			Platform:       "telegram",
			PlatformUserID: "777",
			UserID:         "acct-8",
		})
		require.ErrorIs(t, err, ErrLinkConflict)

		userID, err := repo.Lookup(ctx, "telegram", "777")
		require.NoError(t, err)
		require.Equal(t, "acct-7", userID, "original link is untouched")
	})
}

func TestLinkRepository_Delete(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewLinkRepository(tx)

	t.Run("returns false when nothing to delete", func(t *testing.T) {
		removed, err := repo.Delete(ctx, "telegram", "404")
		require.NoError(t, err)
		require.False(t, removed)
	})

	t.Run("removes an existing link", func(t *testing.T) {
		err := repo.Create(ctx, &models.PlatformLink{Platform: "telegram", PlatformUserID: "404", UserID: "acct-4"})
		require.NoError(t, err)

		removed, err := repo.Delete(ctx, "telegram", "404")
		require.NoError(t, err)
		require.True(t, removed)

		_, err = repo.Lookup(ctx, "telegram", "404")
		require.ErrorIs(t, err, models.ErrNotLinked)
	})

	t.Run("identity can be relinked after delete", func(t *testing.T) {
		err := repo.Create(ctx, &models.PlatformLink{Platform: "telegram", PlatformUserID: "404", UserID: "acct-5"})
		require.NoError(t, err)

		userID, err := repo.Lookup(ctx, "telegram", "404")
		require.NoError(t, err)
		require.Equal(t, "acct-5", userID)
	})
}
