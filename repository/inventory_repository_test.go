package repository

import (
	"context"
	"testing"

	"quizcoin/domain"
	"quizcoin/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository_Integration(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	itemRepo := NewShopItemRepository(testDB.DB)
	repo := NewInventoryRepository(testDB.DB)
	ctx := context.Background()

	item := testutil.CreateTestShopItem("Time Freeze", 300)
	require.NoError(t, itemRepo.Create(ctx, item))

	second := testutil.CreateTestShopItem("Skip Question", 500)
	require.NoError(t, itemRepo.Create(ctx, second))

	t.Run("AddQuantity inserts then accumulates", func(t *testing.T) {
		require.NoError(t, repo.AddQuantity(ctx, 1, item.ID, 2))
		require.NoError(t, repo.AddQuantity(ctx, 1, item.ID, 3))

		holding, err := repo.GetByUserAndItem(ctx, 1, item.ID)
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, int64(5), holding.Quantity)
	})

	t.Run("GetByUserAndItem returns nil when absent", func(t *testing.T) {
		holding, err := repo.GetByUserAndItem(ctx, 999, item.ID)
		require.NoError(t, err)
		assert.Nil(t, holding)
	})

	t.Run("ConsumeOne decrements down to zero then fails", func(t *testing.T) {
		require.NoError(t, repo.AddQuantity(ctx, 2, item.ID, 2))

		remaining, err := repo.ConsumeOne(ctx, 2, item.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), remaining)

		remaining, err = repo.ConsumeOne(ctx, 2, item.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), remaining)

		_, err = repo.ConsumeOne(ctx, 2, item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ConsumeOne fails for never-owned item", func(t *testing.T) {
		_, err := repo.ConsumeOne(ctx, 3, item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("GetByUser omits exhausted holdings", func(t *testing.T) {
		require.NoError(t, repo.AddQuantity(ctx, 4, item.ID, 1))
		require.NoError(t, repo.AddQuantity(ctx, 4, second.ID, 1))

		_, err := repo.ConsumeOne(ctx, 4, item.ID)
		require.NoError(t, err)

		holdings, err := repo.GetByUser(ctx, 4)
		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.Equal(t, second.ID, holdings[0].ItemID)
	})
}

func TestShopItemRepository_Integration(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	repo := NewShopItemRepository(testDB.DB)
	ctx := context.Background()

	t.Run("GetActive lists seeded catalog by price", func(t *testing.T) {
		// The seed migration ships four active powerups.
		items, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, items)

		for i := 1; i < len(items); i++ {
			assert.LessOrEqual(t, items[i-1].Price, items[i].Price)
		}
		for _, item := range items {
			assert.True(t, item.IsActive)
		}
	})

	t.Run("GetByID round trip", func(t *testing.T) {
		item := testutil.CreateTestShopItem("Double Reward", 750)
		require.NoError(t, repo.Create(ctx, item))

		stored, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, item.Name, stored.Name)
		assert.Equal(t, int64(750), stored.Price)

		missing, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
