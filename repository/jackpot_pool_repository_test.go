package repository

import (
	"context"
	"testing"
	"time"

	"quizcoin/domain/entities"
	"quizcoin/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJackpotPoolRepository_Integration(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	repo := NewJackpotPoolRepository(testDB.DB)
	historyRepo := NewJackpotHistoryRepository(testDB.DB)
	winnerRepo := NewJackpotWinnerRepository(testDB.DB)
	ctx := context.Background()

	bronze := testutil.CreateTestJackpotPool(entities.JackpotTierBronze)
	silver := testutil.CreateTestJackpotPool(entities.JackpotTierSilver)
	silver.CurrentAmount = 500
	silver.MinimumAmount = 500

	require.NoError(t, repo.Create(ctx, bronze))
	require.NoError(t, repo.Create(ctx, silver))
	require.NotZero(t, bronze.ID)

	t.Run("GetAll returns pools in id order", func(t *testing.T) {
		pools, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, pools, 2)
		assert.Equal(t, bronze.ID, pools[0].ID)
		assert.Equal(t, silver.ID, pools[1].ID)
	})

	t.Run("GetByTier", func(t *testing.T) {
		pool, err := repo.GetByTier(ctx, entities.JackpotTierSilver)
		require.NoError(t, err)
		require.NotNil(t, pool)
		assert.Equal(t, int64(500), pool.CurrentAmount)

		missing, err := repo.GetByTier(ctx, entities.JackpotTierDiamond)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("GetByID missing pool", func(t *testing.T) {
		pool, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, pool)
	})

	t.Run("duplicate tier is rejected", func(t *testing.T) {
		dup := testutil.CreateTestJackpotPool(entities.JackpotTierBronze)
		assert.Error(t, repo.Create(ctx, dup))
	})

	t.Run("Update persists a win", func(t *testing.T) {
		pool, err := repo.GetByID(ctx, bronze.ID)
		require.NoError(t, err)

		pool.ApplyIncrement()
		won := pool.ApplyWin(42, time.Now().UTC())
		require.NoError(t, repo.Update(ctx, pool))

		stored, err := repo.GetByID(ctx, bronze.ID)
		require.NoError(t, err)
		assert.Equal(t, pool.MinimumAmount, stored.CurrentAmount)
		assert.Equal(t, won, stored.TotalWon)
		assert.Equal(t, int64(1), stored.TimesWon)
		require.NotNil(t, stored.LastWonBy)
		assert.Equal(t, int64(42), *stored.LastWonBy)
		assert.NotNil(t, stored.LastWonAt)
	})

	t.Run("history records increments and wins", func(t *testing.T) {
		require.NoError(t, historyRepo.Record(ctx, &entities.JackpotHistoryEntry{
			JackpotID:  silver.ID,
			OldAmount:  500,
			NewAmount:  502,
			ChangeType: entities.JackpotChangeIncrement,
			UserID:     42,
		}))
		require.NoError(t, historyRepo.Record(ctx, &entities.JackpotHistoryEntry{
			JackpotID:  silver.ID,
			OldAmount:  502,
			NewAmount:  500,
			ChangeType: entities.JackpotChangeWin,
			UserID:     42,
		}))

		entries, err := historyRepo.GetByPool(ctx, silver.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, entities.JackpotChangeWin, entries[0].ChangeType)
	})

	t.Run("winners are listed newest first", func(t *testing.T) {
		require.NoError(t, winnerRepo.Create(ctx, &entities.JackpotWinner{
			JackpotID:  bronze.ID,
			UserID:     42,
			AmountWon:  101,
			QuestionID: 7,
			SessionID:  "session-1",
		}))
		require.NoError(t, winnerRepo.Create(ctx, &entities.JackpotWinner{
			JackpotID:  silver.ID,
			UserID:     43,
			AmountWon:  502,
			QuestionID: 8,
			SessionID:  "session-2",
		}))

		recent, err := winnerRepo.GetRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, int64(43), recent[0].UserID)

		byUser, err := winnerRepo.GetByUser(ctx, 42, 10)
		require.NoError(t, err)
		require.Len(t, byUser, 1)
		assert.Equal(t, "session-1", byUser[0].SessionID)
	})
}
