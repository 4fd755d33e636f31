package repository

import (
	"context"
	"sync"
	"testing"

	"quizcoin/application"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
	"quizcoin/infrastructure"
	"quizcoin/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceRepository_Integration(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	t.Run("GetByUserID returns nil for missing user", func(t *testing.T) {
		balance, err := repo.GetByUserID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, balance)
	})

	t.Run("GetOrCreateForUpdate creates a zero balance", func(t *testing.T) {
		balance, err := repo.GetOrCreateForUpdate(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, int64(1), balance.UserID)
		assert.Equal(t, int64(0), balance.Coins)
		assert.Equal(t, int64(0), balance.BonusCoins)
		assert.False(t, balance.CreatedAt.IsZero())
	})

	t.Run("GetOrCreateForUpdate is idempotent", func(t *testing.T) {
		first, err := repo.GetOrCreateForUpdate(ctx, 2)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateBalance(ctx, 2, 75, 25))

		second, err := repo.GetOrCreateForUpdate(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, first.UserID, second.UserID)
		assert.Equal(t, int64(75), second.Coins)
		assert.Equal(t, int64(25), second.BonusCoins)
	})

	t.Run("UpdateBalance writes both currencies", func(t *testing.T) {
		_, err := repo.GetOrCreateForUpdate(ctx, 3)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateBalance(ctx, 3, 120, 30))

		balance, err := repo.GetByUserID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(120), balance.Coins)
		assert.Equal(t, int64(30), balance.BonusCoins)
	})

	t.Run("UpdateBalance fails for missing row", func(t *testing.T) {
		err := repo.UpdateBalance(ctx, 8888, 10, 0)
		assert.Error(t, err)
	})
}

// TestBalanceRepository_ConcurrentCredits drives many simultaneous credits
// for the same user through the transactional path. Row locking must
// serialize them so no update is lost and the ledger stays complete.
func TestBalanceRepository_ConcurrentCredits(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, infrastructure.NewNoopEventPublisher())
	handler := application.NewLedgerHandler(factory, 0, 0)

	const (
		userID  = int64(42)
		workers = 100
	)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Credit(ctx, interfaces.CreditParams{
				UserID:      userID,
				Coins:       1,
				Type:        entities.TransactionTypeQuizReward,
				Description: "concurrent credit",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := NewBalanceRepository(testDB.DB).GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, int64(workers), balance.Coins)

	txs, err := NewCoinTransactionRepository(testDB.DB).GetByUser(ctx, userID, workers+10)
	require.NoError(t, err)
	assert.Len(t, txs, workers)
}
