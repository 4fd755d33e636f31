package services

import (
	"context"
	"errors"
	"testing"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
	"quizcoin/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(t *testing.T) (*testhelpers.MockBalanceRepository, *testhelpers.MockCoinTransactionRepository, *testhelpers.MockEventPublisher, interfaces.LedgerService) {
	t.Helper()
	balanceRepo := new(testhelpers.MockBalanceRepository)
	txRepo := new(testhelpers.MockCoinTransactionRepository)
	publisher := new(testhelpers.MockEventPublisher)
	svc := NewLedgerService(balanceRepo, txRepo, publisher, 100)
	return balanceRepo, txRepo, publisher, svc
}

func TestLedgerService_Credit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rejects negative amounts", func(t *testing.T) {
		t.Parallel()
		_, _, _, svc := newLedgerFixture(t)

		_, err := svc.Credit(ctx, interfaces.CreditParams{UserID: 1, Coins: -5, Type: entities.TransactionTypeQuizReward})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects zero-value credit", func(t *testing.T) {
		t.Parallel()
		_, _, _, svc := newLedgerFixture(t)

		_, err := svc.Credit(ctx, interfaces.CreditParams{UserID: 1, Type: entities.TransactionTypeQuizReward})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejects unknown transaction type", func(t *testing.T) {
		t.Parallel()
		_, _, _, svc := newLedgerFixture(t)

		_, err := svc.Credit(ctx, interfaces.CreditParams{UserID: 1, Coins: 10, Type: entities.TransactionType("mystery")})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("credits both currencies with snapshots", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, publisher, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(7)).
			Return(&entities.UserBalance{UserID: 7, Coins: 40, BonusCoins: 5}, nil)
		balanceRepo.On("UpdateBalance", mock.Anything, int64(7), int64(50), int64(15)).Return(nil)
		txRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.CoinTransaction) bool {
			return tx.CoinsBefore == 40 && tx.CoinsAfter == 50 &&
				tx.BonusCoinsBefore == 5 && tx.BonusCoinsAfter == 15 &&
				tx.Type == entities.TransactionTypeQuizReward
		})).Return(nil)
		publisher.On("Publish", mock.Anything).Return(nil)

		result, err := svc.Credit(ctx, interfaces.CreditParams{
			UserID: 7,
			Coins:  10, BonusCoins: 10,
			Type: entities.TransactionTypeQuizReward,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), result.CoinsAdded)
		assert.Equal(t, int64(50), result.NewBalance.Coins)
		assert.Equal(t, int64(15), result.NewBalance.BonusCoins)

		balanceRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
	})

	t.Run("lazily starts missing accounts at zero", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, publisher, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(9)).
			Return(&entities.UserBalance{UserID: 9}, nil)
		balanceRepo.On("UpdateBalance", mock.Anything, int64(9), int64(25), int64(0)).Return(nil)
		txRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.CoinTransaction) bool {
			return tx.CoinsBefore == 0 && tx.CoinsAfter == 25
		})).Return(nil)
		publisher.On("Publish", mock.Anything).Return(nil)

		result, err := svc.Credit(ctx, interfaces.CreditParams{
			UserID: 9, Coins: 25, Type: entities.TransactionTypeDailyReward,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(25), result.NewBalance.Coins)
	})

	t.Run("still succeeds when event publish fails", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, publisher, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(3)).
			Return(&entities.UserBalance{UserID: 3}, nil)
		balanceRepo.On("UpdateBalance", mock.Anything, int64(3), int64(5), int64(0)).Return(nil)
		txRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything).Return(errors.New("bus down"))

		_, err := svc.Credit(ctx, interfaces.CreditParams{
			UserID: 3, Coins: 5, Type: entities.TransactionTypeAchievement,
		})
		assert.NoError(t, err)
	})
}

func TestLedgerService_Debit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		t.Parallel()
		_, _, _, svc := newLedgerFixture(t)

		_, err := svc.Debit(ctx, interfaces.DebitParams{UserID: 1, Amount: 0, Type: entities.TransactionTypeShopPurchase})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("spends bonus coins before coins", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, publisher, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(5)).
			Return(&entities.UserBalance{UserID: 5, Coins: 50, BonusCoins: 10}, nil)
		balanceRepo.On("UpdateBalance", mock.Anything, int64(5), int64(30), int64(0)).Return(nil)
		txRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.CoinTransaction) bool {
			return tx.CoinsChange == -20 && tx.BonusCoinsChange == -10 &&
				tx.CoinsAfter == 30 && tx.BonusCoinsAfter == 0
		})).Return(nil)
		publisher.On("Publish", mock.Anything).Return(nil)

		result, err := svc.Debit(ctx, interfaces.DebitParams{
			UserID: 5, Amount: 30, Type: entities.TransactionTypeShopPurchase,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(30), result.AmountDeducted)
		assert.Equal(t, int64(20), result.FromCoins)
		assert.Equal(t, int64(10), result.FromBonusCoins)
		assert.Equal(t, int64(30), result.NewBalance.Coins)
		assert.Equal(t, int64(0), result.NewBalance.BonusCoins)
	})

	t.Run("fails without mutation when funds are short", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, _, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(5)).
			Return(&entities.UserBalance{UserID: 5, Coins: 10, BonusCoins: 5}, nil)

		_, err := svc.Debit(ctx, interfaces.DebitParams{
			UserID: 5, Amount: 16, Type: entities.TransactionTypeWithdrawal,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		balanceRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_SetBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("records the delta with admin metadata", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, publisher, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(8)).
			Return(&entities.UserBalance{UserID: 8, Coins: 40, BonusCoins: 0}, nil)
		balanceRepo.On("UpdateBalance", mock.Anything, int64(8), int64(100), int64(0)).Return(nil)
		txRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.CoinTransaction) bool {
			return tx.Type == entities.TransactionTypeAdminAdjustment &&
				tx.CoinsChange == 60 &&
				tx.Metadata["admin_id"] == int64(99)
		})).Return(nil)
		publisher.On("Publish", mock.Anything).Return(nil)

		balance, err := svc.SetBalance(ctx, 8, 100, 0, 99, "support grant")
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance.Coins)
	})

	t.Run("no-op when balance already matches", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, _, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(8)).
			Return(&entities.UserBalance{UserID: 8, Coins: 100, BonusCoins: 20}, nil)

		balance, err := svc.SetBalance(ctx, 8, 100, 20, 99, "no change")
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance.Coins)
		txRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative targets", func(t *testing.T) {
		t.Parallel()
		_, _, _, svc := newLedgerFixture(t)

		_, err := svc.SetBalance(ctx, 8, -1, 0, 99, "bad")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestLedgerService_Reads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("GetBalance returns ErrNotFound for missing row", func(t *testing.T) {
		t.Parallel()
		balanceRepo, _, _, svc := newLedgerFixture(t)

		balanceRepo.On("GetByUserID", mock.Anything, int64(404)).Return(nil, nil)

		_, err := svc.GetBalance(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("HasSufficientFunds is false for missing row", func(t *testing.T) {
		t.Parallel()
		balanceRepo, _, _, svc := newLedgerFixture(t)

		balanceRepo.On("GetByUserID", mock.Anything, int64(404)).Return(nil, nil)

		ok, err := svc.HasSufficientFunds(ctx, 404, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("HasSufficientFunds checks combined currencies", func(t *testing.T) {
		t.Parallel()
		balanceRepo, _, _, svc := newLedgerFixture(t)

		balanceRepo.On("GetByUserID", mock.Anything, int64(2)).
			Return(&entities.UserBalance{UserID: 2, Coins: 30, BonusCoins: 20}, nil)

		ok, err := svc.HasSufficientFunds(ctx, 2, 50)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestLedgerService_InitializeAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("seeds new account through a signup bonus row", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, publisher, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(11)).
			Return(&entities.UserBalance{UserID: 11}, nil)
		balanceRepo.On("UpdateBalance", mock.Anything, int64(11), int64(100), int64(0)).Return(nil)
		txRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.CoinTransaction) bool {
			return tx.Type == entities.TransactionTypeSignupBonus && tx.CoinsChange == 100
		})).Return(nil)
		publisher.On("Publish", mock.Anything).Return(nil)

		balance, err := svc.InitializeAccount(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance.Coins)
	})

	t.Run("does not re-seed an existing account", func(t *testing.T) {
		t.Parallel()
		balanceRepo, txRepo, _, svc := newLedgerFixture(t)

		balanceRepo.On("GetOrCreateForUpdate", mock.Anything, int64(11)).
			Return(&entities.UserBalance{UserID: 11, Coins: 250}, nil)

		balance, err := svc.InitializeAccount(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, int64(250), balance.Coins)
		txRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})
}
