package testhelpers

import (
	"context"

	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Credit(ctx context.Context, params interfaces.CreditParams) (*interfaces.CreditResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.CreditResult), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, params interfaces.DebitParams) (*interfaces.DebitResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DebitResult), args.Error(1)
}

func (m *MockLedgerService) SetBalance(ctx context.Context, userID, coins, bonusCoins, adminID int64, reason string) (*entities.UserBalance, error) {
	args := m.Called(ctx, userID, coins, bonusCoins, adminID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockLedgerService) HasSufficientFunds(ctx context.Context, userID, amount int64) (bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) InitializeAccount(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockLedgerService) GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CoinTransaction), args.Error(1)
}

func (m *MockLedgerService) GetTransactionStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionStats), args.Error(1)
}

func (m *MockLedgerService) GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error) {
	args := m.Called(ctx, limit, includeBonus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TopEarner), args.Error(1)
}
