package testhelpers

import (
	"context"

	"quizcoin/domain/entities"
	"quizcoin/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockBalanceRepository) GetOrCreateForUpdate(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockBalanceRepository) UpdateBalance(ctx context.Context, userID, coins, bonusCoins int64) error {
	args := m.Called(ctx, userID, coins, bonusCoins)
	return args.Error(0)
}

// MockCoinTransactionRepository is a mock implementation of CoinTransactionRepository
type MockCoinTransactionRepository struct {
	mock.Mock
}

func (m *MockCoinTransactionRepository) Record(ctx context.Context, tx *entities.CoinTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCoinTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CoinTransaction), args.Error(1)
}

func (m *MockCoinTransactionRepository) GetStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionStats), args.Error(1)
}

func (m *MockCoinTransactionRepository) GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error) {
	args := m.Called(ctx, limit, includeBonus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TopEarner), args.Error(1)
}

// MockJackpotPoolRepository is a mock implementation of JackpotPoolRepository
type MockJackpotPoolRepository struct {
	mock.Mock
}

func (m *MockJackpotPoolRepository) GetAll(ctx context.Context) ([]*entities.JackpotPool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JackpotPool), args.Error(1)
}

func (m *MockJackpotPoolRepository) GetAllForUpdate(ctx context.Context) ([]*entities.JackpotPool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JackpotPool), args.Error(1)
}

func (m *MockJackpotPoolRepository) GetByID(ctx context.Context, id int64) (*entities.JackpotPool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.JackpotPool), args.Error(1)
}

func (m *MockJackpotPoolRepository) GetByTier(ctx context.Context, tier entities.JackpotTier) (*entities.JackpotPool, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.JackpotPool), args.Error(1)
}

func (m *MockJackpotPoolRepository) Create(ctx context.Context, pool *entities.JackpotPool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

func (m *MockJackpotPoolRepository) Update(ctx context.Context, pool *entities.JackpotPool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

// MockJackpotHistoryRepository is a mock implementation of JackpotHistoryRepository
type MockJackpotHistoryRepository struct {
	mock.Mock
}

func (m *MockJackpotHistoryRepository) Record(ctx context.Context, entry *entities.JackpotHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJackpotHistoryRepository) GetByPool(ctx context.Context, jackpotID int64, limit int) ([]*entities.JackpotHistoryEntry, error) {
	args := m.Called(ctx, jackpotID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JackpotHistoryEntry), args.Error(1)
}

// MockJackpotWinnerRepository is a mock implementation of JackpotWinnerRepository
type MockJackpotWinnerRepository struct {
	mock.Mock
}

func (m *MockJackpotWinnerRepository) Create(ctx context.Context, winner *entities.JackpotWinner) error {
	args := m.Called(ctx, winner)
	return args.Error(0)
}

func (m *MockJackpotWinnerRepository) GetRecent(ctx context.Context, limit int) ([]*entities.JackpotWinner, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JackpotWinner), args.Error(1)
}

func (m *MockJackpotWinnerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.JackpotWinner, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JackpotWinner), args.Error(1)
}

// MockShopItemRepository is a mock implementation of ShopItemRepository
type MockShopItemRepository struct {
	mock.Mock
}

func (m *MockShopItemRepository) GetByID(ctx context.Context, id int64) (*entities.ShopItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ShopItem), args.Error(1)
}

func (m *MockShopItemRepository) GetActive(ctx context.Context) ([]*entities.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ShopItem), args.Error(1)
}

func (m *MockShopItemRepository) Create(ctx context.Context, item *entities.ShopItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetByUserAndItem(ctx context.Context, userID, itemID int64) (*entities.InventoryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) AddQuantity(ctx context.Context, userID, itemID, quantity int64) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) ConsumeOne(ctx context.Context, userID, itemID int64) (int64, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryItem), args.Error(1)
}

// MockShopPurchaseRepository is a mock implementation of ShopPurchaseRepository
type MockShopPurchaseRepository struct {
	mock.Mock
}

func (m *MockShopPurchaseRepository) Create(ctx context.Context, purchase *entities.ShopPurchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockShopPurchaseRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ShopPurchase, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ShopPurchase), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
