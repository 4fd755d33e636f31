package interfaces

import (
	"context"

	"quizcoin/domain/entities"
	"quizcoin/domain/events"
)

// BalanceRepository defines the interface for user balance data access.
// Absent rows are reported as (nil, nil); mutation paths use
// GetOrCreateForUpdate so the row is locked for the rest of the enclosing
// transaction.
type BalanceRepository interface {
	// GetByUserID retrieves a balance without locking it
	GetByUserID(ctx context.Context, userID int64) (*entities.UserBalance, error)

	// GetOrCreateForUpdate lazily creates a zero balance if absent, then
	// returns the row locked for the duration of the transaction
	GetOrCreateForUpdate(ctx context.Context, userID int64) (*entities.UserBalance, error)

	// UpdateBalance writes both currency fields atomically
	UpdateBalance(ctx context.Context, userID, coins, bonusCoins int64) error
}

// CoinTransactionRepository defines the interface for the append-only ledger
type CoinTransactionRepository interface {
	// Record appends one immutable ledger row
	Record(ctx context.Context, tx *entities.CoinTransaction) error

	// GetByUser returns a user's ledger rows, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error)

	// GetStats aggregates ledger activity matching the filter
	GetStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error)

	// GetTopEarners ranks users by summed positive ledger changes
	GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error)
}

// JackpotPoolRepository defines the interface for prize pool data access
type JackpotPoolRepository interface {
	// GetAll returns every pool, ascending by id
	GetAll(ctx context.Context) ([]*entities.JackpotPool, error)

	// GetAllForUpdate returns every pool locked for the transaction,
	// always in ascending id order so concurrent events cannot deadlock
	GetAllForUpdate(ctx context.Context) ([]*entities.JackpotPool, error)

	// GetByID retrieves a single pool
	GetByID(ctx context.Context, id int64) (*entities.JackpotPool, error)

	// GetByTier retrieves a pool by its tier
	GetByTier(ctx context.Context, tier entities.JackpotTier) (*entities.JackpotPool, error)

	// Create inserts a new pool
	Create(ctx context.Context, pool *entities.JackpotPool) error

	// Update writes the pool's amount and aggregate stats
	Update(ctx context.Context, pool *entities.JackpotPool) error
}

// JackpotHistoryRepository defines the interface for the append-only pool
// amount log
type JackpotHistoryRepository interface {
	// Record appends one history entry
	Record(ctx context.Context, entry *entities.JackpotHistoryEntry) error

	// GetByPool returns a pool's history, newest first
	GetByPool(ctx context.Context, jackpotID int64, limit int) ([]*entities.JackpotHistoryEntry, error)
}

// JackpotWinnerRepository defines the interface for payout records
type JackpotWinnerRepository interface {
	// Create appends one winner record
	Create(ctx context.Context, winner *entities.JackpotWinner) error

	// GetRecent returns the most recent payouts across all pools
	GetRecent(ctx context.Context, limit int) ([]*entities.JackpotWinner, error)

	// GetByUser returns a user's payouts, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.JackpotWinner, error)
}

// ShopItemRepository defines the interface for catalog data access
type ShopItemRepository interface {
	// GetByID retrieves an item regardless of active state
	GetByID(ctx context.Context, id int64) (*entities.ShopItem, error)

	// GetActive returns all purchasable items
	GetActive(ctx context.Context) ([]*entities.ShopItem, error)

	// Create inserts a new catalog entry
	Create(ctx context.Context, item *entities.ShopItem) error
}

// InventoryRepository defines the interface for per-user item holdings
type InventoryRepository interface {
	// GetByUserAndItem retrieves one holding without locking
	GetByUserAndItem(ctx context.Context, userID, itemID int64) (*entities.InventoryItem, error)

	// AddQuantity upserts the holding, adding quantity (insert if absent)
	AddQuantity(ctx context.Context, userID, itemID, quantity int64) error

	// ConsumeOne decrements a holding by one; fails without effect when
	// the holding is absent or empty
	ConsumeOne(ctx context.Context, userID, itemID int64) (remaining int64, err error)

	// GetByUser returns all of a user's holdings
	GetByUser(ctx context.Context, userID int64) ([]*entities.InventoryItem, error)
}

// ShopPurchaseRepository defines the interface for purchase history
type ShopPurchaseRepository interface {
	// Create appends one purchase record
	Create(ctx context.Context, purchase *entities.ShopPurchase) error

	// GetByUser returns a user's purchases, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ShopPurchase, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
