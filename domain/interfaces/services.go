package interfaces

import (
	"context"

	"quizcoin/domain/entities"
)

// CreditParams describes a balance credit. At least one of Coins/BonusCoins
// must be positive; both must be non-negative.
type CreditParams struct {
	UserID        int64
	Coins         int64
	BonusCoins    int64
	Type          entities.TransactionType
	ReferenceType *entities.ReferenceType
	ReferenceID   *int64
	Description   string
	Metadata      map[string]any
}

// DebitParams describes a balance debit of Amount across both currencies.
type DebitParams struct {
	UserID        int64
	Amount        int64
	Type          entities.TransactionType
	ReferenceType *entities.ReferenceType
	ReferenceID   *int64
	Description   string
	Metadata      map[string]any
}

// CreditResult reports what a credit applied.
type CreditResult struct {
	CoinsAdded      int64
	BonusCoinsAdded int64
	NewBalance      *entities.UserBalance
}

// DebitResult reports how a debit was split across the two currencies.
type DebitResult struct {
	AmountDeducted int64
	FromCoins      int64
	FromBonusCoins int64
	NewBalance     *entities.UserBalance
}

// LedgerService is the single authority over balance mutation. Every change
// to a user's currencies flows through it and produces exactly one ledger row.
type LedgerService interface {
	// Credit adds coins and/or bonus coins, lazily initializing the balance
	Credit(ctx context.Context, params CreditParams) (*CreditResult, error)

	// Debit removes amount following the spend-order policy (bonus first)
	Debit(ctx context.Context, params DebitParams) (*DebitResult, error)

	// SetBalance is an administrative override, logged as admin_adjustment
	SetBalance(ctx context.Context, userID, coins, bonusCoins, adminID int64, reason string) (*entities.UserBalance, error)

	// GetBalance reads a balance; missing rows are ErrNotFound
	GetBalance(ctx context.Context, userID int64) (*entities.UserBalance, error)

	// HasSufficientFunds is a read-only pre-check; debit re-verifies
	HasSufficientFunds(ctx context.Context, userID, amount int64) (bool, error)

	// InitializeAccount creates the balance at account creation, crediting
	// the configured signup grant when one is set
	InitializeAccount(ctx context.Context, userID int64) (*entities.UserBalance, error)

	// GetUserTransactions lists a user's ledger rows, newest first
	GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error)

	// GetTransactionStats aggregates ledger activity for admin tooling
	GetTransactionStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error)

	// GetTopEarners ranks users by summed positive ledger changes
	GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error)
}

// JackpotOutcome is the per-pool result of one correct-answer event.
type JackpotOutcome struct {
	JackpotID     int64
	Tier          entities.JackpotTier
	Name          string
	IncrementedBy int64
	NewAmount     int64
	Won           bool
	WinAmount     int64
}

// JackpotService runs the probabilistic prize pools.
type JackpotService interface {
	// OnCorrectAnswer increments every pool and independently draws each
	// for a win; increments, draws and awards are one atomic unit
	OnCorrectAnswer(ctx context.Context, userID, questionID int64, sessionID string) ([]*JackpotOutcome, error)

	// GetPools returns every pool with its aggregate stats
	GetPools(ctx context.Context) ([]*entities.JackpotPool, error)

	// GetRecentWinners returns the latest payouts across pools
	GetRecentWinners(ctx context.Context, limit int) ([]*entities.JackpotWinner, error)

	// EnsureDefaultPools creates any missing tier pools at setup
	EnsureDefaultPools(ctx context.Context, defaults []*entities.JackpotPool) error
}

// PurchaseResult reports a completed shop purchase.
type PurchaseResult struct {
	Item             *entities.ShopItem
	Quantity         int64
	TotalCost        int64
	FromCoins        int64
	FromBonusCoins   int64
	RemainingBalance *entities.UserBalance
}

// PowerupResult reports a consumed powerup.
type PowerupResult struct {
	Name        string
	EffectType  string
	EffectValue int64
	Remaining   int64
}

// ShopService handles catalog reads and the purchase/consume flows. All
// currency movement is delegated to the LedgerService.
type ShopService interface {
	// Purchase debits price*quantity, upserts inventory and records history
	Purchase(ctx context.Context, userID, itemID, quantity int64) (*PurchaseResult, error)

	// UsePowerup consumes one unit from inventory
	UsePowerup(ctx context.Context, userID, itemID int64) (*PowerupResult, error)

	// GetItem reads a catalog entry (cached on the read path)
	GetItem(ctx context.Context, itemID int64) (*entities.ShopItem, error)

	// GetActiveItems lists the purchasable catalog
	GetActiveItems(ctx context.Context) ([]*entities.ShopItem, error)

	// GetUserInventory lists a user's holdings
	GetUserInventory(ctx context.Context, userID int64) ([]*entities.InventoryItem, error)

	// GetPurchaseHistory lists a user's purchases, newest first
	GetPurchaseHistory(ctx context.Context, userID int64, limit int) ([]*entities.ShopPurchase, error)
}
