package application

import (
	"context"

	"quizcoin/domain/interfaces"
)

// TransactionalEventPublisher buffers events during a transaction and only
// hands them to the real publisher once the transaction commits. Events
// published inside a rolled-back transaction are discarded.
type TransactionalEventPublisher interface {
	interfaces.EventPublisher

	// Flush delivers all buffered events after a successful commit
	Flush(ctx context.Context)

	// Discard drops all buffered events after a rollback
	Discard()
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	BalanceRepository() interfaces.BalanceRepository
	CoinTransactionRepository() interfaces.CoinTransactionRepository
	JackpotPoolRepository() interfaces.JackpotPoolRepository
	JackpotHistoryRepository() interfaces.JackpotHistoryRepository
	JackpotWinnerRepository() interfaces.JackpotWinnerRepository
	ShopItemRepository() interfaces.ShopItemRepository
	InventoryRepository() interfaces.InventoryRepository
	ShopPurchaseRepository() interfaces.ShopPurchaseRepository

	// EventBus returns the transaction-scoped event publisher; events it
	// accepts are only delivered if the transaction commits
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
