package repository

import (
	"context"
	"fmt"

	"quizcoin/application"
	"quizcoin/database"
	"quizcoin/domain/interfaces"
	"quizcoin/infrastructure"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher application.TransactionalEventPublisher

	balanceRepo         interfaces.BalanceRepository
	coinTransactionRepo interfaces.CoinTransactionRepository
	jackpotPoolRepo     interfaces.JackpotPoolRepository
	jackpotHistoryRepo  interfaces.JackpotHistoryRepository
	jackpotWinnerRepo   interfaces.JackpotWinnerRepository
	shopItemRepo        interfaces.ShopItemRepository
	inventoryRepo       interfaces.InventoryRepository
	shopPurchaseRepo    interfaces.ShopPurchaseRepository
}

type unitOfWorkFactory struct {
	db        *database.DB
	publisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events published
// through a unit of work's EventBus are delivered to publisher only after
// the unit commits.
func NewUnitOfWorkFactory(db *database.DB, publisher interfaces.EventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create creates a new UnitOfWork instance
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: infrastructure.NewTransactionalPublisher(f.publisher),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.balanceRepo = newBalanceRepository(tx)
	u.coinTransactionRepo = newCoinTransactionRepository(tx)
	u.jackpotPoolRepo = newJackpotPoolRepository(tx)
	u.jackpotHistoryRepo = newJackpotHistoryRepository(tx)
	u.jackpotWinnerRepo = newJackpotWinnerRepository(tx)
	u.shopItemRepo = newShopItemRepository(tx)
	u.inventoryRepo = newInventoryRepository(tx)
	u.shopPurchaseRepo = newShopPurchaseRepository(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// BalanceRepository returns the balance repository for this unit of work
func (u *unitOfWork) BalanceRepository() interfaces.BalanceRepository {
	if u.balanceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceRepo
}

// CoinTransactionRepository returns the ledger repository for this unit of work
func (u *unitOfWork) CoinTransactionRepository() interfaces.CoinTransactionRepository {
	if u.coinTransactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.coinTransactionRepo
}

// JackpotPoolRepository returns the pool repository for this unit of work
func (u *unitOfWork) JackpotPoolRepository() interfaces.JackpotPoolRepository {
	if u.jackpotPoolRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.jackpotPoolRepo
}

// JackpotHistoryRepository returns the history repository for this unit of work
func (u *unitOfWork) JackpotHistoryRepository() interfaces.JackpotHistoryRepository {
	if u.jackpotHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.jackpotHistoryRepo
}

// JackpotWinnerRepository returns the winner repository for this unit of work
func (u *unitOfWork) JackpotWinnerRepository() interfaces.JackpotWinnerRepository {
	if u.jackpotWinnerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.jackpotWinnerRepo
}

// ShopItemRepository returns the catalog repository for this unit of work
func (u *unitOfWork) ShopItemRepository() interfaces.ShopItemRepository {
	if u.shopItemRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shopItemRepo
}

// InventoryRepository returns the inventory repository for this unit of work
func (u *unitOfWork) InventoryRepository() interfaces.InventoryRepository {
	if u.inventoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inventoryRepo
}

// ShopPurchaseRepository returns the purchase repository for this unit of work
func (u *unitOfWork) ShopPurchaseRepository() interfaces.ShopPurchaseRepository {
	if u.shopPurchaseRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shopPurchaseRepo
}

// EventBus returns the transaction-scoped event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.tx == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
