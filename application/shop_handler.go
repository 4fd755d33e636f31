package application

import (
	"context"

	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
	"quizcoin/domain/services"

	lru "github.com/hashicorp/golang-lru"
)

// ShopHandler exposes the shop flows as transactional use cases. It owns the
// catalog cache so all units of work share one.
type ShopHandler struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
	itemCache       *lru.Cache
}

// NewShopHandler creates a new shop handler with a catalog cache of the
// given size.
func NewShopHandler(uowFactory UnitOfWorkFactory, startingBalance int64, cacheSize int) (*ShopHandler, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &ShopHandler{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
		itemCache:       cache,
	}, nil
}

func (h *ShopHandler) shop(uow UnitOfWork) interfaces.ShopService {
	ledger := services.NewLedgerService(
		uow.BalanceRepository(),
		uow.CoinTransactionRepository(),
		uow.EventBus(),
		h.startingBalance,
	)
	return services.NewShopService(
		uow.ShopItemRepository(),
		uow.InventoryRepository(),
		uow.ShopPurchaseRepository(),
		ledger,
		h.itemCache,
	)
}

// Purchase buys quantity of an item, debiting the price and updating
// inventory and purchase history atomically
func (h *ShopHandler) Purchase(ctx context.Context, userID, itemID, quantity int64) (*interfaces.PurchaseResult, error) {
	var result *interfaces.PurchaseResult
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = h.shop(uow).Purchase(ctx, userID, itemID, quantity)
		return err
	})
	return result, err
}

// UsePowerup consumes one unit of an owned item
func (h *ShopHandler) UsePowerup(ctx context.Context, userID, itemID int64) (*interfaces.PowerupResult, error) {
	var result *interfaces.PowerupResult
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = h.shop(uow).UsePowerup(ctx, userID, itemID)
		return err
	})
	return result, err
}

// GetItem reads a catalog entry
func (h *ShopHandler) GetItem(ctx context.Context, itemID int64) (*entities.ShopItem, error) {
	var item *entities.ShopItem
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		item, err = h.shop(uow).GetItem(ctx, itemID)
		return err
	})
	return item, err
}

// GetActiveItems lists the purchasable catalog
func (h *ShopHandler) GetActiveItems(ctx context.Context) ([]*entities.ShopItem, error) {
	var items []*entities.ShopItem
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		items, err = h.shop(uow).GetActiveItems(ctx)
		return err
	})
	return items, err
}

// GetUserInventory lists a user's holdings
func (h *ShopHandler) GetUserInventory(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		items, err = h.shop(uow).GetUserInventory(ctx, userID)
		return err
	})
	return items, err
}

// GetPurchaseHistory lists a user's purchases, newest first
func (h *ShopHandler) GetPurchaseHistory(ctx context.Context, userID int64, limit int) ([]*entities.ShopPurchase, error) {
	var purchases []*entities.ShopPurchase
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		purchases, err = h.shop(uow).GetPurchaseHistory(ctx, userID, limit)
		return err
	})
	return purchases, err
}
