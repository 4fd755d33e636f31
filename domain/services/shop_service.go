package services

import (
	"context"
	"fmt"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"
)

// shopService handles catalog reads and the purchase/consume flows. Currency
// movement is delegated to the ledger; this service owns item lookup,
// inventory and purchase history. Catalog reads go through an LRU cache, but
// the purchase path always reads the item row inside the transaction so a
// price or deactivation change can never be bypassed by a stale cache entry.
type shopService struct {
	itemRepo      interfaces.ShopItemRepository
	inventoryRepo interfaces.InventoryRepository
	purchaseRepo  interfaces.ShopPurchaseRepository
	ledger        interfaces.LedgerService
	itemCache     *lru.Cache
}

// NewShopService creates a new shop service. itemCache may be shared across
// service instances; it holds itemID -> *entities.ShopItem.
func NewShopService(
	itemRepo interfaces.ShopItemRepository,
	inventoryRepo interfaces.InventoryRepository,
	purchaseRepo interfaces.ShopPurchaseRepository,
	ledger interfaces.LedgerService,
	itemCache *lru.Cache,
) interfaces.ShopService {
	return &shopService{
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		purchaseRepo:  purchaseRepo,
		ledger:        ledger,
		itemCache:     itemCache,
	}
}

func (s *shopService) Purchase(ctx context.Context, userID, itemID, quantity int64) (*interfaces.PurchaseResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive")
	}

	// Authoritative read, bypassing the cache.
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop item %d: %w", itemID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("shop item %d: %w", itemID, domain.ErrNotFound)
	}
	// An inactive item is not purchasable: same outcome as absent.
	if !item.IsActive {
		return nil, fmt.Errorf("shop item %d is not active: %w", itemID, domain.ErrNotFound)
	}

	totalCost := item.Price * quantity

	refType := entities.ReferenceTypeShopItem
	refID := item.ID
	debit, err := s.ledger.Debit(ctx, interfaces.DebitParams{
		UserID:        userID,
		Amount:        totalCost,
		Type:          entities.TransactionTypeShopPurchase,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		Description:   fmt.Sprintf("purchased %dx %s", quantity, item.Name),
		Metadata: map[string]any{
			"item_id":  item.ID,
			"quantity": quantity,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.AddQuantity(ctx, userID, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add item %d to inventory of user %d: %w", item.ID, userID, err)
	}

	if err := s.purchaseRepo.Create(ctx, &entities.ShopPurchase{
		UserID:    userID,
		ItemID:    item.ID,
		Quantity:  quantity,
		TotalCost: totalCost,
	}); err != nil {
		return nil, fmt.Errorf("failed to record purchase of item %d by user %d: %w", item.ID, userID, err)
	}

	log.WithFields(log.Fields{
		"userID":    userID,
		"itemID":    item.ID,
		"quantity":  quantity,
		"totalCost": totalCost,
	}).Info("Shop purchase completed")

	return &interfaces.PurchaseResult{
		Item:             item,
		Quantity:         quantity,
		TotalCost:        totalCost,
		FromCoins:        debit.FromCoins,
		FromBonusCoins:   debit.FromBonusCoins,
		RemainingBalance: debit.NewBalance,
	}, nil
}

func (s *shopService) UsePowerup(ctx context.Context, userID, itemID int64) (*interfaces.PowerupResult, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.inventoryRepo.ConsumeOne(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume item %d for user %d: %w", itemID, userID, err)
	}

	log.WithFields(log.Fields{
		"userID":    userID,
		"itemID":    itemID,
		"remaining": remaining,
	}).Info("Powerup consumed")

	return &interfaces.PowerupResult{
		Name:        item.Name,
		EffectType:  item.EffectType,
		EffectValue: item.EffectValue,
		Remaining:   remaining,
	}, nil
}

func (s *shopService) GetItem(ctx context.Context, itemID int64) (*entities.ShopItem, error) {
	if s.itemCache != nil {
		if cached, ok := s.itemCache.Get(itemID); ok {
			return cached.(*entities.ShopItem), nil
		}
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop item %d: %w", itemID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("shop item %d: %w", itemID, domain.ErrNotFound)
	}

	if s.itemCache != nil {
		s.itemCache.Add(itemID, item)
	}
	return item, nil
}

func (s *shopService) GetActiveItems(ctx context.Context) ([]*entities.ShopItem, error) {
	items, err := s.itemRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active shop items: %w", err)
	}
	if s.itemCache != nil {
		for _, item := range items {
			s.itemCache.Add(item.ID, item)
		}
	}
	return items, nil
}

func (s *shopService) GetUserInventory(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	items, err := s.inventoryRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for user %d: %w", userID, err)
	}
	return items, nil
}

func (s *shopService) GetPurchaseHistory(ctx context.Context, userID int64, limit int) ([]*entities.ShopPurchase, error) {
	purchases, err := s.purchaseRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase history for user %d: %w", userID, err)
	}
	return purchases, nil
}
