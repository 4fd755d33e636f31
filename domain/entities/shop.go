package entities

import "time"

// ShopItem is a purchasable catalog entry. Inactive items stay in the
// catalog for purchase-history joins but cannot be bought.
type ShopItem struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       int64     `db:"price"`
	EffectType  string    `db:"effect_type"`
	EffectValue int64     `db:"effect_value"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// InventoryItem tracks how many of an item a user owns.
type InventoryItem struct {
	UserID    int64     `db:"user_id"`
	ItemID    int64     `db:"item_id"`
	Quantity  int64     `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ShopPurchase is one append-only record of a completed purchase.
type ShopPurchase struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ItemID    int64     `db:"item_id"`
	Quantity  int64     `db:"quantity"`
	TotalCost int64     `db:"total_cost"`
	CreatedAt time.Time `db:"created_at"`
}
