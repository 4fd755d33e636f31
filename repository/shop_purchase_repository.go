package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
)

// ShopPurchaseRepository implements the ShopPurchaseRepository interface
type ShopPurchaseRepository struct {
	q Queryable
}

// NewShopPurchaseRepository creates a new shop purchase repository
func NewShopPurchaseRepository(db *database.DB) *ShopPurchaseRepository {
	return &ShopPurchaseRepository{q: db.Pool}
}

func newShopPurchaseRepository(tx Queryable) interfaces.ShopPurchaseRepository {
	return &ShopPurchaseRepository{q: tx}
}

// Create appends one purchase record
func (r *ShopPurchaseRepository) Create(ctx context.Context, purchase *entities.ShopPurchase) error {
	query := `
		INSERT INTO shop_purchases (user_id, item_id, quantity, total_cost)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		purchase.UserID,
		purchase.ItemID,
		purchase.Quantity,
		purchase.TotalCost,
	).Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record purchase of item %d by user %d: %w", purchase.ItemID, purchase.UserID, translateError(err))
	}
	return nil
}

// GetByUser returns a user's purchases, newest first
func (r *ShopPurchaseRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ShopPurchase, error) {
	query := `
		SELECT id, user_id, item_id, quantity, total_cost, created_at
		FROM shop_purchases
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases for user %d: %w", userID, translateError(err))
	}
	defer rows.Close()

	var purchases []*entities.ShopPurchase
	for rows.Next() {
		var p entities.ShopPurchase
		err := rows.Scan(&p.ID, &p.UserID, &p.ItemID, &p.Quantity, &p.TotalCost, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}
