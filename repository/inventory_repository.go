package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q Queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

func newInventoryRepository(tx Queryable) interfaces.InventoryRepository {
	return &InventoryRepository{q: tx}
}

// GetByUserAndItem retrieves one holding without locking
func (r *InventoryRepository) GetByUserAndItem(ctx context.Context, userID, itemID int64) (*entities.InventoryItem, error) {
	query := `
		SELECT user_id, item_id, quantity, created_at, updated_at
		FROM inventories
		WHERE user_id = $1 AND item_id = $2
	`

	var item entities.InventoryItem
	err := r.q.QueryRow(ctx, query, userID, itemID).Scan(
		&item.UserID,
		&item.ItemID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d for user %d: %w", itemID, userID, translateError(err))
	}
	return &item, nil
}

// AddQuantity upserts the holding, adding quantity (insert if absent)
func (r *InventoryRepository) AddQuantity(ctx context.Context, userID, itemID, quantity int64) error {
	query := `
		INSERT INTO inventories (user_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = inventories.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, userID, itemID, quantity); err != nil {
		return fmt.Errorf("failed to add %d of item %d for user %d: %w", quantity, itemID, userID, translateError(err))
	}
	return nil
}

// ConsumeOne decrements a holding by one. The guard on quantity makes the
// decrement atomic: an absent or empty holding changes nothing and is
// reported as ErrNotFound.
func (r *InventoryRepository) ConsumeOne(ctx context.Context, userID, itemID int64) (int64, error) {
	query := `
		UPDATE inventories
		SET quantity = quantity - 1, updated_at = NOW()
		WHERE user_id = $1 AND item_id = $2 AND quantity > 0
		RETURNING quantity
	`

	var remaining int64
	err := r.q.QueryRow(ctx, query, userID, itemID).Scan(&remaining)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("no usable item %d for user %d: %w", itemID, userID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to consume item %d for user %d: %w", itemID, userID, translateError(err))
	}
	return remaining, nil
}

// GetByUser returns all of a user's holdings
func (r *InventoryRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	query := `
		SELECT user_id, item_id, quantity, created_at, updated_at
		FROM inventories
		WHERE user_id = $1 AND quantity > 0
		ORDER BY item_id ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for user %d: %w", userID, translateError(err))
	}
	defer rows.Close()

	var items []*entities.InventoryItem
	for rows.Next() {
		var item entities.InventoryItem
		err := rows.Scan(&item.UserID, &item.ItemID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
