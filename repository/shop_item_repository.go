package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// ShopItemRepository implements the ShopItemRepository interface
type ShopItemRepository struct {
	q Queryable
}

// NewShopItemRepository creates a new shop item repository
func NewShopItemRepository(db *database.DB) *ShopItemRepository {
	return &ShopItemRepository{q: db.Pool}
}

func newShopItemRepository(tx Queryable) interfaces.ShopItemRepository {
	return &ShopItemRepository{q: tx}
}

// GetByID retrieves an item regardless of active state
func (r *ShopItemRepository) GetByID(ctx context.Context, id int64) (*entities.ShopItem, error) {
	query := `
		SELECT id, name, description, price, effect_type, effect_value, is_active, created_at, updated_at
		FROM shop_items
		WHERE id = $1
	`

	var item entities.ShopItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.EffectType,
		&item.EffectValue,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop item %d: %w", id, translateError(err))
	}
	return &item, nil
}

// GetActive returns all purchasable items
func (r *ShopItemRepository) GetActive(ctx context.Context) ([]*entities.ShopItem, error) {
	query := `
		SELECT id, name, description, price, effect_type, effect_value, is_active, created_at, updated_at
		FROM shop_items
		WHERE is_active = TRUE
		ORDER BY price ASC, id ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active shop items: %w", translateError(err))
	}
	defer rows.Close()

	var items []*entities.ShopItem
	for rows.Next() {
		var item entities.ShopItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.EffectType,
			&item.EffectValue,
			&item.IsActive,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Create inserts a new catalog entry
func (r *ShopItemRepository) Create(ctx context.Context, item *entities.ShopItem) error {
	query := `
		INSERT INTO shop_items (name, description, price, effect_type, effect_value, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.EffectType,
		item.EffectValue,
		item.IsActive,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create shop item %q: %w", item.Name, translateError(err))
	}
	return nil
}
