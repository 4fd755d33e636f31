package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// BalanceRepository implements the BalanceRepository interface
type BalanceRepository struct {
	q Queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

func newBalanceRepository(tx Queryable) interfaces.BalanceRepository {
	return &BalanceRepository{q: tx}
}

// GetByUserID retrieves a balance without locking it
func (r *BalanceRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	query := `
		SELECT user_id, coins, bonus_coins, created_at, updated_at
		FROM user_balances
		WHERE user_id = $1
	`

	var balance entities.UserBalance
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&balance.UserID,
		&balance.Coins,
		&balance.BonusCoins,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d: %w", userID, translateError(err))
	}
	return &balance, nil
}

// GetOrCreateForUpdate lazily creates a zero balance if absent, then returns
// the row locked for the rest of the transaction. The insert is idempotent so
// two concurrent first-touches race safely; whichever loses the insert still
// locks the same row.
func (r *BalanceRepository) GetOrCreateForUpdate(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	insert := `
		INSERT INTO user_balances (user_id, coins, bonus_coins)
		VALUES ($1, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure balance for user %d: %w", userID, translateError(err))
	}

	query := `
		SELECT user_id, coins, bonus_coins, created_at, updated_at
		FROM user_balances
		WHERE user_id = $1
		FOR UPDATE
	`

	var balance entities.UserBalance
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&balance.UserID,
		&balance.Coins,
		&balance.BonusCoins,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance for user %d: %w", userID, translateError(err))
	}
	return &balance, nil
}

// UpdateBalance writes both currency fields atomically
func (r *BalanceRepository) UpdateBalance(ctx context.Context, userID, coins, bonusCoins int64) error {
	query := `
		UPDATE user_balances
		SET coins = $2, bonus_coins = $3, updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := r.q.Exec(ctx, query, userID, coins, bonusCoins)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no balance row for user %d", userID)
	}
	return nil
}
