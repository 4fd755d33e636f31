package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
)

// CoinTransactionRepository implements the append-only ledger
type CoinTransactionRepository struct {
	q Queryable
}

// NewCoinTransactionRepository creates a new coin transaction repository
func NewCoinTransactionRepository(db *database.DB) *CoinTransactionRepository {
	return &CoinTransactionRepository{q: db.Pool}
}

func newCoinTransactionRepository(tx Queryable) interfaces.CoinTransactionRepository {
	return &CoinTransactionRepository{q: tx}
}

// Record appends one immutable ledger row
func (r *CoinTransactionRepository) Record(ctx context.Context, tx *entities.CoinTransaction) error {
	query := `
		INSERT INTO coin_transactions (
			user_id, transaction_type,
			coins_change, bonus_coins_change,
			coins_before, coins_after,
			bonus_coins_before, bonus_coins_after,
			reference_type, reference_id,
			description, metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	var metadataJSON []byte
	if tx.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(tx.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction metadata: %w", err)
		}
	}

	err := r.q.QueryRow(ctx, query,
		tx.UserID,
		tx.Type,
		tx.CoinsChange,
		tx.BonusCoinsChange,
		tx.CoinsBefore,
		tx.CoinsAfter,
		tx.BonusCoinsBefore,
		tx.BonusCoinsAfter,
		tx.ReferenceType,
		tx.ReferenceID,
		tx.Description,
		metadataJSON,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", tx.UserID, translateError(err))
	}
	return nil
}

// GetByUser returns a user's ledger rows, newest first
func (r *CoinTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error) {
	query := `
		SELECT id, user_id, transaction_type,
			coins_change, bonus_coins_change,
			coins_before, coins_after,
			bonus_coins_before, bonus_coins_after,
			reference_type, reference_id,
			description, metadata, created_at
		FROM coin_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, translateError(err))
	}
	defer rows.Close()

	var txs []*entities.CoinTransaction
	for rows.Next() {
		var tx entities.CoinTransaction
		var metadataJSON []byte
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Type,
			&tx.CoinsChange,
			&tx.BonusCoinsChange,
			&tx.CoinsBefore,
			&tx.CoinsAfter,
			&tx.BonusCoinsBefore,
			&tx.BonusCoinsAfter,
			&tx.ReferenceType,
			&tx.ReferenceID,
			&tx.Description,
			&metadataJSON,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}
		txs = append(txs, &tx)
	}
	return txs, rows.Err()
}

// GetStats aggregates ledger activity matching the filter
func (r *CoinTransactionRepository) GetStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error) {
	query := `
		SELECT transaction_type,
			COUNT(*),
			COALESCE(SUM(coins_change) FILTER (WHERE coins_change > 0), 0),
			COALESCE(SUM(-coins_change) FILTER (WHERE coins_change < 0), 0),
			COALESCE(SUM(bonus_coins_change) FILTER (WHERE bonus_coins_change > 0), 0),
			COALESCE(SUM(-bonus_coins_change) FILTER (WHERE bonus_coins_change < 0), 0)
		FROM coin_transactions
		WHERE ($1::bigint IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR transaction_type = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at < $4)
		GROUP BY transaction_type
	`

	rows, err := r.q.Query(ctx, query, filter.UserID, filter.Type, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction stats: %w", translateError(err))
	}
	defer rows.Close()

	stats := &entities.TransactionStats{
		CountByType: make(map[entities.TransactionType]int64),
	}
	for rows.Next() {
		var txType entities.TransactionType
		var count, coinsIn, coinsOut, bonusIn, bonusOut int64
		if err := rows.Scan(&txType, &count, &coinsIn, &coinsOut, &bonusIn, &bonusOut); err != nil {
			return nil, fmt.Errorf("failed to scan transaction stats: %w", err)
		}
		stats.CountByType[txType] = count
		stats.TransactionCount += count
		stats.CoinsIn += coinsIn
		stats.CoinsOut += coinsOut
		stats.BonusCoinsIn += bonusIn
		stats.BonusCoinsOut += bonusOut
	}
	return stats, rows.Err()
}

// GetTopEarners ranks users by summed positive ledger changes
func (r *CoinTransactionRepository) GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error) {
	earned := "GREATEST(coins_change, 0)"
	if includeBonus {
		earned = "GREATEST(coins_change, 0) + GREATEST(bonus_coins_change, 0)"
	}
	query := fmt.Sprintf(`
		SELECT user_id, SUM(%s) AS total_earned
		FROM coin_transactions
		GROUP BY user_id
		HAVING SUM(%s) > 0
		ORDER BY total_earned DESC, user_id ASC
		LIMIT $1
	`, earned, earned)

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top earners: %w", translateError(err))
	}
	defer rows.Close()

	var earners []*entities.TopEarner
	for rows.Next() {
		var e entities.TopEarner
		if err := rows.Scan(&e.UserID, &e.TotalEarned); err != nil {
			return nil, fmt.Errorf("failed to scan top earner: %w", err)
		}
		earners = append(earners, &e)
	}
	return earners, rows.Err()
}
