package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
)

// JackpotHistoryRepository implements the append-only pool amount log
type JackpotHistoryRepository struct {
	q Queryable
}

// NewJackpotHistoryRepository creates a new jackpot history repository
func NewJackpotHistoryRepository(db *database.DB) *JackpotHistoryRepository {
	return &JackpotHistoryRepository{q: db.Pool}
}

func newJackpotHistoryRepository(tx Queryable) interfaces.JackpotHistoryRepository {
	return &JackpotHistoryRepository{q: tx}
}

// Record appends one history entry
func (r *JackpotHistoryRepository) Record(ctx context.Context, entry *entities.JackpotHistoryEntry) error {
	query := `
		INSERT INTO jackpot_history (jackpot_id, old_amount, new_amount, change_type, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.JackpotID,
		entry.OldAmount,
		entry.NewAmount,
		entry.ChangeType,
		entry.UserID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record history for pool %d: %w", entry.JackpotID, translateError(err))
	}
	return nil
}

// GetByPool returns a pool's history, newest first
func (r *JackpotHistoryRepository) GetByPool(ctx context.Context, jackpotID int64, limit int) ([]*entities.JackpotHistoryEntry, error) {
	query := `
		SELECT id, jackpot_id, old_amount, new_amount, change_type, user_id, created_at
		FROM jackpot_history
		WHERE jackpot_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, jackpotID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for pool %d: %w", jackpotID, translateError(err))
	}
	defer rows.Close()

	var entries []*entities.JackpotHistoryEntry
	for rows.Next() {
		var e entities.JackpotHistoryEntry
		err := rows.Scan(&e.ID, &e.JackpotID, &e.OldAmount, &e.NewAmount, &e.ChangeType, &e.UserID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
