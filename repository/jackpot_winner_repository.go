package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
)

// JackpotWinnerRepository implements the JackpotWinnerRepository interface
type JackpotWinnerRepository struct {
	q Queryable
}

// NewJackpotWinnerRepository creates a new jackpot winner repository
func NewJackpotWinnerRepository(db *database.DB) *JackpotWinnerRepository {
	return &JackpotWinnerRepository{q: db.Pool}
}

func newJackpotWinnerRepository(tx Queryable) interfaces.JackpotWinnerRepository {
	return &JackpotWinnerRepository{q: tx}
}

// Create appends one winner record
func (r *JackpotWinnerRepository) Create(ctx context.Context, winner *entities.JackpotWinner) error {
	query := `
		INSERT INTO jackpot_winners (jackpot_id, user_id, amount_won, question_id, session_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		winner.JackpotID,
		winner.UserID,
		winner.AmountWon,
		winner.QuestionID,
		winner.SessionID,
	).Scan(&winner.ID, &winner.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record winner for pool %d: %w", winner.JackpotID, translateError(err))
	}
	return nil
}

func (r *JackpotWinnerRepository) scanWinners(ctx context.Context, query string, args ...any) ([]*entities.JackpotWinner, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var winners []*entities.JackpotWinner
	for rows.Next() {
		var w entities.JackpotWinner
		err := rows.Scan(&w.ID, &w.JackpotID, &w.UserID, &w.AmountWon, &w.QuestionID, &w.SessionID, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, &w)
	}
	return winners, rows.Err()
}

// GetRecent returns the most recent payouts across all pools
func (r *JackpotWinnerRepository) GetRecent(ctx context.Context, limit int) ([]*entities.JackpotWinner, error) {
	query := `
		SELECT id, jackpot_id, user_id, amount_won, question_id, session_id, created_at
		FROM jackpot_winners
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	winners, err := r.scanWinners(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent winners: %w", err)
	}
	return winners, nil
}

// GetByUser returns a user's payouts, newest first
func (r *JackpotWinnerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.JackpotWinner, error) {
	query := `
		SELECT id, jackpot_id, user_id, amount_won, question_id, session_id, created_at
		FROM jackpot_winners
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	winners, err := r.scanWinners(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get winners for user %d: %w", userID, err)
	}
	return winners, nil
}
