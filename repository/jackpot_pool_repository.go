package repository

import (
	"context"
	"fmt"

	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const jackpotPoolColumns = `
	id, tier, name, current_amount, minimum_amount,
	increment_per_correct, win_probability,
	last_won_by, last_won_at, total_won, times_won,
	created_at, updated_at`

// JackpotPoolRepository implements the JackpotPoolRepository interface
type JackpotPoolRepository struct {
	q Queryable
}

// NewJackpotPoolRepository creates a new jackpot pool repository
func NewJackpotPoolRepository(db *database.DB) *JackpotPoolRepository {
	return &JackpotPoolRepository{q: db.Pool}
}

func newJackpotPoolRepository(tx Queryable) interfaces.JackpotPoolRepository {
	return &JackpotPoolRepository{q: tx}
}

func scanJackpotPool(row pgx.Row) (*entities.JackpotPool, error) {
	var pool entities.JackpotPool
	err := row.Scan(
		&pool.ID,
		&pool.Tier,
		&pool.Name,
		&pool.CurrentAmount,
		&pool.MinimumAmount,
		&pool.IncrementPerCorrect,
		&pool.WinProbability,
		&pool.LastWonBy,
		&pool.LastWonAt,
		&pool.TotalWon,
		&pool.TimesWon,
		&pool.CreatedAt,
		&pool.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (r *JackpotPoolRepository) getAll(ctx context.Context, forUpdate bool) ([]*entities.JackpotPool, error) {
	query := `SELECT` + jackpotPoolColumns + `
		FROM jackpot_pools
		ORDER BY id ASC`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot pools: %w", translateError(err))
	}
	defer rows.Close()

	var pools []*entities.JackpotPool
	for rows.Next() {
		pool, err := scanJackpotPool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jackpot pool: %w", err)
		}
		pools = append(pools, pool)
	}
	return pools, rows.Err()
}

// GetAll returns every pool, ascending by id
func (r *JackpotPoolRepository) GetAll(ctx context.Context) ([]*entities.JackpotPool, error) {
	return r.getAll(ctx, false)
}

// GetAllForUpdate returns every pool locked for the transaction. Rows are
// locked in ascending id order so concurrent callers cannot deadlock.
func (r *JackpotPoolRepository) GetAllForUpdate(ctx context.Context) ([]*entities.JackpotPool, error) {
	return r.getAll(ctx, true)
}

// GetByID retrieves a single pool
func (r *JackpotPoolRepository) GetByID(ctx context.Context, id int64) (*entities.JackpotPool, error) {
	query := `SELECT` + jackpotPoolColumns + `
		FROM jackpot_pools
		WHERE id = $1`

	pool, err := scanJackpotPool(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot pool %d: %w", id, translateError(err))
	}
	return pool, nil
}

// GetByTier retrieves a pool by its tier
func (r *JackpotPoolRepository) GetByTier(ctx context.Context, tier entities.JackpotTier) (*entities.JackpotPool, error) {
	query := `SELECT` + jackpotPoolColumns + `
		FROM jackpot_pools
		WHERE tier = $1`

	pool, err := scanJackpotPool(r.q.QueryRow(ctx, query, tier))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot pool for tier %s: %w", tier, translateError(err))
	}
	return pool, nil
}

// Create inserts a new pool
func (r *JackpotPoolRepository) Create(ctx context.Context, pool *entities.JackpotPool) error {
	query := `
		INSERT INTO jackpot_pools (
			tier, name, current_amount, minimum_amount,
			increment_per_correct, win_probability
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		pool.Tier,
		pool.Name,
		pool.CurrentAmount,
		pool.MinimumAmount,
		pool.IncrementPerCorrect,
		pool.WinProbability,
	).Scan(&pool.ID, &pool.CreatedAt, &pool.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create jackpot pool %q: %w", pool.Name, translateError(err))
	}
	return nil
}

// Update writes the pool's amount and aggregate stats
func (r *JackpotPoolRepository) Update(ctx context.Context, pool *entities.JackpotPool) error {
	query := `
		UPDATE jackpot_pools
		SET current_amount = $2,
			last_won_by = $3,
			last_won_at = $4,
			total_won = $5,
			times_won = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		pool.ID,
		pool.CurrentAmount,
		pool.LastWonBy,
		pool.LastWonAt,
		pool.TotalWon,
		pool.TimesWon,
	)
	if err != nil {
		return fmt.Errorf("failed to update jackpot pool %d: %w", pool.ID, translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no jackpot pool with id %d", pool.ID)
	}
	return nil
}
