package application

import (
	"context"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
	"quizcoin/domain/services"

	log "github.com/sirupsen/logrus"
)

// CorrectAnswerParams describes one correct quiz answer event.
type CorrectAnswerParams struct {
	UserID      int64
	QuestionID  int64
	SessionID   string
	RewardCoins int64
}

// CorrectAnswerResult reports everything one correct answer produced: the
// gameplay reward and the outcome of every jackpot pool.
type CorrectAnswerResult struct {
	Reward   *interfaces.CreditResult
	Jackpots []*interfaces.JackpotOutcome
}

// QuizHandler processes gameplay events from the quiz engine.
type QuizHandler struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(uowFactory UnitOfWorkFactory, startingBalance int64) *QuizHandler {
	return &QuizHandler{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// HandleCorrectAnswer credits the gameplay reward, grows every jackpot pool
// and draws each for a win. The reward, the increments and any payout commit
// or roll back together.
func (h *QuizHandler) HandleCorrectAnswer(ctx context.Context, params CorrectAnswerParams) (*CorrectAnswerResult, error) {
	if params.UserID <= 0 {
		return nil, domain.NewValidationError("user id must be positive")
	}
	if params.RewardCoins < 0 {
		return nil, domain.NewValidationError("reward cannot be negative")
	}

	var result CorrectAnswerResult
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.BalanceRepository(),
			uow.CoinTransactionRepository(),
			uow.EventBus(),
			h.startingBalance,
		)
		jackpots := services.NewJackpotService(
			uow.JackpotPoolRepository(),
			uow.JackpotHistoryRepository(),
			uow.JackpotWinnerRepository(),
			ledger,
			uow.EventBus(),
		)

		if params.RewardCoins > 0 {
			refType := entities.ReferenceTypeQuizQuestion
			refID := params.QuestionID
			reward, err := ledger.Credit(ctx, interfaces.CreditParams{
				UserID:        params.UserID,
				Coins:         params.RewardCoins,
				Type:          entities.TransactionTypeQuizReward,
				ReferenceType: &refType,
				ReferenceID:   &refID,
				Description:   "correct answer reward",
				Metadata: map[string]any{
					"session_id": params.SessionID,
				},
			})
			if err != nil {
				return err
			}
			result.Reward = reward
		}

		outcomes, err := jackpots.OnCorrectAnswer(ctx, params.UserID, params.QuestionID, params.SessionID)
		if err != nil {
			return err
		}
		result.Jackpots = outcomes
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, outcome := range result.Jackpots {
		if outcome.Won {
			log.WithFields(log.Fields{
				"userID":    params.UserID,
				"tier":      outcome.Tier,
				"winAmount": outcome.WinAmount,
			}).Info("Jackpot won")
		}
	}

	return &result, nil
}

// GetPools returns every jackpot pool with its aggregate stats
func (h *QuizHandler) GetPools(ctx context.Context) ([]*entities.JackpotPool, error) {
	var pools []*entities.JackpotPool
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		pools, err = uow.JackpotPoolRepository().GetAll(ctx)
		return err
	})
	return pools, err
}

// GetRecentWinners returns the latest payouts across pools
func (h *QuizHandler) GetRecentWinners(ctx context.Context, limit int) ([]*entities.JackpotWinner, error) {
	var winners []*entities.JackpotWinner
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		winners, err = uow.JackpotWinnerRepository().GetRecent(ctx, limit)
		return err
	})
	return winners, err
}

// GetPoolHistory returns a pool's amount history, newest first
func (h *QuizHandler) GetPoolHistory(ctx context.Context, jackpotID int64, limit int) ([]*entities.JackpotHistoryEntry, error) {
	var entries []*entities.JackpotHistoryEntry
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		entries, err = uow.JackpotHistoryRepository().GetByPool(ctx, jackpotID, limit)
		return err
	})
	return entries, err
}

// EnsureDefaultPools creates any missing tier pools at startup
func (h *QuizHandler) EnsureDefaultPools(ctx context.Context, defaults []*entities.JackpotPool) error {
	return execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.BalanceRepository(),
			uow.CoinTransactionRepository(),
			uow.EventBus(),
			h.startingBalance,
		)
		jackpots := services.NewJackpotService(
			uow.JackpotPoolRepository(),
			uow.JackpotHistoryRepository(),
			uow.JackpotWinnerRepository(),
			ledger,
			uow.EventBus(),
		)
		return jackpots.EnsureDefaultPools(ctx, defaults)
	})
}
