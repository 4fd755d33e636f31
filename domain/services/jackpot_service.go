package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/events"
	"quizcoin/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// jackpotService runs the probabilistic prize pools. Every correct answer
// feeds every pool; each pool then draws independently, so a single answer
// can win several tiers at once.
type jackpotService struct {
	poolRepo       interfaces.JackpotPoolRepository
	historyRepo    interfaces.JackpotHistoryRepository
	winnerRepo     interfaces.JackpotWinnerRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher

	// rng returns a draw in [0, 1). Injected for deterministic tests.
	rng func() float64
}

// NewJackpotService creates a new jackpot service using the default
// random source.
func NewJackpotService(
	poolRepo interfaces.JackpotPoolRepository,
	historyRepo interfaces.JackpotHistoryRepository,
	winnerRepo interfaces.JackpotWinnerRepository,
	ledger interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
) interfaces.JackpotService {
	return &jackpotService{
		poolRepo:       poolRepo,
		historyRepo:    historyRepo,
		winnerRepo:     winnerRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		rng:            rand.Float64,
	}
}

func (s *jackpotService) OnCorrectAnswer(ctx context.Context, userID, questionID int64, sessionID string) ([]*interfaces.JackpotOutcome, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("user id must be positive")
	}

	// Pools come back locked in ascending id order so concurrent answer
	// events serialize instead of deadlocking.
	pools, err := s.poolRepo.GetAllForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock jackpot pools: %w", err)
	}

	outcomes := make([]*interfaces.JackpotOutcome, 0, len(pools))
	for _, pool := range pools {
		outcome, err := s.advancePool(ctx, pool, userID, questionID, sessionID)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// advancePool applies one correct answer to a single locked pool: increment,
// draw, and on a win the full payout. The won amount is the pool value after
// the increment, so the winning answer's own contribution is included.
func (s *jackpotService) advancePool(ctx context.Context, pool *entities.JackpotPool, userID, questionID int64, sessionID string) (*interfaces.JackpotOutcome, error) {
	oldAmount, newAmount := pool.ApplyIncrement()

	if err := s.historyRepo.Record(ctx, &entities.JackpotHistoryEntry{
		JackpotID:  pool.ID,
		OldAmount:  oldAmount,
		NewAmount:  newAmount,
		ChangeType: entities.JackpotChangeIncrement,
		UserID:     userID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record increment for pool %d: %w", pool.ID, err)
	}

	outcome := &interfaces.JackpotOutcome{
		JackpotID:     pool.ID,
		Tier:          pool.Tier,
		Name:          pool.Name,
		IncrementedBy: pool.IncrementPerCorrect,
		NewAmount:     newAmount,
	}

	if s.rng() <= pool.WinProbability {
		wonAmount, err := s.awardWin(ctx, pool, userID, questionID, sessionID)
		if err != nil {
			return nil, err
		}
		outcome.Won = true
		outcome.WinAmount = wonAmount
		outcome.NewAmount = pool.CurrentAmount
	}

	if err := s.poolRepo.Update(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to update pool %d: %w", pool.ID, err)
	}

	return outcome, nil
}

// awardWin pays out a locked pool to userID: winner record, ledger credit,
// reset-to-minimum history, all inside the caller's transaction so a crash
// can never leave a reset pool without its payout.
func (s *jackpotService) awardWin(ctx context.Context, pool *entities.JackpotPool, userID, questionID int64, sessionID string) (int64, error) {
	preWin := pool.CurrentAmount
	wonAmount := pool.ApplyWin(userID, time.Now().UTC())

	if err := s.winnerRepo.Create(ctx, &entities.JackpotWinner{
		JackpotID:  pool.ID,
		UserID:     userID,
		AmountWon:  wonAmount,
		QuestionID: questionID,
		SessionID:  sessionID,
	}); err != nil {
		return 0, fmt.Errorf("failed to record winner for pool %d: %w", pool.ID, err)
	}

	refType := entities.ReferenceTypeJackpotPool
	refID := pool.ID
	if _, err := s.ledger.Credit(ctx, interfaces.CreditParams{
		UserID:        userID,
		Coins:         wonAmount,
		Type:          entities.TransactionTypeJackpotWin,
		ReferenceType: &refType,
		ReferenceID:   &refID,
		Description:   fmt.Sprintf("%s jackpot win", pool.Name),
		Metadata: map[string]any{
			"tier":        string(pool.Tier),
			"question_id": questionID,
			"session_id":  sessionID,
		},
	}); err != nil {
		return 0, fmt.Errorf("failed to credit jackpot win for user %d: %w", userID, err)
	}

	if err := s.historyRepo.Record(ctx, &entities.JackpotHistoryEntry{
		JackpotID:  pool.ID,
		OldAmount:  preWin,
		NewAmount:  pool.CurrentAmount,
		ChangeType: entities.JackpotChangeWin,
		UserID:     userID,
	}); err != nil {
		return 0, fmt.Errorf("failed to record win for pool %d: %w", pool.ID, err)
	}

	s.publishWin(pool, userID, wonAmount, questionID, sessionID)

	return wonAmount, nil
}

func (s *jackpotService) publishWin(pool *entities.JackpotPool, userID, wonAmount, questionID int64, sessionID string) {
	winEvent := events.JackpotWonEvent{
		JackpotID:  pool.ID,
		Tier:       pool.Tier,
		UserID:     userID,
		Amount:     wonAmount,
		QuestionID: questionID,
		SessionID:  sessionID,
	}
	if err := s.eventPublisher.Publish(winEvent); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"jackpotID": pool.ID,
			"userID":    userID,
		}).Error("Failed to publish jackpot won event")
	}

	notification := events.NotificationRequestEvent{
		Recipient:    userID,
		TemplateName: "jackpot_won",
		Data: map[string]any{
			"tier":   string(pool.Tier),
			"name":   pool.Name,
			"amount": wonAmount,
		},
		Priority: events.NotificationPriorityHigh,
	}
	if err := s.eventPublisher.Publish(notification); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"jackpotID": pool.ID,
			"userID":    userID,
		}).Error("Failed to publish jackpot win notification request")
	}
}

func (s *jackpotService) GetPools(ctx context.Context) ([]*entities.JackpotPool, error) {
	pools, err := s.poolRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot pools: %w", err)
	}
	return pools, nil
}

func (s *jackpotService) GetRecentWinners(ctx context.Context, limit int) ([]*entities.JackpotWinner, error) {
	winners, err := s.winnerRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent winners: %w", err)
	}
	return winners, nil
}

func (s *jackpotService) EnsureDefaultPools(ctx context.Context, defaults []*entities.JackpotPool) error {
	for _, def := range defaults {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("invalid default pool %q: %w", def.Name, err)
		}

		existing, err := s.poolRepo.GetByTier(ctx, def.Tier)
		if err != nil {
			return fmt.Errorf("failed to check pool for tier %s: %w", def.Tier, err)
		}
		if existing != nil {
			continue
		}

		if err := s.poolRepo.Create(ctx, def); err != nil {
			return fmt.Errorf("failed to create default pool %q: %w", def.Name, err)
		}
		log.WithFields(log.Fields{
			"tier": def.Tier,
			"name": def.Name,
		}).Info("Created default jackpot pool")
	}
	return nil
}
