package services

import (
	"context"
	"fmt"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/events"
	"quizcoin/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ledgerService implements the transactional coin ledger. It owns all
// balance mutation: collaborators (jackpot engine, shop flow) never touch
// balances directly. The caller supplies the transactional boundary; every
// mutation here assumes it runs inside one unit of work.
type ledgerService struct {
	balanceRepo    interfaces.BalanceRepository
	txRepo         interfaces.CoinTransactionRepository
	eventPublisher interfaces.EventPublisher
	signupBonus    int64
}

// NewLedgerService creates a new ledger service. signupBonus is the coin
// grant applied by InitializeAccount; zero disables it.
func NewLedgerService(
	balanceRepo interfaces.BalanceRepository,
	txRepo interfaces.CoinTransactionRepository,
	eventPublisher interfaces.EventPublisher,
	signupBonus int64,
) interfaces.LedgerService {
	return &ledgerService{
		balanceRepo:    balanceRepo,
		txRepo:         txRepo,
		eventPublisher: eventPublisher,
		signupBonus:    signupBonus,
	}
}

func (s *ledgerService) Credit(ctx context.Context, params interfaces.CreditParams) (*interfaces.CreditResult, error) {
	if params.Coins < 0 || params.BonusCoins < 0 {
		return nil, domain.NewValidationError("credit amounts cannot be negative")
	}
	if params.Coins == 0 && params.BonusCoins == 0 {
		return nil, domain.NewValidationError("credit must add at least one coin or bonus coin")
	}
	if !params.Type.Valid() {
		return nil, domain.NewValidationError("unknown transaction type %q", params.Type)
	}

	balance, err := s.balanceRepo.GetOrCreateForUpdate(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance for user %d: %w", params.UserID, err)
	}

	tx := &entities.CoinTransaction{
		UserID:           params.UserID,
		Type:             params.Type,
		CoinsChange:      params.Coins,
		BonusCoinsChange: params.BonusCoins,
		CoinsBefore:      balance.Coins,
		CoinsAfter:       balance.Coins + params.Coins,
		BonusCoinsBefore: balance.BonusCoins,
		BonusCoinsAfter:  balance.BonusCoins + params.BonusCoins,
		ReferenceType:    params.ReferenceType,
		ReferenceID:      params.ReferenceID,
		Description:      params.Description,
		Metadata:         params.Metadata,
	}

	balance.Coins = tx.CoinsAfter
	balance.BonusCoins = tx.BonusCoinsAfter
	if err := s.apply(ctx, balance, tx); err != nil {
		return nil, err
	}

	return &interfaces.CreditResult{
		CoinsAdded:      params.Coins,
		BonusCoinsAdded: params.BonusCoins,
		NewBalance:      balance,
	}, nil
}

func (s *ledgerService) Debit(ctx context.Context, params interfaces.DebitParams) (*interfaces.DebitResult, error) {
	if params.Amount <= 0 {
		return nil, domain.NewValidationError("debit amount must be positive")
	}
	if !params.Type.Valid() {
		return nil, domain.NewValidationError("unknown transaction type %q", params.Type)
	}

	balance, err := s.balanceRepo.GetOrCreateForUpdate(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance for user %d: %w", params.UserID, err)
	}

	if !balance.HasSufficient(params.Amount) {
		return nil, fmt.Errorf("have %d, need %d: %w", balance.Total(), params.Amount, domain.ErrInsufficientFunds)
	}

	// Spend-order policy: bonus coins are exhausted before coins.
	fromCoins, fromBonus := balance.SplitDebit(params.Amount)

	tx := &entities.CoinTransaction{
		UserID:           params.UserID,
		Type:             params.Type,
		CoinsChange:      -fromCoins,
		BonusCoinsChange: -fromBonus,
		CoinsBefore:      balance.Coins,
		CoinsAfter:       balance.Coins - fromCoins,
		BonusCoinsBefore: balance.BonusCoins,
		BonusCoinsAfter:  balance.BonusCoins - fromBonus,
		ReferenceType:    params.ReferenceType,
		ReferenceID:      params.ReferenceID,
		Description:      params.Description,
		Metadata:         params.Metadata,
	}

	balance.Coins = tx.CoinsAfter
	balance.BonusCoins = tx.BonusCoinsAfter
	if err := s.apply(ctx, balance, tx); err != nil {
		return nil, err
	}

	return &interfaces.DebitResult{
		AmountDeducted: params.Amount,
		FromCoins:      fromCoins,
		FromBonusCoins: fromBonus,
		NewBalance:     balance,
	}, nil
}

func (s *ledgerService) SetBalance(ctx context.Context, userID, coins, bonusCoins, adminID int64, reason string) (*entities.UserBalance, error) {
	if coins < 0 || bonusCoins < 0 {
		return nil, domain.NewValidationError("balances cannot be set negative")
	}

	balance, err := s.balanceRepo.GetOrCreateForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance for user %d: %w", userID, err)
	}

	if balance.Coins == coins && balance.BonusCoins == bonusCoins {
		// Nothing to change; a zero-delta ledger row would be invalid.
		return balance, nil
	}

	tx := &entities.CoinTransaction{
		UserID:           userID,
		Type:             entities.TransactionTypeAdminAdjustment,
		CoinsChange:      coins - balance.Coins,
		BonusCoinsChange: bonusCoins - balance.BonusCoins,
		CoinsBefore:      balance.Coins,
		CoinsAfter:       coins,
		BonusCoinsBefore: balance.BonusCoins,
		BonusCoinsAfter:  bonusCoins,
		Description:      reason,
		Metadata: map[string]any{
			"admin_id": adminID,
			"reason":   reason,
		},
	}

	balance.Coins = coins
	balance.BonusCoins = bonusCoins
	if err := s.apply(ctx, balance, tx); err != nil {
		return nil, err
	}

	return balance, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	balance, err := s.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	if balance == nil {
		return nil, fmt.Errorf("balance for user %d: %w", userID, domain.ErrNotFound)
	}
	return balance, nil
}

func (s *ledgerService) HasSufficientFunds(ctx context.Context, userID, amount int64) (bool, error) {
	balance, err := s.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	if balance == nil {
		return false, nil
	}
	return balance.HasSufficient(amount), nil
}

func (s *ledgerService) InitializeAccount(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	balance, err := s.balanceRepo.GetOrCreateForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize balance for user %d: %w", userID, err)
	}

	// Seed only genuinely new accounts; re-initializing is a no-op.
	if s.signupBonus <= 0 || balance.Total() > 0 {
		return balance, nil
	}

	result, err := s.Credit(ctx, interfaces.CreditParams{
		UserID:      userID,
		Coins:       s.signupBonus,
		Type:        entities.TransactionTypeSignupBonus,
		Description: "starting balance",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply signup bonus for user %d: %w", userID, err)
	}
	return result.NewBalance, nil
}

func (s *ledgerService) GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error) {
	txs, err := s.txRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}
	return txs, nil
}

func (s *ledgerService) GetTransactionStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error) {
	stats, err := s.txRepo.GetStats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction stats: %w", err)
	}
	return stats, nil
}

func (s *ledgerService) GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit must be positive")
	}
	earners, err := s.txRepo.GetTopEarners(ctx, limit, includeBonus)
	if err != nil {
		return nil, fmt.Errorf("failed to get top earners: %w", err)
	}
	return earners, nil
}

// apply writes the balance update and its paired ledger row, then publishes
// the balance change event. The enclosing unit of work makes the pair atomic.
func (s *ledgerService) apply(ctx context.Context, balance *entities.UserBalance, tx *entities.CoinTransaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid ledger row for user %d: %w", tx.UserID, err)
	}

	if err := s.balanceRepo.UpdateBalance(ctx, balance.UserID, balance.Coins, balance.BonusCoins); err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", balance.UserID, err)
	}

	if err := s.txRepo.Record(ctx, tx); err != nil {
		return fmt.Errorf("failed to record ledger row for user %d: %w", tx.UserID, err)
	}

	event := events.BalanceChangeEvent{
		UserID:          tx.UserID,
		OldCoins:        tx.CoinsBefore,
		NewCoins:        tx.CoinsAfter,
		OldBonusCoins:   tx.BonusCoinsBefore,
		NewBonusCoins:   tx.BonusCoinsAfter,
		TransactionType: tx.Type,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID":          tx.UserID,
			"transactionType": tx.Type,
		}).Error("Failed to publish balance change event")
	}

	return nil
}
