package application

import (
	"context"
	"fmt"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/events"
	"quizcoin/domain/interfaces"
	"quizcoin/domain/services"

	log "github.com/sirupsen/logrus"
)

// LedgerHandler exposes the ledger operations as transactional use cases.
// Each call runs in its own unit of work with bounded retry on concurrency
// conflicts.
type LedgerHandler struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
	referralBonus   int64
}

// NewLedgerHandler creates a new ledger handler. startingBalance seeds new
// accounts; referralBonus is the bonus coin grant for successful referrals.
func NewLedgerHandler(uowFactory UnitOfWorkFactory, startingBalance, referralBonus int64) *LedgerHandler {
	return &LedgerHandler{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
		referralBonus:   referralBonus,
	}
}

func (h *LedgerHandler) ledger(uow UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(
		uow.BalanceRepository(),
		uow.CoinTransactionRepository(),
		uow.EventBus(),
		h.startingBalance,
	)
}

// Credit applies a ledger credit in its own transaction
func (h *LedgerHandler) Credit(ctx context.Context, params interfaces.CreditParams) (*interfaces.CreditResult, error) {
	var result *interfaces.CreditResult
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = h.ledger(uow).Credit(ctx, params)
		return err
	})
	return result, err
}

// Debit applies a ledger debit in its own transaction
func (h *LedgerHandler) Debit(ctx context.Context, params interfaces.DebitParams) (*interfaces.DebitResult, error) {
	var result *interfaces.DebitResult
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = h.ledger(uow).Debit(ctx, params)
		return err
	})
	return result, err
}

// SetBalance applies an administrative balance override
func (h *LedgerHandler) SetBalance(ctx context.Context, userID, coins, bonusCoins, adminID int64, reason string) (*entities.UserBalance, error) {
	var balance *entities.UserBalance
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		balance, err = h.ledger(uow).SetBalance(ctx, userID, coins, bonusCoins, adminID, reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"adminID": adminID,
		"coins":   coins,
	}).Info("Balance set by administrator")
	return balance, nil
}

// InitializeAccount creates a balance for a new user, applying the signup
// grant if configured
func (h *LedgerHandler) InitializeAccount(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	var balance *entities.UserBalance
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		balance, err = h.ledger(uow).InitializeAccount(ctx, userID)
		return err
	})
	return balance, err
}

// GrantReferralBonus credits both sides of a referral with bonus coins and
// requests a notification for the inviter.
func (h *LedgerHandler) GrantReferralBonus(ctx context.Context, inviterID, inviteeID int64) error {
	if inviterID == inviteeID {
		return domain.NewValidationError("users cannot refer themselves")
	}
	if h.referralBonus <= 0 {
		return nil
	}

	refType := entities.ReferenceTypeUser
	return execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		ledger := h.ledger(uow)

		inviteeRef := inviteeID
		if _, err := ledger.Credit(ctx, interfaces.CreditParams{
			UserID:        inviterID,
			BonusCoins:    h.referralBonus,
			Type:          entities.TransactionTypeReferralBonus,
			ReferenceType: &refType,
			ReferenceID:   &inviteeRef,
			Description:   "referral bonus",
		}); err != nil {
			return fmt.Errorf("failed to credit inviter %d: %w", inviterID, err)
		}

		inviterRef := inviterID
		if _, err := ledger.Credit(ctx, interfaces.CreditParams{
			UserID:        inviteeID,
			BonusCoins:    h.referralBonus,
			Type:          entities.TransactionTypeReferralBonus,
			ReferenceType: &refType,
			ReferenceID:   &inviterRef,
			Description:   "referral bonus",
		}); err != nil {
			return fmt.Errorf("failed to credit invitee %d: %w", inviteeID, err)
		}

		return uow.EventBus().Publish(events.NotificationRequestEvent{
			Recipient:    inviterID,
			TemplateName: "referral_bonus_granted",
			Data: map[string]any{
				"invitee_id": inviteeID,
				"amount":     h.referralBonus,
			},
			Priority: events.NotificationPriorityNormal,
		})
	})
}

// GetBalance reads a user's balance
func (h *LedgerHandler) GetBalance(ctx context.Context, userID int64) (*entities.UserBalance, error) {
	var balance *entities.UserBalance
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		balance, err = h.ledger(uow).GetBalance(ctx, userID)
		return err
	})
	return balance, err
}

// HasSufficientFunds is a read-only affordability check
func (h *LedgerHandler) HasSufficientFunds(ctx context.Context, userID, amount int64) (bool, error) {
	var ok bool
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		ok, err = h.ledger(uow).HasSufficientFunds(ctx, userID, amount)
		return err
	})
	return ok, err
}

// GetUserTransactions lists a user's ledger rows, newest first
func (h *LedgerHandler) GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*entities.CoinTransaction, error) {
	var txs []*entities.CoinTransaction
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		txs, err = h.ledger(uow).GetUserTransactions(ctx, userID, limit)
		return err
	})
	return txs, err
}

// GetTransactionStats aggregates ledger activity for the admin surface
func (h *LedgerHandler) GetTransactionStats(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionStats, error) {
	var stats *entities.TransactionStats
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		stats, err = h.ledger(uow).GetTransactionStats(ctx, filter)
		return err
	})
	return stats, err
}

// GetTopEarners ranks users by summed positive ledger changes
func (h *LedgerHandler) GetTopEarners(ctx context.Context, limit int, includeBonus bool) ([]*entities.TopEarner, error) {
	var earners []*entities.TopEarner
	err := execute(ctx, h.uowFactory, func(uow UnitOfWork) error {
		var err error
		earners, err = h.ledger(uow).GetTopEarners(ctx, limit, includeBonus)
		return err
	})
	return earners, err
}
