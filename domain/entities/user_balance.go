package entities

import (
	"time"
)

// UserBalance holds a user's two currencies. Coins are withdrawable, bonus
// coins are not; both are always non-negative. Rows are created lazily on
// first mutation or explicitly at account creation, and only the ledger
// engine mutates them.
type UserBalance struct {
	UserID     int64     `db:"user_id"`
	Coins      int64     `db:"coins"`
	BonusCoins int64     `db:"bonus_coins"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Total returns the spendable total across both currencies.
func (b *UserBalance) Total() int64 {
	return b.Coins + b.BonusCoins
}

// HasSufficient checks if the user can cover an amount from both currencies
func (b *UserBalance) HasSufficient(amount int64) bool {
	return b.Total() >= amount
}

// SplitDebit applies the spend-order policy: bonus coins are exhausted
// before regular coins. The caller must have verified sufficiency; the
// returned parts always sum to amount.
func (b *UserBalance) SplitDebit(amount int64) (fromCoins, fromBonus int64) {
	fromBonus = b.BonusCoins
	if amount < fromBonus {
		fromBonus = amount
	}
	fromCoins = amount - fromBonus
	return fromCoins, fromBonus
}
