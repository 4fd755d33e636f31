package entities

import (
	"errors"
	"time"
)

// ReferenceType represents what type of entity a transaction's reference_id
// points to
type ReferenceType string

const (
	ReferenceTypeJackpotPool  ReferenceType = "jackpot_pool"
	ReferenceTypeShopItem     ReferenceType = "shop_item"
	ReferenceTypeQuizQuestion ReferenceType = "quiz_question"
	ReferenceTypeUser         ReferenceType = "user"
	ReferenceTypeVoucher      ReferenceType = "voucher"
)

// CoinTransaction is one immutable ledger row. Every balance mutation
// produces exactly one, carrying before/after snapshots of both currencies.
// Rows are never updated or deleted; they are the system of record for
// balance history.
type CoinTransaction struct {
	ID               int64           `db:"id"`
	UserID           int64           `db:"user_id"`
	Type             TransactionType `db:"transaction_type"`
	CoinsChange      int64           `db:"coins_change"`
	BonusCoinsChange int64           `db:"bonus_coins_change"`
	CoinsBefore      int64           `db:"coins_before"`
	CoinsAfter       int64           `db:"coins_after"`
	BonusCoinsBefore int64           `db:"bonus_coins_before"`
	BonusCoinsAfter  int64           `db:"bonus_coins_after"`
	ReferenceType    *ReferenceType  `db:"reference_type"`
	ReferenceID      *int64          `db:"reference_id"`
	Description      string          `db:"description"`
	Metadata         map[string]any  `db:"metadata"`
	CreatedAt        time.Time       `db:"created_at"`
}

// TotalChange returns the combined signed change across both currencies.
func (t *CoinTransaction) TotalChange() int64 {
	return t.CoinsChange + t.BonusCoinsChange
}

// IsPositiveChange returns true if the transaction added currency overall
func (t *CoinTransaction) IsPositiveChange() bool {
	return t.TotalChange() > 0
}

// Validate checks the snapshot arithmetic before the row is persisted.
func (t *CoinTransaction) Validate() error {
	if t.CoinsChange == 0 && t.BonusCoinsChange == 0 {
		return errors.New("transaction must change at least one currency")
	}
	if t.CoinsAfter != t.CoinsBefore+t.CoinsChange {
		return errors.New("coin snapshot is inconsistent with change amount")
	}
	if t.BonusCoinsAfter != t.BonusCoinsBefore+t.BonusCoinsChange {
		return errors.New("bonus coin snapshot is inconsistent with change amount")
	}
	if t.CoinsAfter < 0 || t.BonusCoinsAfter < 0 {
		return errors.New("transaction would drive a balance negative")
	}
	if !t.Type.Valid() {
		return errors.New("unknown transaction type")
	}
	return nil
}
