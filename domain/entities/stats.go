package entities

import "time"

// TransactionFilter narrows ledger stats queries. Nil fields are ignored.
type TransactionFilter struct {
	UserID *int64
	Type   *TransactionType
	From   *time.Time
	To     *time.Time
}

// TransactionStats aggregates ledger activity for the admin surface.
type TransactionStats struct {
	TransactionCount int64
	CoinsIn          int64
	CoinsOut         int64
	BonusCoinsIn     int64
	BonusCoinsOut    int64
	CountByType      map[TransactionType]int64
}

// TopEarner is one row of the earnings leaderboard: the sum of a user's
// positive ledger changes.
type TopEarner struct {
	UserID      int64
	TotalEarned int64
}
