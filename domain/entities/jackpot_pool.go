package entities

import (
	"errors"
	"time"
)

// JackpotTier identifies one of the fixed prize pool tiers
type JackpotTier string

const (
	JackpotTierBronze  JackpotTier = "bronze"
	JackpotTierSilver  JackpotTier = "silver"
	JackpotTierGold    JackpotTier = "gold"
	JackpotTierDiamond JackpotTier = "diamond"
)

// Valid reports whether jt is one of the fixed tiers.
func (jt JackpotTier) Valid() bool {
	switch jt {
	case JackpotTierBronze, JackpotTierSilver, JackpotTierGold, JackpotTierDiamond:
		return true
	}
	return false
}

// JackpotPool is a shared prize pot. Each qualifying gameplay event grows it
// by IncrementPerCorrect and independently draws against WinProbability; on
// a win the pot is paid out and reset to MinimumAmount. Pools are created
// once at setup and never deleted.
type JackpotPool struct {
	ID                  int64       `db:"id"`
	Tier                JackpotTier `db:"tier"`
	Name                string      `db:"name"`
	CurrentAmount       int64       `db:"current_amount"`
	MinimumAmount       int64       `db:"minimum_amount"`
	IncrementPerCorrect int64       `db:"increment_per_correct"`
	WinProbability      float64     `db:"win_probability"`
	LastWonBy           *int64      `db:"last_won_by"`
	LastWonAt           *time.Time  `db:"last_won_at"`
	TotalWon            int64       `db:"total_won"`
	TimesWon            int64       `db:"times_won"`
	CreatedAt           time.Time   `db:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"`
}

// ApplyIncrement grows the pot for one correct answer and returns the old
// and new amounts for the history entry.
func (p *JackpotPool) ApplyIncrement() (oldAmount, newAmount int64) {
	oldAmount = p.CurrentAmount
	p.CurrentAmount += p.IncrementPerCorrect
	return oldAmount, p.CurrentAmount
}

// ApplyWin pays out the current pot to userID: resets the pot to its
// minimum and updates the aggregate stats. Returns the amount won.
func (p *JackpotPool) ApplyWin(userID int64, wonAt time.Time) int64 {
	won := p.CurrentAmount
	p.CurrentAmount = p.MinimumAmount
	p.TotalWon += won
	p.TimesWon++
	p.LastWonBy = &userID
	p.LastWonAt = &wonAt
	return won
}

// Validate checks pool configuration invariants.
func (p *JackpotPool) Validate() error {
	if !p.Tier.Valid() {
		return errors.New("unknown jackpot tier")
	}
	if p.MinimumAmount < 0 {
		return errors.New("minimum amount cannot be negative")
	}
	if p.CurrentAmount < p.MinimumAmount {
		return errors.New("current amount cannot be below minimum")
	}
	if p.IncrementPerCorrect <= 0 {
		return errors.New("increment per correct answer must be positive")
	}
	if p.WinProbability < 0 || p.WinProbability >= 1 {
		return errors.New("win probability must be in [0,1)")
	}
	return nil
}
