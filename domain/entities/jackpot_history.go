package entities

import "time"

// JackpotChangeType distinguishes pot growth from payouts in the history log
type JackpotChangeType string

const (
	JackpotChangeIncrement JackpotChangeType = "increment"
	JackpotChangeWin       JackpotChangeType = "win"
)

// JackpotHistoryEntry is one append-only record of a pool amount change.
type JackpotHistoryEntry struct {
	ID         int64             `db:"id"`
	JackpotID  int64             `db:"jackpot_id"`
	OldAmount  int64             `db:"old_amount"`
	NewAmount  int64             `db:"new_amount"`
	ChangeType JackpotChangeType `db:"change_type"`
	UserID     int64             `db:"user_id"`
	CreatedAt  time.Time         `db:"created_at"`
}

// JackpotWinner is one append-only record of a payout, tied to the gameplay
// event that triggered it.
type JackpotWinner struct {
	ID         int64     `db:"id"`
	JackpotID  int64     `db:"jackpot_id"`
	UserID     int64     `db:"user_id"`
	AmountWon  int64     `db:"amount_won"`
	QuestionID int64     `db:"question_id"`
	SessionID  string    `db:"session_id"`
	CreatedAt  time.Time `db:"created_at"`
}
