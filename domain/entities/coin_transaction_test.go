package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTransaction() *CoinTransaction {
	return &CoinTransaction{
		UserID:           1,
		Type:             TransactionTypeQuizReward,
		CoinsChange:      10,
		CoinsBefore:      40,
		CoinsAfter:       50,
		BonusCoinsChange: 0,
		BonusCoinsBefore: 5,
		BonusCoinsAfter:  5,
	}
}

func TestCoinTransaction_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*CoinTransaction)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid credit",
			mutate: func(tx *CoinTransaction) {},
		},
		{
			name: "valid debit across both currencies",
			mutate: func(tx *CoinTransaction) {
				tx.CoinsChange = -20
				tx.CoinsBefore = 50
				tx.CoinsAfter = 30
				tx.BonusCoinsChange = -10
				tx.BonusCoinsBefore = 10
				tx.BonusCoinsAfter = 0
			},
		},
		{
			name: "zero change in both currencies",
			mutate: func(tx *CoinTransaction) {
				tx.CoinsChange = 0
				tx.CoinsAfter = tx.CoinsBefore
			},
			wantErr:     true,
			errContains: "at least one currency",
		},
		{
			name: "inconsistent coin snapshot",
			mutate: func(tx *CoinTransaction) {
				tx.CoinsAfter = 55
			},
			wantErr:     true,
			errContains: "inconsistent",
		},
		{
			name: "inconsistent bonus snapshot",
			mutate: func(tx *CoinTransaction) {
				tx.BonusCoinsAfter = 6
			},
			wantErr:     true,
			errContains: "inconsistent",
		},
		{
			name: "negative resulting balance",
			mutate: func(tx *CoinTransaction) {
				tx.CoinsChange = -50
				tx.CoinsBefore = 40
				tx.CoinsAfter = -10
			},
			wantErr:     true,
			errContains: "negative",
		},
		{
			name: "unknown transaction type",
			mutate: func(tx *CoinTransaction) {
				tx.Type = TransactionType("mystery")
			},
			wantErr:     true,
			errContains: "unknown transaction type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tx := validTransaction()
			tt.mutate(tx)

			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoinTransaction_TotalChange(t *testing.T) {
	t.Parallel()

	tx := &CoinTransaction{CoinsChange: -20, BonusCoinsChange: 5}
	assert.Equal(t, int64(-15), tx.TotalChange())
	assert.False(t, tx.IsPositiveChange())

	tx = &CoinTransaction{CoinsChange: 10, BonusCoinsChange: 5}
	assert.True(t, tx.IsPositiveChange())
}
