package testutil

import (
	"time"

	"quizcoin/domain/entities"
)

// CreateTestBalance creates a balance with both currencies set
func CreateTestBalance(userID, coins, bonusCoins int64) *entities.UserBalance {
	now := time.Now()
	return &entities.UserBalance{
		UserID:     userID,
		Coins:      coins,
		BonusCoins: bonusCoins,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestTransaction creates a consistent credit ledger row
func CreateTestTransaction(userID, amount int64, txType entities.TransactionType) *entities.CoinTransaction {
	return &entities.CoinTransaction{
		UserID:           userID,
		Type:             txType,
		CoinsChange:      amount,
		BonusCoinsChange: 0,
		CoinsBefore:      0,
		CoinsAfter:       amount,
		BonusCoinsBefore: 0,
		BonusCoinsAfter:  0,
		Description:      "test transaction",
	}
}

// CreateTestJackpotPool creates a pool with sensible defaults
func CreateTestJackpotPool(tier entities.JackpotTier) *entities.JackpotPool {
	return &entities.JackpotPool{
		Tier:                tier,
		Name:                string(tier) + " jackpot",
		CurrentAmount:       100,
		MinimumAmount:       100,
		IncrementPerCorrect: 1,
		WinProbability:      0.01,
	}
}

// CreateTestShopItem creates an active catalog item
func CreateTestShopItem(name string, price int64) *entities.ShopItem {
	return &entities.ShopItem{
		Name:        name,
		Description: "test item",
		Price:       price,
		EffectType:  "extra_time",
		EffectValue: 10,
		IsActive:    true,
	}
}
