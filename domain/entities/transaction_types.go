package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Gameplay-related transactions
	TransactionTypeQuizReward  TransactionType = "quiz_reward"
	TransactionTypeJackpotWin  TransactionType = "jackpot_win"
	TransactionTypeAchievement TransactionType = "achievement"
	TransactionTypeDailyReward TransactionType = "daily_reward"

	// Acquisition transactions
	TransactionTypeVoucherRedemption TransactionType = "voucher_redemption"
	TransactionTypeReferralBonus     TransactionType = "referral_bonus"
	TransactionTypeSignupBonus       TransactionType = "signup_bonus"

	// Spend transactions
	TransactionTypeShopPurchase TransactionType = "shop_purchase"
	TransactionTypeWithdrawal   TransactionType = "withdrawal"

	// System transactions
	TransactionTypeAdminAdjustment TransactionType = "admin_adjustment"
)

// IsGameplayType returns true if the transaction type is earned through play
func (tt TransactionType) IsGameplayType() bool {
	return tt == TransactionTypeQuizReward ||
		tt == TransactionTypeJackpotWin ||
		tt == TransactionTypeAchievement ||
		tt == TransactionTypeDailyReward
}

// IsSpendType returns true if the transaction type removes currency
func (tt TransactionType) IsSpendType() bool {
	return tt == TransactionTypeShopPurchase ||
		tt == TransactionTypeWithdrawal
}

// IsSystemGenerated returns true if the transaction type is system-generated
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeAdminAdjustment ||
		tt == TransactionTypeSignupBonus
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

// Valid reports whether tt is one of the known transaction types.
func (tt TransactionType) Valid() bool {
	switch tt {
	case TransactionTypeQuizReward, TransactionTypeJackpotWin,
		TransactionTypeAchievement, TransactionTypeDailyReward,
		TransactionTypeVoucherRedemption, TransactionTypeReferralBonus,
		TransactionTypeSignupBonus, TransactionTypeShopPurchase,
		TransactionTypeWithdrawal, TransactionTypeAdminAdjustment:
		return true
	}
	return false
}
