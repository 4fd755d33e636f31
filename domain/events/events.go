// Package events defines the domain events the economy emits. Publishing is
// best-effort and happens after the owning transaction's state changes have
// been applied; delivery (templating, queueing, retry) belongs to the
// notification service, not to this module.
package events

import (
	"quizcoin/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange       EventType = "balance_change"
	EventTypeJackpotWon          EventType = "jackpot_won"
	EventTypeNotificationRequest EventType = "notification_request"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldCoins        int64
	NewCoins        int64
	OldBonusCoins   int64
	NewBonusCoins   int64
	TransactionType entities.TransactionType
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// JackpotWonEvent represents a jackpot payout
type JackpotWonEvent struct {
	JackpotID  int64
	Tier       entities.JackpotTier
	UserID     int64
	Amount     int64
	QuestionID int64
	SessionID  string
}

func (e JackpotWonEvent) Type() EventType {
	return EventTypeJackpotWon
}

// NotificationPriority orders notification requests for the delivery service
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// NotificationRequestEvent asks the notification service to render and send
// a templated message. This module never renders or delivers anything itself.
type NotificationRequestEvent struct {
	Recipient    int64
	TemplateName string
	Data         map[string]any
	Priority     NotificationPriority
}

func (e NotificationRequestEvent) Type() EventType {
	return EventTypeNotificationRequest
}
