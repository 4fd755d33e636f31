package infrastructure

import (
	"fmt"

	"quizcoin/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "economy.balance_changed"
	case events.EventTypeJackpotWon:
		return "economy.jackpot_won"
	case events.EventTypeNotificationRequest:
		return "notifications.requests"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "economy.balance_changed":
		return events.EventTypeBalanceChange
	case "economy.jackpot_won":
		return events.EventTypeJackpotWon
	case "notifications.requests":
		return events.EventTypeNotificationRequest
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"economy.balance_changed",
		"economy.jackpot_won",
		"notifications.requests",
	}
}
