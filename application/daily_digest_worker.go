package application

import (
	"context"
	"fmt"

	"quizcoin/domain/events"

	log "github.com/sirupsen/logrus"
)

// DailyDigestWorker publishes a daily top-earners digest as a notification
// request. Rendering and delivery belong to the notification service.
type DailyDigestWorker struct {
	uowFactory UnitOfWorkFactory
	limit      int
}

// NewDailyDigestWorker creates a new daily digest worker. limit caps how
// many earners the digest lists.
func NewDailyDigestWorker(uowFactory UnitOfWorkFactory, limit int) *DailyDigestWorker {
	return &DailyDigestWorker{
		uowFactory: uowFactory,
		limit:      limit,
	}
}

// Run builds and publishes one digest. Invoked on a schedule.
func (w *DailyDigestWorker) Run(ctx context.Context) error {
	return execute(ctx, w.uowFactory, func(uow UnitOfWork) error {
		earners, err := uow.CoinTransactionRepository().GetTopEarners(ctx, w.limit, true)
		if err != nil {
			return fmt.Errorf("failed to get top earners: %w", err)
		}
		if len(earners) == 0 {
			log.Debug("No earners yet, skipping daily digest")
			return nil
		}

		leaderboard := make([]map[string]any, 0, len(earners))
		for _, e := range earners {
			leaderboard = append(leaderboard, map[string]any{
				"user_id":      e.UserID,
				"total_earned": e.TotalEarned,
			})
		}

		// Recipient 0 addresses the shared announcements channel.
		if err := uow.EventBus().Publish(events.NotificationRequestEvent{
			Recipient:    0,
			TemplateName: "daily_top_earners",
			Data: map[string]any{
				"leaderboard": leaderboard,
			},
			Priority: events.NotificationPriorityLow,
		}); err != nil {
			return fmt.Errorf("failed to publish daily digest: %w", err)
		}

		log.WithField("earnerCount", len(earners)).Info("Published daily top earners digest")
		return nil
	})
}
