// Package jobs runs the scheduled background tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"quizcoin/application"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs the recurring jobs. All schedules are evaluated in UTC.
type Scheduler struct {
	cron         *cron.Cron
	digestWorker *application.DailyDigestWorker
}

// NewScheduler creates a scheduler for the daily digest.
func NewScheduler(digestWorker *application.DailyDigestWorker) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(time.UTC)),
		digestWorker: digestWorker,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context, digestSpec string) error {
	_, err := s.cron.AddFunc(digestSpec, func() {
		log.Info("[CRON] Publishing daily top earners digest")
		if err := s.digestWorker.Run(ctx); err != nil {
			log.WithError(err).Error("[CRON] Daily digest failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", digestSpec, err)
	}

	s.cron.Start()
	log.WithField("digestSpec", digestSpec).Info("Job scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Job scheduler stopped")
}
