package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizcoin/domain"

	log "github.com/sirupsen/logrus"
)

const (
	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// execute runs fn inside a unit of work, committing on success. Serialization
// failures and deadlocks surface as domain.ErrConcurrencyConflict and are
// retried with a fresh transaction up to maxAttempts times; every other error
// rolls back and returns immediately.
func execute(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = executeOnce(ctx, factory, fn)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}

		log.WithFields(log.Fields{
			"attempt": attempt,
		}).Warn("Concurrency conflict, retrying transaction")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return err
}

func executeOnce(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
