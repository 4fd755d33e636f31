package repository

import (
	"context"
	"sync"
	"testing"

	"quizcoin/domain/events"
	"quizcoin/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingPublisher records delivered events so tests can observe what
// survives a commit or rollback.
type capturingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) delivered() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func TestUnitOfWork_CommitPersistsAndFlushes(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &capturingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.BalanceRepository().GetOrCreateForUpdate(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, uow.BalanceRepository().UpdateBalance(ctx, 1, 100, 0))

	require.NoError(t, uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID: 1, NewCoins: 100,
	}))

	// Buffered events stay local until the transaction commits.
	assert.Empty(t, publisher.delivered())

	require.NoError(t, uow.Commit())

	balance, err := NewBalanceRepository(testDB.DB).GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, int64(100), balance.Coins)

	delivered := publisher.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, events.EventTypeBalanceChange, delivered[0].Type())
}

func TestUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &capturingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.BalanceRepository().GetOrCreateForUpdate(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(events.BalanceChangeEvent{UserID: 2}))

	require.NoError(t, uow.Rollback())

	balance, err := NewBalanceRepository(testDB.DB).GetByUserID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, balance)
	assert.Empty(t, publisher.delivered())
}

func TestUnitOfWork_Lifecycle(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, &capturingPublisher{})

	t.Run("getters panic before Begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.BalanceRepository() })
		assert.Panics(t, func() { uow.EventBus() })
	})

	t.Run("double Begin is rejected", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()
		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("Rollback after Commit is a no-op", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})

	t.Run("Commit without Begin fails", func(t *testing.T) {
		uow := factory.Create()
		assert.Error(t, uow.Commit())
	})
}
