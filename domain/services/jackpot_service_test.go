package services

import (
	"context"
	"testing"

	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/events"
	"quizcoin/domain/interfaces"
	"quizcoin/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type jackpotMocks struct {
	poolRepo    *testhelpers.MockJackpotPoolRepository
	historyRepo *testhelpers.MockJackpotHistoryRepository
	winnerRepo  *testhelpers.MockJackpotWinnerRepository
	ledger      *testhelpers.MockLedgerService
	publisher   *testhelpers.MockEventPublisher
}

// newJackpotService builds the service with an injected draw so the
// probabilistic path is deterministic under test.
func newJackpotService(t *testing.T, rng func() float64) (*jackpotService, *jackpotMocks) {
	t.Helper()
	m := &jackpotMocks{
		poolRepo:    new(testhelpers.MockJackpotPoolRepository),
		historyRepo: new(testhelpers.MockJackpotHistoryRepository),
		winnerRepo:  new(testhelpers.MockJackpotWinnerRepository),
		ledger:      new(testhelpers.MockLedgerService),
		publisher:   new(testhelpers.MockEventPublisher),
	}
	svc := &jackpotService{
		poolRepo:       m.poolRepo,
		historyRepo:    m.historyRepo,
		winnerRepo:     m.winnerRepo,
		ledger:         m.ledger,
		eventPublisher: m.publisher,
		rng:            rng,
	}
	return svc, m
}

func bronzePool() *entities.JackpotPool {
	return &entities.JackpotPool{
		ID:                  1,
		Tier:                entities.JackpotTierBronze,
		Name:                "Bronze Jackpot",
		CurrentAmount:       100,
		MinimumAmount:       100,
		IncrementPerCorrect: 5,
		WinProbability:      0.01,
	}
}

func TestJackpotService_OnCorrectAnswer_NoWin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Draw above the win probability: increment only.
	svc, m := newJackpotService(t, func() float64 { return 0.5 })

	pool := bronzePool()
	m.poolRepo.On("GetAllForUpdate", mock.Anything).Return([]*entities.JackpotPool{pool}, nil)
	m.historyRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *entities.JackpotHistoryEntry) bool {
		return e.ChangeType == entities.JackpotChangeIncrement &&
			e.OldAmount == 100 && e.NewAmount == 105 && e.UserID == 42
	})).Return(nil)
	m.poolRepo.On("Update", mock.Anything, pool).Return(nil)

	outcomes, err := svc.OnCorrectAnswer(ctx, 42, 7, "session-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.False(t, outcomes[0].Won)
	assert.Equal(t, int64(105), outcomes[0].NewAmount)
	assert.Equal(t, int64(5), outcomes[0].IncrementedBy)

	m.winnerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.ledger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	m.poolRepo.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
}

func TestJackpotService_OnCorrectAnswer_Win(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Draw at the win probability wins: the comparison is inclusive.
	svc, m := newJackpotService(t, func() float64 { return 0.01 })

	pool := bronzePool()
	pool.CurrentAmount = 495

	m.poolRepo.On("GetAllForUpdate", mock.Anything).Return([]*entities.JackpotPool{pool}, nil)
	m.historyRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *entities.JackpotHistoryEntry) bool {
		return e.ChangeType == entities.JackpotChangeIncrement && e.OldAmount == 495 && e.NewAmount == 500
	})).Return(nil)
	m.winnerRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.JackpotWinner) bool {
		return w.JackpotID == 1 && w.UserID == 42 && w.AmountWon == 500 &&
			w.QuestionID == 7 && w.SessionID == "session-1"
	})).Return(nil)
	m.ledger.On("Credit", mock.Anything, mock.MatchedBy(func(p interfaces.CreditParams) bool {
		return p.UserID == 42 && p.Coins == 500 && p.Type == entities.TransactionTypeJackpotWin
	})).Return(&interfaces.CreditResult{CoinsAdded: 500}, nil)
	m.historyRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *entities.JackpotHistoryEntry) bool {
		return e.ChangeType == entities.JackpotChangeWin && e.OldAmount == 500 && e.NewAmount == 100
	})).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.JackpotWonEvent")).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.NotificationRequestEvent")).Return(nil)
	m.poolRepo.On("Update", mock.Anything, pool).Return(nil)

	outcomes, err := svc.OnCorrectAnswer(ctx, 42, 7, "session-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	// The winning answer's own increment is part of the payout.
	assert.True(t, outcomes[0].Won)
	assert.Equal(t, int64(500), outcomes[0].WinAmount)
	assert.Equal(t, int64(100), outcomes[0].NewAmount)
	assert.Equal(t, int64(100), pool.CurrentAmount)
	assert.Equal(t, int64(1), pool.TimesWon)

	m.winnerRepo.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestJackpotService_OnCorrectAnswer_IndependentDraws(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// First draw wins the bronze pool, second misses the silver one.
	draws := []float64{0.005, 0.9}
	svc, m := newJackpotService(t, func() float64 {
		d := draws[0]
		draws = draws[1:]
		return d
	})

	bronze := bronzePool()
	silver := &entities.JackpotPool{
		ID:                  2,
		Tier:                entities.JackpotTierSilver,
		Name:                "Silver Jackpot",
		CurrentAmount:       600,
		MinimumAmount:       500,
		IncrementPerCorrect: 2,
		WinProbability:      0.002,
	}

	m.poolRepo.On("GetAllForUpdate", mock.Anything).Return([]*entities.JackpotPool{bronze, silver}, nil)
	m.historyRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
	m.winnerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("Credit", mock.Anything, mock.Anything).Return(&interfaces.CreditResult{}, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)
	m.poolRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	outcomes, err := svc.OnCorrectAnswer(ctx, 42, 7, "session-2")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.True(t, outcomes[0].Won)
	assert.Equal(t, int64(105), outcomes[0].WinAmount)
	assert.False(t, outcomes[1].Won)
	assert.Equal(t, int64(602), outcomes[1].NewAmount)

	m.winnerRepo.AssertNumberOfCalls(t, "Create", 1)
	m.ledger.AssertNumberOfCalls(t, "Credit", 1)
}

func TestJackpotService_OnCorrectAnswer_RejectsInvalidUser(t *testing.T) {
	t.Parallel()

	svc, _ := newJackpotService(t, func() float64 { return 1 })

	_, err := svc.OnCorrectAnswer(context.Background(), 0, 7, "session-3")
	assert.True(t, domain.IsValidation(err))
}

func TestJackpotService_WinEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, m := newJackpotService(t, func() float64 { return 0 })

	pool := bronzePool()
	m.poolRepo.On("GetAllForUpdate", mock.Anything).Return([]*entities.JackpotPool{pool}, nil)
	m.historyRepo.On("Record", mock.Anything, mock.Anything).Return(nil)
	m.winnerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.ledger.On("Credit", mock.Anything, mock.Anything).Return(&interfaces.CreditResult{}, nil)
	m.poolRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	m.publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		won, ok := e.(events.JackpotWonEvent)
		return ok && won.UserID == 42 && won.Amount == 105 && won.Tier == entities.JackpotTierBronze
	})).Return(nil)
	m.publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		n, ok := e.(events.NotificationRequestEvent)
		return ok && n.Recipient == 42 && n.TemplateName == "jackpot_won" &&
			n.Priority == events.NotificationPriorityHigh
	})).Return(nil)

	_, err := svc.OnCorrectAnswer(ctx, 42, 7, "session-4")
	require.NoError(t, err)
	m.publisher.AssertExpectations(t)
}

func TestJackpotService_EnsureDefaultPools(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates only missing tiers", func(t *testing.T) {
		t.Parallel()
		svc, m := newJackpotService(t, func() float64 { return 1 })

		existing := bronzePool()
		silverDefault := &entities.JackpotPool{
			Tier:                entities.JackpotTierSilver,
			Name:                "Silver Jackpot",
			CurrentAmount:       500,
			MinimumAmount:       500,
			IncrementPerCorrect: 2,
			WinProbability:      0.002,
		}

		m.poolRepo.On("GetByTier", mock.Anything, entities.JackpotTierBronze).Return(existing, nil)
		m.poolRepo.On("GetByTier", mock.Anything, entities.JackpotTierSilver).Return(nil, nil)
		m.poolRepo.On("Create", mock.Anything, silverDefault).Return(nil)

		err := svc.EnsureDefaultPools(ctx, []*entities.JackpotPool{bronzePool(), silverDefault})
		require.NoError(t, err)

		m.poolRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("rejects invalid defaults", func(t *testing.T) {
		t.Parallel()
		svc, _ := newJackpotService(t, func() float64 { return 1 })

		bad := bronzePool()
		bad.WinProbability = 1.5

		err := svc.EnsureDefaultPools(ctx, []*entities.JackpotPool{bad})
		assert.Error(t, err)
	})
}
