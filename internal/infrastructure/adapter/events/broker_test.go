package events

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/metrics"
	mockcore "github.com/localhy/credit-ledger/mocks/port/core"
)

func balanceEvent(userID string, cash int64) entity.FeedEvent {
	return entity.FeedEvent{
		Type:    entity.FeedBalanceChanged,
		UserID:  userID,
		Balance: &entity.Balance{CashCredits: cash},
		Delta:   cash,
	}
}

func receive(t *testing.T, ch <-chan entity.FeedEvent) entity.FeedEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return entity.FeedEvent{}
	}
}

func TestBroker_DeliversInOrder(t *testing.T) {
	broker := NewBroker(logger.NewNoopLogger(), metrics.Noop{}, 0, 0)
	defer broker.Shutdown()

	ch, cancel, err := broker.Subscribe(context.Background(), "u1")
	require.NoError(t, err)
	defer cancel()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, broker.Publish(context.Background(), balanceEvent("u1", i)))
	}

	for i := int64(1); i <= 5; i++ {
		event := receive(t, ch)
		assert.Equal(t, i, event.Balance.CashCredits)
	}
}

func TestBroker_OnlyTargetUserReceives(t *testing.T) {
	broker := NewBroker(logger.NewNoopLogger(), metrics.Noop{}, 0, 0)
	defer broker.Shutdown()

	mine, cancelMine, err := broker.Subscribe(context.Background(), "u1")
	require.NoError(t, err)
	defer cancelMine()
	other, cancelOther, err := broker.Subscribe(context.Background(), "u2")
	require.NoError(t, err)
	defer cancelOther()

	require.NoError(t, broker.Publish(context.Background(), balanceEvent("u1", 7)))
	assert.Equal(t, int64(7), receive(t, mine).Balance.CashCredits)

	select {
	case event := <-other:
		t.Fatalf("unexpected event for u2: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_SlowSubscriberDropsEvents(t *testing.T) {
	mockMetrics := mockcore.NewMockMetrics(t)
	mockMetrics.EXPECT().IncFeedDropped(string(entity.FeedBalanceChanged)).Return()

	broker := NewBroker(logger.NewNoopLogger(), mockMetrics, 10, 1)

	ch, cancel, err := broker.Subscribe(context.Background(), "u1")
	require.NoError(t, err)
	defer cancel()

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, broker.Publish(context.Background(), balanceEvent("u1", i)))
	}
	broker.Shutdown()

	// The first event fits in the buffer, the rest are dropped, and the
	// channel is closed after shutdown.
	var received []int64
	for event := range ch {
		received = append(received, event.Balance.CashCredits)
	}
	assert.Equal(t, []int64{1}, received)
	mockMetrics.AssertNumberOfCalls(t, "IncFeedDropped", 2)
}

func TestBroker_ContextCancelEndsSubscription(t *testing.T) {
	broker := NewBroker(logger.NewNoopLogger(), metrics.Noop{}, 0, 0)
	defer broker.Shutdown()

	ctx, cancelCtx := context.WithCancel(context.Background())
	ch, cancel, err := broker.Subscribe(ctx, "u1")
	require.NoError(t, err)
	defer cancel()
	assert.Equal(t, 1, broker.SubscriberCount("u1"))

	cancelCtx()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed")
	}
	assert.Equal(t, 0, broker.SubscriberCount("u1"))

	// Calling cancel again is harmless
	cancel()
}

func TestBroker_ClosedBroker(t *testing.T) {
	mockLogger := mockcore.NewMockLogger(t)
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Return()
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()

	broker := NewBroker(mockLogger, metrics.Noop{}, 0, 0)
	broker.Shutdown()
	broker.Shutdown()

	assert.ErrorIs(t, broker.Publish(context.Background(), balanceEvent("u1", 1)), ErrBrokerClosed)
	_, _, err := broker.Subscribe(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrBrokerClosed)
}

func TestBroker_NoSubscriberStartsNoWorker(t *testing.T) {
	broker := NewBroker(logger.NewNoopLogger(), metrics.Noop{}, 0, 0)
	defer broker.Shutdown()

	for i := 0; i < 50; i++ {
		require.NoError(t, broker.Publish(context.Background(), balanceEvent(fmt.Sprintf("u%d", i), 1)))
	}

	assert.Equal(t, 0, broker.WorkerCount())
}

func TestBroker_IdleUserWorkersExit(t *testing.T) {
	broker := NewBroker(logger.NewNoopLogger(), metrics.Noop{}, 0, 0, WithWorkerIdleTimeout(20*time.Millisecond))
	defer broker.Shutdown()

	const users = 20
	subs := make([]<-chan entity.FeedEvent, users)
	for i := range subs {
		ch, cancel, err := broker.Subscribe(context.Background(), fmt.Sprintf("u%d", i))
		require.NoError(t, err)
		defer cancel()
		subs[i] = ch
	}

	for i := range subs {
		require.NoError(t, broker.Publish(context.Background(), balanceEvent(fmt.Sprintf("u%d", i), int64(i+1))))
	}
	for i, ch := range subs {
		assert.Equal(t, int64(i+1), receive(t, ch).Balance.CashCredits)
	}

	assert.Eventually(t, func() bool { return broker.WorkerCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// A retired user gets a fresh worker on the next event
	require.NoError(t, broker.Publish(context.Background(), balanceEvent("u0", 99)))
	assert.Equal(t, int64(99), receive(t, subs[0]).Balance.CashCredits)
}
