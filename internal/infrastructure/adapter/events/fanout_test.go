package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	mockmessaging "github.com/localhy/credit-ledger/mocks/port/messaging"
)

func TestFanOut_Publish(t *testing.T) {
	event := balanceEvent("u1", 3)

	t.Run("All publishers called", func(t *testing.T) {
		first := mockmessaging.NewMockChangeFeedPublisher(t)
		second := mockmessaging.NewMockChangeFeedPublisher(t)
		first.EXPECT().Publish(context.Background(), event).Return(nil)
		second.EXPECT().Publish(context.Background(), event).Return(nil)

		assert.NoError(t, FanOut{first, second}.Publish(context.Background(), event))
	})

	t.Run("Failure does not stop later publishers", func(t *testing.T) {
		boom := errors.New("boom")
		first := mockmessaging.NewMockChangeFeedPublisher(t)
		second := mockmessaging.NewMockChangeFeedPublisher(t)
		first.EXPECT().Publish(context.Background(), event).Return(boom)
		second.EXPECT().Publish(context.Background(), event).Return(nil)

		err := FanOut{first, second}.Publish(context.Background(), event)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Empty fan-out", func(t *testing.T) {
		assert.NoError(t, FanOut(nil).Publish(context.Background(), entity.FeedEvent{}))
	})
}
