//go:build integration

package events

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/metrics"
)

func TestRedisFeed_PublishSubscribe(t *testing.T) {
	addr := os.Getenv("LH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LH_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	feed := NewRedisFeed(client, "test:feed:", 4, logger.NewNoopLogger(), metrics.Noop{})

	ch, cancel, err := feed.Subscribe(context.Background(), "u1")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, feed.Publish(context.Background(), balanceEvent("u1", 9)))
	event := receive(t, ch)
	assert.Equal(t, int64(9), event.Balance.CashCredits)

	cancel()
	for range ch {
	}
}
