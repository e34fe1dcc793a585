package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
)

// DefaultChannelPrefix namespaces per-user pub/sub channels
const DefaultChannelPrefix = "ledger:user:"

// RedisFeed is a change feed over Redis pub/sub, one channel per user.
// It lets subscribers attached to any API instance see changes made on another.
type RedisFeed struct {
	client  *redis.Client
	prefix  string
	buffer  int
	logger  coreport.Logger
	metrics coreport.Metrics
}

var (
	_ messaging.ChangeFeedPublisher  = (*RedisFeed)(nil)
	_ messaging.ChangeFeedSubscriber = (*RedisFeed)(nil)
)

// NewRedisFeed creates a feed on an existing client
func NewRedisFeed(client *redis.Client, prefix string, buffer int, logger coreport.Logger, metrics coreport.Metrics) *RedisFeed {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &RedisFeed{client: client, prefix: prefix, buffer: buffer, logger: logger, metrics: metrics}
}

func (f *RedisFeed) channel(userID string) string {
	return f.prefix + userID
}

// Publish sends the event on the user's channel
func (f *RedisFeed) Publish(ctx context.Context, event entity.FeedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode feed event: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish feed event: %w", err)
	}
	return nil
}

// Subscribe listens on the user's channel until ctx ends or cancel is called
func (f *RedisFeed) Subscribe(ctx context.Context, userID string) (<-chan entity.FeedEvent, func(), error) {
	pubsub := f.client.Subscribe(ctx, f.channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to feed: %w", err)
	}

	out := make(chan entity.FeedEvent, f.buffer)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() { close(done) })
	}

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event entity.FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					f.logger.Warn("Discarding malformed feed message", map[string]any{
						"channel": msg.Channel,
						"error":   err.Error(),
					})
					continue
				}
				select {
				case out <- event:
				default:
					f.metrics.IncFeedDropped(string(event.Type))
				}
			}
		}
	}()

	return out, cancel, nil
}
