package messaging

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// ChangeFeedPublisher pushes committed changes to interested parties
type ChangeFeedPublisher interface {
	// Publish delivers the event; it must not block on slow subscribers
	Publish(ctx context.Context, event entity.FeedEvent) error
}

// ChangeFeedSubscriber lets clients follow one user's changes
type ChangeFeedSubscriber interface {
	// Subscribe returns a channel of events for userID and a function that ends the subscription.
	// The channel is closed once the subscription ends or ctx is cancelled.
	Subscribe(ctx context.Context, userID string) (<-chan entity.FeedEvent, func(), error)
}
