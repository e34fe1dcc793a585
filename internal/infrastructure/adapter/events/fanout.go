package events

import (
	"context"
	"errors"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
)

// FanOut publishes every event to all of its publishers
type FanOut []messaging.ChangeFeedPublisher

var _ messaging.ChangeFeedPublisher = FanOut(nil)

// Publish calls each publisher and joins their errors
func (f FanOut) Publish(ctx context.Context, event entity.FeedEvent) error {
	var errList []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
