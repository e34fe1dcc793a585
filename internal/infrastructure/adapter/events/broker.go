package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
)

// Default queue sizes
const (
	DefaultQueueSize        = 100
	DefaultSubscriberBuffer = 16
)

// DefaultWorkerIdleTimeout is how long a user's worker waits for events before it exits
const DefaultWorkerIdleTimeout = time.Minute

// ErrBrokerClosed is returned after Shutdown
var ErrBrokerClosed = errors.New("change feed broker is closed")

// Broker is an in-process change feed. Events for one user are delivered
// in publish order by a per-user worker; slow subscribers lose events
// instead of blocking the publisher.
type Broker struct {
	logger  coreport.Logger
	metrics coreport.Metrics

	queueSize        int
	subscriberBuffer int
	idleTimeout      time.Duration

	mu     sync.RWMutex
	closed bool

	// User-based event queues for ordered delivery
	userQueues     sync.Map // map[string]chan entity.FeedEvent
	queueWaitGroup sync.WaitGroup
	workers        atomic.Int64

	subMu       sync.RWMutex
	subscribers map[string]map[uint64]chan entity.FeedEvent
	nextID      uint64
}

var (
	_ messaging.ChangeFeedPublisher  = (*Broker)(nil)
	_ messaging.ChangeFeedSubscriber = (*Broker)(nil)
)

// BrokerOption customises a Broker
type BrokerOption func(*Broker)

// WithWorkerIdleTimeout sets how long an idle per-user worker lives
func WithWorkerIdleTimeout(d time.Duration) BrokerOption {
	return func(b *Broker) {
		if d > 0 {
			b.idleTimeout = d
		}
	}
}

// NewBroker creates a new in-process broker
func NewBroker(logger coreport.Logger, metrics coreport.Metrics, queueSize, subscriberBuffer int, opts ...BrokerOption) *Broker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if subscriberBuffer <= 0 {
		subscriberBuffer = DefaultSubscriberBuffer
	}

	b := &Broker{
		logger:           logger,
		metrics:          metrics,
		queueSize:        queueSize,
		subscriberBuffer: subscriberBuffer,
		idleTimeout:      DefaultWorkerIdleTimeout,
		subscribers:      make(map[string]map[uint64]chan entity.FeedEvent),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish enqueues the event on its user's queue without blocking
func (b *Broker) Publish(ctx context.Context, event entity.FeedEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBrokerClosed
	}

	// Nobody is listening for this user
	if b.SubscriberCount(event.UserID) == 0 {
		return nil
	}

	queueIface, loaded := b.userQueues.LoadOrStore(event.UserID, make(chan entity.FeedEvent, b.queueSize))
	queue := queueIface.(chan entity.FeedEvent)
	if !loaded {
		b.logger.Debug("Starting change feed worker for user", map[string]any{
			"user_id": event.UserID,
		})
		b.queueWaitGroup.Add(1)
		b.workers.Add(1)
		go b.deliverUserEvents(event.UserID, queue)
	}

	select {
	case queue <- event:
	default:
		b.metrics.IncFeedDropped(string(event.Type))
		b.logger.Warn("Change feed queue full, event dropped", map[string]any{
			"user_id": event.UserID,
			"type":    string(event.Type),
		})
	}
	return nil
}

// deliverUserEvents fans one user's events out to their subscribers in order.
// The worker exits once its queue has been idle for idleTimeout.
func (b *Broker) deliverUserEvents(userID string, queue chan entity.FeedEvent) {
	defer b.queueWaitGroup.Done()
	defer b.workers.Add(-1)

	idle := time.NewTimer(b.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case event, ok := <-queue:
			if !ok {
				b.logger.Debug("Change feed worker stopped", map[string]any{
					"user_id": userID,
				})
				return
			}
			b.fanOut(userID, event)
			idle.Reset(b.idleTimeout)
		case <-idle.C:
			if b.retireWorker(userID, queue) {
				b.logger.Debug("Idle change feed worker retired", map[string]any{
					"user_id": userID,
				})
				return
			}
			idle.Reset(b.idleTimeout)
		}
	}
}

// retireWorker removes an empty queue so the next Publish starts a fresh worker.
// Holding b.mu exclusively keeps publishers out while the queue is checked.
func (b *Broker) retireWorker(userID string, queue chan entity.FeedEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Shutdown owns the queue now and will close it
	if b.closed || len(queue) > 0 {
		return false
	}
	return b.userQueues.CompareAndDelete(userID, queue)
}

func (b *Broker) fanOut(userID string, event entity.FeedEvent) {
	b.subMu.RLock()
	defer b.subMu.RUnlock()

	for _, ch := range b.subscribers[userID] {
		select {
		case ch <- event:
		default:
			b.metrics.IncFeedDropped(string(event.Type))
		}
	}
}

// WorkerCount returns the number of running per-user workers
func (b *Broker) WorkerCount() int {
	return int(b.workers.Load())
}

// Subscribe registers a subscriber for userID until ctx ends or the returned cancel is called
func (b *Broker) Subscribe(ctx context.Context, userID string) (<-chan entity.FeedEvent, func(), error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, nil, ErrBrokerClosed
	}

	ch := make(chan entity.FeedEvent, b.subscriberBuffer)

	b.subMu.Lock()
	b.nextID++
	id := b.nextID
	if b.subscribers[userID] == nil {
		b.subscribers[userID] = make(map[uint64]chan entity.FeedEvent)
	}
	b.subscribers[userID][id] = ch
	b.subMu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			b.unsubscribe(userID, id)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel, nil
}

func (b *Broker) unsubscribe(userID string, id uint64) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	subs := b.subscribers[userID]
	ch, ok := subs[id]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(b.subscribers, userID)
	}
	close(ch)
}

// SubscriberCount returns the number of live subscriptions for userID
func (b *Broker) SubscriberCount(userID string) int {
	b.subMu.RLock()
	defer b.subMu.RUnlock()
	return len(b.subscribers[userID])
}

// Shutdown drains the queues, stops all workers and closes every subscription
func (b *Broker) Shutdown() {
	b.logger.Info("Shutting down change feed broker", nil)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.userQueues.Range(func(_, queueIface any) bool {
		close(queueIface.(chan entity.FeedEvent))
		return true
	})
	b.mu.Unlock()

	b.queueWaitGroup.Wait()

	b.subMu.Lock()
	for userID, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.subscribers, userID)
	}
	b.subMu.Unlock()

	b.logger.Info("Change feed broker shut down successfully", nil)
}
