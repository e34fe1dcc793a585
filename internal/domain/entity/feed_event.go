package entity

import "time"

// FeedEventType classifies change-feed events
type FeedEventType string

// Change-feed event types
const (
	FeedBalanceChanged      FeedEventType = "balance_changed"
	FeedNotificationCreated FeedEventType = "notification_created"
)

// FeedEvent is pushed to subscribers after a committed change
type FeedEvent struct {
	Type         FeedEventType `json:"type"`
	UserID       string        `json:"userId"`
	Balance      *Balance      `json:"balance,omitempty"`
	EntryID      string        `json:"entryId,omitempty"`
	Reason       Reason        `json:"reason,omitempty"`
	Delta        int64         `json:"delta,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	OccurredAt   time.Time     `json:"occurredAt"`
}

// NewBalanceChangedEvent describes an applied ledger entry
func NewBalanceChangedEvent(entry *LedgerEntry) FeedEvent {
	balance := entry.BalanceAfter()
	return FeedEvent{
		Type:       FeedBalanceChanged,
		UserID:     entry.UserID,
		Balance:    &balance,
		EntryID:    entry.ID.String(),
		Reason:     entry.Reason,
		Delta:      entry.Delta,
		OccurredAt: entry.CreatedAt,
	}
}

// NewNotificationCreatedEvent describes a stored notification
func NewNotificationCreatedEvent(n *Notification) FeedEvent {
	return FeedEvent{
		Type:         FeedNotificationCreated,
		UserID:       n.UserID,
		Notification: n,
		OccurredAt:   n.CreatedAt,
	}
}
