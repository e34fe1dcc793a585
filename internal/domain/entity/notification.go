package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// NotificationKind classifies user notifications
type NotificationKind string

// Notification kinds
const (
	NotificationCreditsAdded    NotificationKind = "credits_added"
	NotificationCreditsRefunded NotificationKind = "credits_refunded"
)

// Notification is a message shown to the user in the notification centre
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    string           `json:"userId"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewCreditsAddedNotification tells the user a payment was turned into credits
func NewCreditsAddedNotification(userID string, credits int64, provider PaymentProvider, entry *LedgerEntry, timeProvider coreport.TimeProvider) *Notification {
	data := map[string]any{
		"credits":  credits,
		"provider": string(provider),
	}
	if entry != nil {
		data["entryId"] = entry.ID.String()
		data["cashCredits"] = entry.CashAfter
		data["freeCredits"] = entry.FreeAfter
	}

	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      NotificationCreditsAdded,
		Title:     "Credits added",
		Message:   fmt.Sprintf("%d credits were added to your account.", credits),
		Data:      data,
		CreatedAt: timeProvider.Now(),
	}
}

// NewCreditsRefundedNotification tells the user a charge for a failed action was returned
func NewCreditsRefundedNotification(userID string, action ActionKind, entry *LedgerEntry, timeProvider coreport.TimeProvider) *Notification {
	return &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    NotificationCreditsRefunded,
		Title:   "Credits refunded",
		Message: fmt.Sprintf("%d credits were refunded because %s could not be completed.", entry.Delta, action),
		Data: map[string]any{
			"action":  string(action),
			"entryId": entry.ID.String(),
			"credits": entry.Delta,
		},
		CreatedAt: timeProvider.Now(),
	}
}
