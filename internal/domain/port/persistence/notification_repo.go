package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// NotificationRepository stores user notifications
type NotificationRepository interface {
	// Create inserts a notification
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUserID returns up to limit notifications, newest first
	ListByUserID(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*entity.Notification, error)

	// MarkRead flags a notification owned by userID as read
	//
	// Possible errors:
	// - ErrNotFound: If the notification does not exist or belongs to someone else
	MarkRead(ctx context.Context, userID string, id uuid.UUID) error
}
