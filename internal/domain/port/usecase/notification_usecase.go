package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// NotificationUseCase serves the user's notification centre
type NotificationUseCase interface {
	List(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID string, id uuid.UUID) error
}
