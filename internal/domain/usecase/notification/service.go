package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

// Page sizes for the notification centre
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Service reads and acknowledges user notifications
type Service struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

var _ usecase.NotificationUseCase = (*Service)(nil)

// NewService creates a new notification service
func NewService(uow persistence.UnitOfWork, logger coreport.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns the newest notifications of the user
func (s *Service) List(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*entity.Notification, error) {
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	notifications, err := s.uow.GetNotificationRepository(ctx).ListByUserID(ctx, userID, limit, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read
func (s *Service) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	if err := entity.ValidateUserID(userID); err != nil {
		return err
	}

	if err := s.uow.GetNotificationRepository(ctx).MarkRead(ctx, userID, id); err != nil {
		s.logger.Debug("Notification not marked read", map[string]any{
			"user_id":         userID,
			"notification_id": id.String(),
			"error":           err.Error(),
		})
		return err
	}
	return nil
}
