package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/model"
)

// NotificationRepository implements NotificationRepository interface using GORM
type NotificationRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(db *gorm.DB, logger coreport.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	m := model.Notification{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Kind:      string(notification.Kind),
		Title:     notification.Title,
		Message:   notification.Message,
		Data:      notification.Data,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
	if result := r.db.WithContext(ctx).Create(&m); result.Error != nil {
		r.logger.Error("Failed to create notification", map[string]any{
			"user_id": notification.UserID,
			"kind":    string(notification.Kind),
			"error":   result.Error.Error(),
		})
		return storeError("creating notification", result.Error)
	}
	return nil
}

// ListByUserID returns up to limit notifications, newest first
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*entity.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var rows []model.Notification
	if result := query.Order("created_at DESC").Limit(limit).Find(&rows); result.Error != nil {
		return nil, storeError("listing notifications", result.Error)
	}

	notifications := make([]*entity.Notification, 0, len(rows))
	for _, m := range rows {
		notifications = append(notifications, &entity.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Kind:      entity.NotificationKind(m.Kind),
			Title:     m.Title,
			Message:   m.Message,
			Data:      m.Data,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		})
	}
	return notifications, nil
}

// MarkRead flags a notification owned by userID as read
func (r *NotificationRepository) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return storeError("marking notification read", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
