package dto

import "github.com/localhy/credit-ledger/internal/domain/entity"

// NotificationListResponse lists a user's notifications
type NotificationListResponse struct {
	Notifications []*entity.Notification `json:"notifications"`
}
