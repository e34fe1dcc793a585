package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification represents the database model for user notifications
type Notification struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID    string            `gorm:"not null;size:128;index"`
	Kind      string            `gorm:"not null;size:50"`
	Title     string            `gorm:"not null;size:200"`
	Message   string            `gorm:"type:text;not null"`
	Data      datatypes.JSONMap `gorm:"type:jsonb"`
	Read      bool              `gorm:"not null"`
	CreatedAt time.Time         `gorm:"not null"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
