package model

import (
	"time"
)

// ActionLock marks a paid action as being confirmed until it expires
type ActionLock struct {
	LockKey   string    `gorm:"primaryKey;size:255"`
	Owner     string    `gorm:"size:36;not null;default:''"`
	LockedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ActionLock
func (ActionLock) TableName() string {
	return "action_locks"
}
