package model

import (
	"time"
)

// CreditAccount represents the database model for a user's two credit pools
type CreditAccount struct {
	UserID      string    `gorm:"primaryKey;size:128"`
	CashCredits int64     `gorm:"not null"`
	FreeCredits int64     `gorm:"not null"`
	EntryCount  uint64    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for CreditAccount
func (CreditAccount) TableName() string {
	return "credit_accounts"
}
