package model

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry represents the database model for ledger entries.
// Rows are only ever inserted.
type LedgerEntry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            string    `gorm:"not null;size:128;index:idx_ledger_entries_user_created,priority:1"`
	Delta             int64     `gorm:"not null"`
	CashDelta         int64     `gorm:"not null"`
	FreeDelta         int64     `gorm:"not null"`
	Reason            string    `gorm:"not null;size:32"`
	ExternalPaymentID *string   `gorm:"size:200"`
	IdempotencyKey    *string   `gorm:"size:200"`
	Reference         string    `gorm:"size:255"`
	Note              string    `gorm:"type:text"`
	CashAfter         int64     `gorm:"not null"`
	FreeAfter         int64     `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null;index:idx_ledger_entries_user_created,priority:2"`
}

// TableName specifies the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
