package model

import (
	"time"

	"github.com/google/uuid"
)

// ReferralJob represents the database model for referral job postings
type ReferralJob struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       string    `gorm:"not null;size:128;index"`
	Title         string    `gorm:"not null;size:200"`
	Description   string    `gorm:"type:text"`
	RewardCredits int64     `gorm:"not null"`
	Status        string    `gorm:"not null;size:20"`
	ChargeEntryID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"not null"`

	ChargeEntry LedgerEntry `gorm:"foreignKey:ChargeEntryID;references:ID"`
}

// TableName specifies the table name for ReferralJob
func (ReferralJob) TableName() string {
	return "referral_jobs"
}
