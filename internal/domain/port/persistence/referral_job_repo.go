package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// ReferralJobRepository stores referral job postings
type ReferralJobRepository interface {
	// Create inserts a job
	//
	// Possible errors:
	// - ErrConstraintViolation: If the charge entry is already linked to a job
	Create(ctx context.Context, job *entity.ReferralJob) error

	// GetByChargeEntryID finds the job paid for by a ledger entry
	//
	// Possible errors:
	// - ErrNotFound: If no job references the entry
	GetByChargeEntryID(ctx context.Context, entryID uuid.UUID) (*entity.ReferralJob, error)
}
