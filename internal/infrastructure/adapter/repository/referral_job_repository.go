package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/model"
)

// ReferralJobRepository implements ReferralJobRepository interface using GORM
type ReferralJobRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewReferralJobRepository creates a new ReferralJobRepository instance
func NewReferralJobRepository(db *gorm.DB, logger coreport.Logger) *ReferralJobRepository {
	return &ReferralJobRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create inserts a job linked to the ledger entry that paid for it
func (r *ReferralJobRepository) Create(ctx context.Context, job *entity.ReferralJob) error {
	m := model.ReferralJob{
		ID:            job.ID,
		OwnerID:       job.OwnerID,
		Title:         job.Title,
		Description:   job.Description,
		RewardCredits: job.RewardCredits,
		Status:        string(job.Status),
		ChargeEntryID: job.ChargeEntryID,
		CreatedAt:     job.CreatedAt,
	}

	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m)
	if result.Error == nil {
		return nil
	}

	if r.errorClassifier.IsConstraintError(result.Error) {
		r.logger.Warn("Referral job rejected by constraint", map[string]any{
			"owner_id":        job.OwnerID,
			"charge_entry_id": job.ChargeEntryID.String(),
			"constraint":      r.errorClassifier.ConstraintName(result.Error),
		})
		return errs.ErrConstraintViolation
	}
	return storeError("creating referral job", result.Error)
}

// GetByChargeEntryID finds the job paid for by a ledger entry
func (r *ReferralJobRepository) GetByChargeEntryID(ctx context.Context, entryID uuid.UUID) (*entity.ReferralJob, error) {
	var m model.ReferralJob
	result := r.db.WithContext(ctx).Where("charge_entry_id = ?", entryID).Take(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storeError("reading referral job", result.Error)
	}

	return &entity.ReferralJob{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Title:         m.Title,
		Description:   m.Description,
		RewardCredits: m.RewardCredits,
		Status:        entity.ReferralJobStatus(m.Status),
		ChargeEntryID: m.ChargeEntryID,
		CreatedAt:     m.CreatedAt,
	}, nil
}
