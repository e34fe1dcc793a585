package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/model"
)

// AccountRepository implements AccountRepository interface using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(m *model.CreditAccount) (*entity.Account, error) {
	account, err := entity.RestoreAccount(m.UserID, m.CashCredits, m.FreeCredits, m.CreatedAt, m.UpdatedAt, m.EntryCount)
	if err != nil {
		r.logger.Error("Stored account is invalid", map[string]any{
			"user_id": m.UserID,
			"error":   err.Error(),
		})
		return nil, storeError("restore account", err)
	}
	return account, nil
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}

	if r.errorClassifier.IsConstraintError(err) && !r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Error("Balance constraint rejected the write", map[string]any{
			"user_id":    userID,
			"constraint": r.errorClassifier.ConstraintName(err),
		})
		return errs.ErrConstraintViolation
	}

	if r.errorClassifier.IsLockError(err) {
		r.logger.Warn("Account row is contended", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	} else {
		r.logger.Error("Database error when "+operation, map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	return storeError(operation, err)
}

// GetByUserID reads the committed balance without locking
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.Account, error) {
	var m model.CreditAccount
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("reading account", result.Error, userID)
	}

	return r.modelToEntity(&m)
}

// GetForUpdate provisions a zeroed row if needed and locks it with SELECT ... FOR UPDATE
func (r *AccountRepository) GetForUpdate(ctx context.Context, userID string) (*entity.Account, error) {
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO credit_accounts (user_id, cash_credits, free_credits, entry_count, created_at, updated_at)
		VALUES (?, 0, 0, 0, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, now, now,
	).Error
	if err != nil {
		return nil, r.handleDatabaseError("provisioning account", err, userID)
	}

	var m model.CreditAccount
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Take(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, storeError("locking account", result.Error)
		}
		return nil, r.handleDatabaseError("locking account", result.Error, userID)
	}

	r.logger.Debug("Account locked", map[string]any{
		"user_id":      userID,
		"cash_credits": m.CashCredits,
		"free_credits": m.FreeCredits,
	})
	return r.modelToEntity(&m)
}

// Save writes both pools of a locked account
func (r *AccountRepository) Save(ctx context.Context, account *entity.Account) error {
	if account.CashCredits() < 0 || account.FreeCredits() < 0 {
		return errs.ErrConstraintViolation
	}

	result := r.db.WithContext(ctx).Model(&model.CreditAccount{}).
		Where("user_id = ?", account.UserID).
		Updates(map[string]interface{}{
			"cash_credits": account.CashCredits(),
			"free_credits": account.FreeCredits(),
			"entry_count":  account.EntryCount,
			"updated_at":   account.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("saving account", result.Error, account.UserID)
	}

	if result.RowsAffected == 0 {
		r.logger.Error("Account disappeared while locked", map[string]any{
			"user_id": account.UserID,
		})
		return storeError("saving account", errs.ErrAccountNotFound)
	}

	return nil
}
