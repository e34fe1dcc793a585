package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/model"
)

// LedgerRepository implements the append-only LedgerRepository interface using GORM
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a ledger entry to a database model
func (r *LedgerRepository) entityToModel(entry *entity.LedgerEntry) model.LedgerEntry {
	return model.LedgerEntry{
		ID:                entry.ID,
		UserID:            entry.UserID,
		Delta:             entry.Delta,
		CashDelta:         entry.CashDelta,
		FreeDelta:         entry.FreeDelta,
		Reason:            string(entry.Reason),
		ExternalPaymentID: entry.ExternalPaymentID,
		IdempotencyKey:    entry.IdempotencyKey,
		Reference:         entry.Reference,
		Note:              entry.Note,
		CashAfter:         entry.CashAfter,
		FreeAfter:         entry.FreeAfter,
		CreatedAt:         entry.CreatedAt,
	}
}

// modelToEntity converts a ledger model to an entity
func (r *LedgerRepository) modelToEntity(m *model.LedgerEntry) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:                m.ID,
		UserID:            m.UserID,
		Delta:             m.Delta,
		CashDelta:         m.CashDelta,
		FreeDelta:         m.FreeDelta,
		Reason:            entity.Reason(m.Reason),
		ExternalPaymentID: m.ExternalPaymentID,
		IdempotencyKey:    m.IdempotencyKey,
		Reference:         m.Reference,
		Note:              m.Note,
		CashAfter:         m.CashAfter,
		FreeAfter:         m.FreeAfter,
		CreatedAt:         m.CreatedAt,
	}
}

// Append inserts an entry. Unique violations on either dedup index
// come back as the matching duplicate error.
func (r *LedgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	m := r.entityToModel(entry)
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error == nil {
		return nil
	}

	if r.errorClassifier.IsDuplicateKeyError(result.Error) {
		return r.handleDuplicateEntryError(entry, result.Error)
	}

	r.logger.Error("Failed to append ledger entry", map[string]any{
		"entry_id": entry.ID.String(),
		"user_id":  entry.UserID,
		"error":    result.Error.Error(),
	})
	return storeError("appending ledger entry", result.Error)
}

// handleDuplicateEntryError maps a unique violation to the key that caused it
func (r *LedgerRepository) handleDuplicateEntryError(entry *entity.LedgerEntry, err error) error {
	constraint := r.errorClassifier.ConstraintName(err)
	r.logger.Info("Ledger entry already recorded", map[string]any{
		"user_id":    entry.UserID,
		"constraint": constraint,
	})

	switch {
	case constraint == ExternalPaymentIndex && entry.ExternalPaymentID != nil:
		return errs.NewDuplicatePaymentError(*entry.ExternalPaymentID)
	case constraint == IdempotencyKeyIndex && entry.IdempotencyKey != nil:
		return errs.NewDuplicateRequestError(*entry.IdempotencyKey)
	case entry.ExternalPaymentID != nil:
		return errs.NewDuplicatePaymentError(*entry.ExternalPaymentID)
	case entry.IdempotencyKey != nil:
		return errs.NewDuplicateRequestError(*entry.IdempotencyKey)
	default:
		return storeError("appending ledger entry", fmt.Errorf("%w: %s", errs.ErrConstraintViolation, constraint))
	}
}

// GetByExternalPaymentID finds the entry created for a provider transaction
func (r *LedgerRepository) GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*entity.LedgerEntry, error) {
	return r.findOne(ctx, "external_payment_id = ?", externalPaymentID)
}

// GetByIdempotencyKey finds the entry created for a caller supplied key
func (r *LedgerRepository) GetByIdempotencyKey(ctx context.Context, key string) (*entity.LedgerEntry, error) {
	return r.findOne(ctx, "idempotency_key = ?", key)
}

func (r *LedgerRepository) findOne(ctx context.Context, query string, arg string) (*entity.LedgerEntry, error) {
	var m model.LedgerEntry
	result := r.db.WithContext(ctx).Where(query, arg).Take(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEntryNotFound
		}
		r.logger.Error("Failed to read ledger entry", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, storeError("reading ledger entry", result.Error)
	}
	return r.modelToEntity(&m), nil
}

// ListByUserID returns up to limit entries, newest first
func (r *LedgerRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error) {
	var rows []model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		r.logger.Error("Failed to list ledger entries", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, storeError("listing ledger entries", result.Error)
	}

	entries := make([]*entity.LedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, r.modelToEntity(&rows[i]))
	}
	return entries, nil
}

// TotalsByUserID sums every entry of the user per pool
func (r *LedgerRepository) TotalsByUserID(ctx context.Context, userID string) (entity.LedgerTotals, error) {
	var row struct {
		Cash    int64
		Free    int64
		Entries int64
	}
	result := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("COALESCE(SUM(cash_delta), 0) AS cash, COALESCE(SUM(free_delta), 0) AS free, COUNT(*) AS entries").
		Where("user_id = ?", userID).
		Scan(&row)
	if result.Error != nil {
		r.logger.Error("Failed to total ledger entries", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return entity.LedgerTotals{}, storeError("totalling ledger entries", result.Error)
	}

	return entity.LedgerTotals{Cash: row.Cash, Free: row.Free, Entries: row.Entries}, nil
}
