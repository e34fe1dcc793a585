package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// GetBalance returns the latest committed balance. Users without a balance row
// have never been credited and read as zero.
func (s *Service) GetBalance(ctx context.Context, userID string) (entity.Balance, error) {
	if err := entity.ValidateUserID(userID); err != nil {
		return entity.Balance{}, err
	}

	account, err := s.uow.GetAccountRepository(ctx).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return entity.Balance{}, nil
		}
		s.logger.Error("Failed to read balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return entity.Balance{}, fmt.Errorf("failed to read balance: %w", err)
	}

	return account.Balance(), nil
}

// History returns the user's most recent ledger entries, newest first
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error) {
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	entries, err := s.uow.GetLedgerRepository(ctx).ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// Audit recomputes the balance from the ledger and compares it to the stored row.
// Both reads share one transaction so a concurrent mutation cannot split them.
func (s *Service) Audit(ctx context.Context, userID string) (*entity.AuditReport, error) {
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}

	var report *entity.AuditReport
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		var stored entity.Balance
		account, err := s.uow.GetAccountRepository(txCtx).GetByUserID(txCtx, userID)
		switch {
		case err == nil:
			stored = account.Balance()
		case errors.Is(err, errs.ErrAccountNotFound):
		default:
			return err
		}

		totals, err := s.uow.GetLedgerRepository(txCtx).TotalsByUserID(txCtx, userID)
		if err != nil {
			return err
		}

		report = entity.NewAuditReport(userID, stored, totals)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to audit ledger: %w", err)
	}

	if !report.Consistent {
		s.logger.Error("Stored balance does not match ledger", map[string]any{
			"user_id":     userID,
			"stored_cash": report.Stored.CashCredits,
			"stored_free": report.Stored.FreeCredits,
			"ledger_cash": report.Ledger.CashCredits,
			"ledger_free": report.Ledger.FreeCredits,
			"entries":     report.Entries,
		})
	}
	return report, nil
}
