package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
)

// IdempotencyHandler finds ledger entries already recorded for a mutation's key
type IdempotencyHandler struct {
	ledgerRepo persistence.LedgerRepository
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(ledgerRepo persistence.LedgerRepository) *IdempotencyHandler {
	return &IdempotencyHandler{
		ledgerRepo: ledgerRepo,
	}
}

// CheckIdempotency returns the entry recorded for the request's key, if any.
// Requests without a key are never duplicates.
func (h *IdempotencyHandler) CheckIdempotency(
	ctx context.Context,
	req entity.MutationRequest,
) (*entity.LedgerEntry, bool, error) {
	var (
		entry *entity.LedgerEntry
		err   error
	)

	switch {
	case req.ExternalPaymentID != "":
		entry, err = h.ledgerRepo.GetByExternalPaymentID(ctx, req.ExternalPaymentID)
	case req.IdempotencyKey != "":
		entry, err = h.ledgerRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
	default:
		return nil, false, nil
	}

	if err != nil {
		if errors.Is(err, errs.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	return entry, true, nil
}
