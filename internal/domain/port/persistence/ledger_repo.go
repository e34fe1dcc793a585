package persistence

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// LedgerRepository is the append-only store of ledger entries.
// It deliberately has no update or delete operation.
type LedgerRepository interface {
	// Append inserts a new entry
	//
	// Possible errors:
	// - ErrDuplicatePayment: If the external payment ID was already recorded
	// - ErrDuplicateRequest: If the idempotency key was already recorded
	// - ErrStoreUnavailable: If the store fails
	Append(ctx context.Context, entry *entity.LedgerEntry) error

	// GetByExternalPaymentID finds the entry created for a provider transaction
	//
	// Possible errors:
	// - ErrEntryNotFound: If no entry carries the ID
	GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*entity.LedgerEntry, error)

	// GetByIdempotencyKey finds the entry created for a caller supplied key
	//
	// Possible errors:
	// - ErrEntryNotFound: If no entry carries the key
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.LedgerEntry, error)

	// ListByUserID returns up to limit entries, newest first
	ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error)

	// TotalsByUserID sums every entry of the user per pool
	TotalsByUserID(ctx context.Context, userID string) (entity.LedgerTotals, error)
}
