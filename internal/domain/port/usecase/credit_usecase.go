package usecase

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// CreditAccessor reads balances and ledger history
type CreditAccessor interface {
	// GetBalance returns the user's current balance; unknown users have a zero balance
	GetBalance(ctx context.Context, userID string) (entity.Balance, error)

	// History returns the newest ledger entries of the user
	History(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error)

	// Audit rebuilds the balance from the ledger and compares it to the stored one
	Audit(ctx context.Context, userID string) (*entity.AuditReport, error)
}

// CreditMutator is the only writer of balances
type CreditMutator interface {
	// ApplyDelta applies one mutation in its own transaction
	ApplyDelta(ctx context.Context, req entity.MutationRequest) (*entity.MutationResult, error)

	// ApplyInTx applies one mutation inside a transaction begun by the caller.
	// A duplicate key surfaces as an error so the caller can roll back its own work.
	ApplyInTx(txCtx context.Context, req entity.MutationRequest) (*entity.MutationResult, error)

	// Reverse refunds the exact split of the entry recorded under originalKey
	Reverse(ctx context.Context, userID, originalKey, refundKey string) (*entity.MutationResult, error)

	// Announce publishes the change-feed events for a result committed by the caller
	Announce(ctx context.Context, result *entity.MutationResult)
}

// CreditUseCase groups the accessor and mutator
type CreditUseCase interface {
	CreditAccessor
	CreditMutator
}
