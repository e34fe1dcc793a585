package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Do runs fn in a transaction, committing when it returns nil and rolling back otherwise.
	// Serialization failures and other transient errors rerun fn from the start.
	Do(ctx context.Context, fn func(txCtx context.Context) error) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetLedgerRepository returns a ledger repository bound to the current transaction
	GetLedgerRepository(ctx context.Context) LedgerRepository

	// GetNotificationRepository returns a notification repository bound to the current transaction
	GetNotificationRepository(ctx context.Context) NotificationRepository

	// GetReferralJobRepository returns a referral job repository bound to the current transaction
	GetReferralJobRepository(ctx context.Context) ReferralJobRepository
}
