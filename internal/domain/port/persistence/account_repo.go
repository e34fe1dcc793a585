package persistence

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// AccountRepository defines persistence operations for credit balances
type AccountRepository interface {
	// GetByUserID reads the latest committed balance row without locking
	//
	// Possible errors:
	// - ErrAccountNotFound: If the user has never had a balance change
	// - ErrStoreUnavailable: If the store cannot be reached
	GetByUserID(ctx context.Context, userID string) (*entity.Account, error)

	// GetForUpdate returns the balance row locked until the surrounding transaction ends.
	// A zeroed row is provisioned first when the user has none.
	//
	// Possible errors:
	// - ErrStoreUnavailable: If the row cannot be locked in time or the store fails
	GetForUpdate(ctx context.Context, userID string) (*entity.Account, error)

	// Save writes both pools of an account previously loaded with GetForUpdate
	//
	// Possible errors:
	// - ErrConstraintViolation: If a pool would become negative
	// - ErrStoreUnavailable: If the store fails
	Save(ctx context.Context, account *entity.Account) error
}
