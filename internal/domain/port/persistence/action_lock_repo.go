package persistence

import (
	"context"
	"time"
)

// ActionLockRepository guards paid actions against concurrent re-submission
type ActionLockRepository interface {
	// AcquireLock takes the key for the given duration and returns the owner
	// token that must be presented to release it
	//
	// Possible errors:
	// - ErrLockHeld: If another request holds an unexpired lock on the key
	// - ErrStoreUnavailable: If the lock backend fails
	AcquireLock(ctx context.Context, key string, duration time.Duration) (string, error)

	// ReleaseLock drops the key if owner still holds it. Releasing a missing
	// key, or one that expired and was taken by someone else, is not an error.
	ReleaseLock(ctx context.Context, key, owner string) error
}
