package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
)

type heldLock struct {
	owner     string
	expiresAt time.Time
}

// ActionLocks is an in-process ActionLockRepository
type ActionLocks struct {
	mu           sync.Mutex
	held         map[string]heldLock
	timeProvider coreport.TimeProvider
}

var _ persistence.ActionLockRepository = (*ActionLocks)(nil)

// NewActionLocks creates an empty lock table
func NewActionLocks(timeProvider coreport.TimeProvider) *ActionLocks {
	return &ActionLocks{
		held:         make(map[string]heldLock),
		timeProvider: timeProvider,
	}
}

// AcquireLock takes key unless an unexpired holder exists
func (l *ActionLocks) AcquireLock(ctx context.Context, key string, duration time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.NewStoreError("acquire action lock", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeProvider.Now()
	if lock, ok := l.held[key]; ok && lock.expiresAt.After(now) {
		return "", errs.ErrLockHeld
	}
	owner := uuid.NewString()
	l.held[key] = heldLock{owner: owner, expiresAt: now.Add(duration)}
	return owner, nil
}

// ReleaseLock drops key while owner still holds it
func (l *ActionLocks) ReleaseLock(ctx context.Context, key, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lock, ok := l.held[key]; ok && lock.owner == owner {
		delete(l.held, key)
	}
	return nil
}
