package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
)

type contextKey string

const txKey contextKey = "memory_tx"

var errTxDone = errors.New("transaction has already been committed or rolled back")

// Store is an in-process ledger store. Transactions hold per-user row locks
// from GetForUpdate until commit or rollback, which gives the same
// serialisation as SELECT ... FOR UPDATE.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]entity.Account
	entries       []*entity.LedgerEntry
	byExternalID  map[string]int
	byKey         map[string]int
	notifications []*entity.Notification
	jobs          []*entity.ReferralJob

	rowLocks sync.Map // map[string]chan struct{}

	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.UnitOfWork = (*Store)(nil)

// NewStore creates an empty store
func NewStore(timeProvider coreport.TimeProvider, logger coreport.Logger) *Store {
	return &Store{
		accounts:     make(map[string]entity.Account),
		byExternalID: make(map[string]int),
		byKey:        make(map[string]int),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// memTx stages writes until commit
type memTx struct {
	mu            sync.Mutex
	locked        []string
	accounts      map[string]*entity.Account
	entries       []*entity.LedgerEntry
	notifications []*entity.Notification
	jobs          []*entity.ReferralJob
	done          bool
}

func txFromContext(ctx context.Context) *memTx {
	tx, _ := ctx.Value(txKey).(*memTx)
	return tx
}

// Begin starts a new transaction
func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx := &memTx{
		accounts: make(map[string]*entity.Account),
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit publishes the staged writes atomically and releases row locks
func (s *Store) Commit(ctx context.Context) error {
	tx := txFromContext(ctx)
	if tx == nil {
		return errs.ErrInternalServer
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return errTxDone
	}
	tx.done = true
	defer s.releaseRowLocks(tx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A key may have been committed by a transaction that never locked this user.
	staged := make(map[string]bool)
	for _, e := range tx.entries {
		if e.ExternalPaymentID != nil {
			if _, ok := s.byExternalID[*e.ExternalPaymentID]; ok || staged["x:"+*e.ExternalPaymentID] {
				return errs.NewDuplicatePaymentError(*e.ExternalPaymentID)
			}
			staged["x:"+*e.ExternalPaymentID] = true
		}
		if e.IdempotencyKey != nil {
			if _, ok := s.byKey[*e.IdempotencyKey]; ok || staged["k:"+*e.IdempotencyKey] {
				return errs.NewDuplicateRequestError(*e.IdempotencyKey)
			}
			staged["k:"+*e.IdempotencyKey] = true
		}
	}
	for _, j := range tx.jobs {
		for _, existing := range s.jobs {
			if existing.ChargeEntryID == j.ChargeEntryID {
				return errs.ErrConstraintViolation
			}
		}
	}

	for userID, account := range tx.accounts {
		s.accounts[userID] = *account
	}
	for _, e := range tx.entries {
		s.appendEntryLocked(e)
	}
	s.notifications = append(s.notifications, tx.notifications...)
	s.jobs = append(s.jobs, tx.jobs...)
	return nil
}

// Rollback discards the staged writes and releases row locks
func (s *Store) Rollback(ctx context.Context) error {
	tx := txFromContext(ctx)
	if tx == nil {
		return errs.ErrInternalServer
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return nil
	}
	tx.done = true
	s.releaseRowLocks(tx)
	return nil
}

// Do runs fn in a transaction
func (s *Store) Do(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = s.Rollback(txCtx)
		return err
	}
	return s.Commit(txCtx)
}

// GetAccountRepository returns an account repository bound to the context's transaction
func (s *Store) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &accountRepository{store: s, tx: txFromContext(ctx)}
}

// GetLedgerRepository returns a ledger repository bound to the context's transaction
func (s *Store) GetLedgerRepository(ctx context.Context) persistence.LedgerRepository {
	return &ledgerRepository{store: s, tx: txFromContext(ctx)}
}

// GetNotificationRepository returns a notification repository bound to the context's transaction
func (s *Store) GetNotificationRepository(ctx context.Context) persistence.NotificationRepository {
	return &notificationRepository{store: s, tx: txFromContext(ctx)}
}

// GetReferralJobRepository returns a referral job repository bound to the context's transaction
func (s *Store) GetReferralJobRepository(ctx context.Context) persistence.ReferralJobRepository {
	return &referralJobRepository{store: s, tx: txFromContext(ctx)}
}

// lockRow blocks until the user's row lock is free or ctx ends
func (s *Store) lockRow(ctx context.Context, tx *memTx, userID string) error {
	tx.mu.Lock()
	for _, held := range tx.locked {
		if held == userID {
			tx.mu.Unlock()
			return nil
		}
	}
	tx.mu.Unlock()

	lockIface, _ := s.rowLocks.LoadOrStore(userID, make(chan struct{}, 1))
	lock := lockIface.(chan struct{})

	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return errs.NewStoreError("lock account", ctx.Err())
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		<-lock
		return errTxDone
	}
	tx.locked = append(tx.locked, userID)
	return nil
}

func (s *Store) releaseRowLocks(tx *memTx) {
	for _, userID := range tx.locked {
		if lockIface, ok := s.rowLocks.Load(userID); ok {
			<-lockIface.(chan struct{})
		}
	}
	tx.locked = nil
}

func (s *Store) appendEntryLocked(e *entity.LedgerEntry) {
	s.entries = append(s.entries, e)
	idx := len(s.entries) - 1
	if e.ExternalPaymentID != nil {
		s.byExternalID[*e.ExternalPaymentID] = idx
	}
	if e.IdempotencyKey != nil {
		s.byKey[*e.IdempotencyKey] = idx
	}
}

// EntryCount returns the number of committed ledger entries
func (s *Store) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
