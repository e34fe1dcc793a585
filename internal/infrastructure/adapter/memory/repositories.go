package memory

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

type accountRepository struct {
	store *Store
	tx    *memTx
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID string) (*entity.Account, error) {
	if r.tx != nil {
		r.tx.mu.Lock()
		staged, ok := r.tx.accounts[userID]
		r.tx.mu.Unlock()
		if ok {
			copied := *staged
			return &copied, nil
		}
	}

	r.store.mu.RLock()
	row, ok := r.store.accounts[userID]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return &row, nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, userID string) (*entity.Account, error) {
	if r.tx == nil {
		return nil, errs.NewStoreError("lock account", errs.ErrInternalServer)
	}
	if err := r.store.lockRow(ctx, r.tx, userID); err != nil {
		return nil, err
	}

	account, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}
	return entity.NewAccount(userID, r.store.timeProvider)
}

func (r *accountRepository) Save(ctx context.Context, account *entity.Account) error {
	if account.CashCredits() < 0 || account.FreeCredits() < 0 {
		return errs.ErrConstraintViolation
	}

	copied := *account
	if r.tx == nil {
		r.store.mu.Lock()
		r.store.accounts[account.UserID] = copied
		r.store.mu.Unlock()
		return nil
	}

	r.tx.mu.Lock()
	r.tx.accounts[account.UserID] = &copied
	r.tx.mu.Unlock()
	return nil
}

type ledgerRepository struct {
	store *Store
	tx    *memTx
}

func (r *ledgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if entry.ExternalPaymentID != nil {
		if _, ok := r.store.byExternalID[*entry.ExternalPaymentID]; ok {
			return errs.NewDuplicatePaymentError(*entry.ExternalPaymentID)
		}
	}
	if entry.IdempotencyKey != nil {
		if _, ok := r.store.byKey[*entry.IdempotencyKey]; ok {
			return errs.NewDuplicateRequestError(*entry.IdempotencyKey)
		}
	}

	if r.tx == nil {
		r.store.appendEntryLocked(entry)
		return nil
	}

	r.tx.mu.Lock()
	r.tx.entries = append(r.tx.entries, entry)
	r.tx.mu.Unlock()
	return nil
}

func (r *ledgerRepository) GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*entity.LedgerEntry, error) {
	return r.find(func(e *entity.LedgerEntry) bool {
		return e.ExternalPaymentID != nil && *e.ExternalPaymentID == externalPaymentID
	}, func() (int, bool) {
		idx, ok := r.store.byExternalID[externalPaymentID]
		return idx, ok
	})
}

func (r *ledgerRepository) GetByIdempotencyKey(ctx context.Context, key string) (*entity.LedgerEntry, error) {
	return r.find(func(e *entity.LedgerEntry) bool {
		return e.IdempotencyKey != nil && *e.IdempotencyKey == key
	}, func() (int, bool) {
		idx, ok := r.store.byKey[key]
		return idx, ok
	})
}

func (r *ledgerRepository) find(match func(*entity.LedgerEntry) bool, index func() (int, bool)) (*entity.LedgerEntry, error) {
	if r.tx != nil {
		r.tx.mu.Lock()
		for _, e := range r.tx.entries {
			if match(e) {
				r.tx.mu.Unlock()
				return e, nil
			}
		}
		r.tx.mu.Unlock()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if idx, ok := index(); ok {
		return r.store.entries[idx], nil
	}
	return nil, errs.ErrEntryNotFound
}

func (r *ledgerRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entity.LedgerEntry
	for i := len(r.store.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if r.store.entries[i].UserID == userID {
			result = append(result, r.store.entries[i])
		}
	}
	return result, nil
}

func (r *ledgerRepository) TotalsByUserID(ctx context.Context, userID string) (entity.LedgerTotals, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var totals entity.LedgerTotals
	for _, e := range r.store.entries {
		if e.UserID == userID {
			totals.Cash += e.CashDelta
			totals.Free += e.FreeDelta
			totals.Entries++
		}
	}
	return totals, nil
}

type notificationRepository struct {
	store *Store
	tx    *memTx
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if r.tx == nil {
		r.store.mu.Lock()
		r.store.notifications = append(r.store.notifications, notification)
		r.store.mu.Unlock()
		return nil
	}

	r.tx.mu.Lock()
	r.tx.notifications = append(r.tx.notifications, notification)
	r.tx.mu.Unlock()
	return nil
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string, limit int, unreadOnly bool) ([]*entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entity.Notification
	for _, n := range slices.Backward(r.store.notifications) {
		if len(result) >= limit {
			break
		}
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return errs.ErrNotFound
}

type referralJobRepository struct {
	store *Store
	tx    *memTx
}

func (r *referralJobRepository) Create(ctx context.Context, job *entity.ReferralJob) error {
	if r.tx == nil {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
		for _, existing := range r.store.jobs {
			if existing.ChargeEntryID == job.ChargeEntryID {
				return errs.ErrConstraintViolation
			}
		}
		r.store.jobs = append(r.store.jobs, job)
		return nil
	}

	r.tx.mu.Lock()
	r.tx.jobs = append(r.tx.jobs, job)
	r.tx.mu.Unlock()
	return nil
}

func (r *referralJobRepository) GetByChargeEntryID(ctx context.Context, entryID uuid.UUID) (*entity.ReferralJob, error) {
	if r.tx != nil {
		r.tx.mu.Lock()
		for _, j := range r.tx.jobs {
			if j.ChargeEntryID == entryID {
				r.tx.mu.Unlock()
				return j, nil
			}
		}
		r.tx.mu.Unlock()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, j := range r.store.jobs {
		if j.ChargeEntryID == entryID {
			return j, nil
		}
	}
	return nil, errs.ErrNotFound
}
