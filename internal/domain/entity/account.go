package entity

import (
	"math"
	"strings"
	"time"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// MaxUserIDLength bounds the opaque user identifier handed over by the auth provider
const MaxUserIDLength = 128

// CreditPool names one of the two balances an account holds
type CreditPool string

// Credit pools
const (
	PoolCash CreditPool = "cash"
	PoolFree CreditPool = "free"
)

// IsValid reports whether p is a known pool
func (p CreditPool) IsValid() bool {
	return p == PoolCash || p == PoolFree
}

// Balance is a point-in-time view of an account
type Balance struct {
	CashCredits int64 `json:"cashCredits"`
	FreeCredits int64 `json:"freeCredits"`
}

// Total returns cash plus free credits
func (b Balance) Total() int64 {
	return b.CashCredits + b.FreeCredits
}

// CanAfford reports whether the combined balance covers cost
func (b Balance) CanAfford(cost int64) bool {
	return b.Total() >= cost
}

// Split is the signed per-pool effect of a single mutation
type Split struct {
	Cash int64
	Free int64
}

// Delta returns the combined signed change
func (s Split) Delta() int64 {
	return s.Cash + s.Free
}

// Negate returns the split that undoes s
func (s Split) Negate() Split {
	return Split{Cash: -s.Cash, Free: -s.Free}
}

// Account holds the two credit pools of a user
type Account struct {
	UserID      string    // Opaque identifier issued by the auth provider
	cashCredits int64     // Credits bought with real money (private)
	freeCredits int64     // Promotional credits (private)
	CreatedAt   time.Time // When the account row was provisioned
	UpdatedAt   time.Time // When the balance last changed
	EntryCount  uint64    // Number of ledger entries applied
}

// ValidateUserID checks the opaque user identifier
func ValidateUserID(userID string) error {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" || trimmed != userID || len(userID) > MaxUserIDLength {
		return errs.ErrInvalidUserID
	}
	return nil
}

// NewAccount creates a zeroed account for the user
func NewAccount(userID string, timeProvider coreport.TimeProvider) (*Account, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Account{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state
func RestoreAccount(userID string, cash, free int64, createdAt, updatedAt time.Time, entryCount uint64) (*Account, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if cash < 0 || free < 0 {
		return nil, errs.ErrNegativeBalance
	}

	return &Account{
		UserID:      userID,
		cashCredits: cash,
		freeCredits: free,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		EntryCount:  entryCount,
	}, nil
}

// CashCredits returns the cash pool
func (a *Account) CashCredits() int64 {
	return a.cashCredits
}

// FreeCredits returns the free pool
func (a *Account) FreeCredits() int64 {
	return a.freeCredits
}

// Balance returns a snapshot of both pools
func (a *Account) Balance() Balance {
	return Balance{CashCredits: a.cashCredits, FreeCredits: a.freeCredits}
}

// Apply adds a signed delta. Credits go to pool, debits drain free credits
// before cash. A debit larger than the total balance leaves the account untouched.
func (a *Account) Apply(delta int64, pool CreditPool, timeProvider coreport.TimeProvider) (Split, error) {
	switch {
	case delta > 0:
		return a.credit(delta, pool, timeProvider)
	case delta < 0:
		if delta == math.MinInt64 {
			return Split{}, errs.ErrAmountOverflow
		}
		return a.debit(-delta, timeProvider)
	default:
		return Split{}, errs.ErrInvalidDelta
	}
}

// ApplySplit applies an exact per-pool change, used to reverse an earlier mutation
func (a *Account) ApplySplit(split Split, timeProvider coreport.TimeProvider) error {
	cash := a.cashCredits + split.Cash
	free := a.freeCredits + split.Free
	if cash < 0 || free < 0 {
		return errs.NewInsufficientBalanceError(a.UserID, -split.Delta(), a.cashCredits, a.freeCredits)
	}
	if (split.Cash > 0 && cash < a.cashCredits) || (split.Free > 0 && free < a.freeCredits) {
		return errs.ErrAmountOverflow
	}

	a.cashCredits = cash
	a.freeCredits = free
	a.touch(timeProvider)
	return nil
}

func (a *Account) credit(amount int64, pool CreditPool, timeProvider coreport.TimeProvider) (Split, error) {
	var split Split
	switch pool {
	case PoolCash:
		if a.cashCredits > math.MaxInt64-amount {
			return Split{}, errs.ErrAmountOverflow
		}
		a.cashCredits += amount
		split.Cash = amount
	case PoolFree:
		if a.freeCredits > math.MaxInt64-amount {
			return Split{}, errs.ErrAmountOverflow
		}
		a.freeCredits += amount
		split.Free = amount
	default:
		return Split{}, errs.ErrInvalidRequest
	}

	a.touch(timeProvider)
	return split, nil
}

func (a *Account) debit(amount int64, timeProvider coreport.TimeProvider) (Split, error) {
	if !a.Balance().CanAfford(amount) {
		return Split{}, errs.NewInsufficientBalanceError(a.UserID, amount, a.cashCredits, a.freeCredits)
	}

	fromFree := min(amount, a.freeCredits)
	fromCash := amount - fromFree

	a.freeCredits -= fromFree
	a.cashCredits -= fromCash
	a.touch(timeProvider)

	return Split{Cash: -fromCash, Free: -fromFree}, nil
}

func (a *Account) touch(timeProvider coreport.TimeProvider) {
	a.UpdatedAt = timeProvider.Now()
	a.EntryCount++
}
