package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// MaxIdempotencyKeyLength bounds external payment IDs and idempotency keys
const MaxIdempotencyKeyLength = 200

// Reason explains why a ledger entry exists
type Reason string

// Ledger reasons
const (
	ReasonPurchase        Reason = "purchase"
	ReasonPostingFee      Reason = "posting_fee"
	ReasonReferralReward  Reason = "referral_reward"
	ReasonAdminAdjustment Reason = "admin_adjustment"
	ReasonSignupBonus     Reason = "signup_bonus"
	ReasonRefund          Reason = "refund"
)

// ParseReason converts a raw string into a Reason
func ParseReason(s string) (Reason, error) {
	r := Reason(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownReason, s)
	}
	return r, nil
}

// IsValid reports whether r is one of the enumerated reasons
func (r Reason) IsValid() bool {
	switch r {
	case ReasonPurchase, ReasonPostingFee, ReasonReferralReward,
		ReasonAdminAdjustment, ReasonSignupBonus, ReasonRefund:
		return true
	}
	return false
}

// DefaultPool returns the pool a positive delta with this reason credits
func (r Reason) DefaultPool() CreditPool {
	switch r {
	case ReasonReferralReward, ReasonSignupBonus:
		return PoolFree
	default:
		return PoolCash
	}
}

// ValidateDelta enforces the sign each reason allows
func (r Reason) ValidateDelta(delta int64) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %q", errs.ErrUnknownReason, r)
	}
	if delta == 0 {
		return fmt.Errorf("%w: delta cannot be zero", errs.ErrInvalidDelta)
	}

	switch r {
	case ReasonPostingFee:
		if delta > 0 {
			return fmt.Errorf("%w: %s must be a debit", errs.ErrInvalidDelta, r)
		}
	case ReasonAdminAdjustment:
	default:
		if delta < 0 {
			return fmt.Errorf("%w: %s must be a credit", errs.ErrInvalidDelta, r)
		}
	}
	return nil
}

// LedgerEntry is an immutable record of one balance change
type LedgerEntry struct {
	ID                uuid.UUID // Time-ordered identifier
	UserID            string    // Owner of the affected account
	Delta             int64     // Signed change of the total balance
	CashDelta         int64     // Signed change of the cash pool
	FreeDelta         int64     // Signed change of the free pool
	Reason            Reason    // Why the balance changed
	ExternalPaymentID *string   // Provider transaction, unique when set
	IdempotencyKey    *string   // Caller supplied key, unique when set
	Reference         string    // Related resource, e.g. a referral job
	Note              string    // Free text for operators
	CashAfter         int64     // Cash pool after the change
	FreeAfter         int64     // Free pool after the change
	CreatedAt         time.Time // When the entry was appended
}

// NewLedgerEntry records a split that was just applied to account
func NewLedgerEntry(account *Account, split Split, req MutationRequest, timeProvider coreport.TimeProvider) (*LedgerEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate ledger entry id: %w", err)
	}

	balance := account.Balance()
	return &LedgerEntry{
		ID:                id,
		UserID:            account.UserID,
		Delta:             split.Delta(),
		CashDelta:         split.Cash,
		FreeDelta:         split.Free,
		Reason:            req.Reason,
		ExternalPaymentID: optional(req.ExternalPaymentID),
		IdempotencyKey:    optional(req.IdempotencyKey),
		Reference:         req.Reference,
		Note:              req.Note,
		CashAfter:         balance.CashCredits,
		FreeAfter:         balance.FreeCredits,
		CreatedAt:         timeProvider.Now(),
	}, nil
}

// Split returns the per-pool change the entry recorded
func (e *LedgerEntry) Split() Split {
	return Split{Cash: e.CashDelta, Free: e.FreeDelta}
}

// BalanceAfter returns the balance the entry produced
func (e *LedgerEntry) BalanceAfter() Balance {
	return Balance{CashCredits: e.CashAfter, FreeCredits: e.FreeAfter}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MutationRequest asks the mutator to change a balance
type MutationRequest struct {
	UserID            string
	Delta             int64
	Reason            Reason
	ExternalPaymentID string     // Provider transaction ID, for purchases
	IdempotencyKey    string     // Caller supplied key for everything else
	Pool              CreditPool // Overrides the reason's default pool for credits
	Reference         string
	Note              string
}

// Validate checks the request before any store access
func (r MutationRequest) Validate() error {
	if err := ValidateUserID(r.UserID); err != nil {
		return err
	}
	if err := r.Reason.ValidateDelta(r.Delta); err != nil {
		return err
	}
	if r.Pool != "" {
		if !r.Pool.IsValid() {
			return fmt.Errorf("%w: unknown pool %q", errs.ErrInvalidRequest, r.Pool)
		}
		if r.Reason != ReasonAdminAdjustment {
			return fmt.Errorf("%w: pool can only be chosen for %s", errs.ErrInvalidRequest, ReasonAdminAdjustment)
		}
	}
	if r.ExternalPaymentID != "" && r.IdempotencyKey != "" {
		return fmt.Errorf("%w: use either an external payment ID or an idempotency key", errs.ErrInvalidRequest)
	}
	for _, key := range []string{r.ExternalPaymentID, r.IdempotencyKey} {
		if len(key) > MaxIdempotencyKeyLength || (key != "" && strings.TrimSpace(key) == "") {
			return errs.ErrInvalidIdempotencyKey
		}
	}
	return nil
}

// TargetPool returns the pool a positive delta credits
func (r MutationRequest) TargetPool() CreditPool {
	if r.Pool != "" {
		return r.Pool
	}
	return r.Reason.DefaultPool()
}

// DedupKey returns the key the mutation is deduplicated on, if any
func (r MutationRequest) DedupKey() string {
	if r.ExternalPaymentID != "" {
		return r.ExternalPaymentID
	}
	return r.IdempotencyKey
}

// MutationResult is returned by the mutator
type MutationResult struct {
	Balance   Balance      // Balance after the mutation (or the current one for duplicates)
	Entry     *LedgerEntry // Appended entry, or the earlier one for duplicates when known
	Duplicate bool         // True when the key had already been applied
}

// LedgerTotals aggregates a user's ledger
type LedgerTotals struct {
	Cash    int64
	Free    int64
	Entries int64
}

// Balance returns the balance the ledger implies
func (t LedgerTotals) Balance() Balance {
	return Balance{CashCredits: t.Cash, FreeCredits: t.Free}
}

// AuditReport compares a stored balance to the ledger
type AuditReport struct {
	UserID     string  `json:"userId"`
	Stored     Balance `json:"stored"`
	Ledger     Balance `json:"ledger"`
	Entries    int64   `json:"entries"`
	Consistent bool    `json:"consistent"`
}

// NewAuditReport builds a report from the stored balance and ledger totals
func NewAuditReport(userID string, stored Balance, totals LedgerTotals) *AuditReport {
	ledger := totals.Balance()
	return &AuditReport{
		UserID:     userID,
		Stored:     stored,
		Ledger:     ledger,
		Entries:    totals.Entries,
		Consistent: stored == ledger,
	}
}
