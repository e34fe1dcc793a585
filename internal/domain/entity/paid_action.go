package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
)

// ActionKind names a credit-gated action
type ActionKind string

// Paid actions
const (
	ActionCreateReferralJob ActionKind = "create_referral_job"
)

// DefaultActionCosts are used when configuration does not price an action
var DefaultActionCosts = map[ActionKind]int64{
	ActionCreateReferralJob: 5,
}

// PaidActionQuote answers "can this user afford this action right now"
type PaidActionQuote struct {
	ActionKind ActionKind `json:"actionKind"`
	Cost       int64      `json:"cost"`
	Balance    Balance    `json:"balance"`
	CanAfford  bool       `json:"canAfford"`
}

// NewPaidActionQuote evaluates cost against balance
func NewPaidActionQuote(kind ActionKind, cost int64, balance Balance) *PaidActionQuote {
	return &PaidActionQuote{
		ActionKind: kind,
		Cost:       cost,
		Balance:    balance,
		CanAfford:  balance.CanAfford(cost),
	}
}

// PaidActionRequest is a confirmed click on a paid action
type PaidActionRequest struct {
	UserID           string
	ActionKind       ActionKind
	IdempotencyToken string
	Payload          json.RawMessage
}

// Validate checks the request shape
func (r PaidActionRequest) Validate() error {
	if err := ValidateUserID(r.UserID); err != nil {
		return err
	}
	if r.ActionKind == "" {
		return errs.ErrUnknownActionKind
	}
	token := strings.TrimSpace(r.IdempotencyToken)
	if token == "" || token != r.IdempotencyToken || len(token) > 100 {
		return errs.ErrInvalidIdempotencyKey
	}
	return nil
}

// DebitKey is the ledger idempotency key of the action's charge
func (r PaidActionRequest) DebitKey() string {
	return fmt.Sprintf("gate:%s:%s:%s", r.ActionKind, r.UserID, r.IdempotencyToken)
}

// RefundKey is the ledger idempotency key of the compensating refund
func (r PaidActionRequest) RefundKey() string {
	return "refund:" + r.DebitKey()
}

// PaidActionReceipt is returned once an action was performed and paid for
type PaidActionReceipt struct {
	ActionKind ActionKind `json:"actionKind"`
	Cost       int64      `json:"cost"`
	Balance    Balance    `json:"balance"`
	EntryID    uuid.UUID  `json:"entryId"`
	Reference  string     `json:"reference,omitempty"`
	Replayed   bool       `json:"replayed"`
}

// ActionInvocation is what a paid action receives when it runs
type ActionInvocation struct {
	UserID  string
	EntryID uuid.UUID // Charge entry, zero for actions that run before the debit
	Payload json.RawMessage
}

// ReferralJobStatus tracks a referral job posting
type ReferralJobStatus string

// Referral job statuses
const (
	ReferralJobOpen   ReferralJobStatus = "open"
	ReferralJobClosed ReferralJobStatus = "closed"
)

// ReferralJob is a posting that asks the community for referrals
type ReferralJob struct {
	ID            uuid.UUID
	OwnerID       string
	Title         string
	Description   string
	RewardCredits int64
	Status        ReferralJobStatus
	ChargeEntryID uuid.UUID
	CreatedAt     time.Time
}

// NewReferralJob validates and creates an open referral job
func NewReferralJob(ownerID, title, description string, reward int64, chargeEntryID uuid.UUID, timeProvider coreport.TimeProvider) (*ReferralJob, error) {
	if err := ValidateUserID(ownerID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return nil, fmt.Errorf("%w: title must be 1-200 characters", errs.ErrInvalidRequest)
	}
	if reward < 0 {
		return nil, fmt.Errorf("%w: reward cannot be negative", errs.ErrInvalidRequest)
	}

	return &ReferralJob{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         title,
		Description:   strings.TrimSpace(description),
		RewardCredits: reward,
		Status:        ReferralJobOpen,
		ChargeEntryID: chargeEntryID,
		CreatedAt:     timeProvider.Now(),
	}, nil
}
