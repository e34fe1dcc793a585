package gate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

// ReferralJobPayload is the body of a create_referral_job confirmation
type ReferralJobPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	RewardCredits int64  `json:"rewardCredits"`
}

// ReferralJobAction posts a referral job in the charge's transaction
type ReferralJobAction struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
}

var _ usecase.PaidAction = (*ReferralJobAction)(nil)

// NewReferralJobAction creates the create_referral_job action
func NewReferralJobAction(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider) *ReferralJobAction {
	return &ReferralJobAction{uow: uow, timeProvider: timeProvider}
}

// Kind returns create_referral_job
func (a *ReferralJobAction) Kind() entity.ActionKind { return entity.ActionCreateReferralJob }

// Transactional is true: the job and its charge commit together
func (a *ReferralJobAction) Transactional() bool { return true }

// Perform stores the job and returns its id
func (a *ReferralJobAction) Perform(ctx context.Context, inv entity.ActionInvocation) (string, error) {
	var payload ReferralJobPayload
	if len(inv.Payload) == 0 {
		return "", fmt.Errorf("%w: referral job payload is required", errs.ErrInvalidRequest)
	}
	if err := json.Unmarshal(inv.Payload, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidRequest, err)
	}

	job, err := entity.NewReferralJob(inv.UserID, payload.Title, payload.Description, payload.RewardCredits, inv.EntryID, a.timeProvider)
	if err != nil {
		return "", err
	}
	if err := a.uow.GetReferralJobRepository(ctx).Create(ctx, job); err != nil {
		return "", fmt.Errorf("failed to create referral job: %w", err)
	}
	return job.ID.String(), nil
}

// Find returns the job created for the charge
func (a *ReferralJobAction) Find(ctx context.Context, inv entity.ActionInvocation) (string, error) {
	job, err := a.uow.GetReferralJobRepository(ctx).GetByChargeEntryID(ctx, inv.EntryID)
	if err != nil {
		return "", err
	}
	return job.ID.String(), nil
}
