package usecase

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// PaidAction is an action that costs credits
type PaidAction interface {
	// Kind returns the action kind the gate prices it under
	Kind() entity.ActionKind

	// Transactional reports whether Perform runs inside the charge's transaction.
	// Non-transactional actions are charged first and refunded when they fail.
	Transactional() bool

	// Perform executes the action and returns a reference to what it created
	Perform(ctx context.Context, inv entity.ActionInvocation) (string, error)

	// Find returns the reference created for an earlier charge, for replays
	Find(ctx context.Context, inv entity.ActionInvocation) (string, error)
}

// PaidActionUseCase gates actions on the user's balance
type PaidActionUseCase interface {
	// Evaluate quotes the action without side effects
	Evaluate(ctx context.Context, userID string, kind entity.ActionKind) (*entity.PaidActionQuote, error)

	// Confirm performs the action and charges for it as one unit
	Confirm(ctx context.Context, req entity.PaidActionRequest) (*entity.PaidActionReceipt, error)

	// Prices lists the configured action costs
	Prices() map[entity.ActionKind]int64
}
