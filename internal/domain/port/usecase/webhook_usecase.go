package usecase

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// WebhookUseCase turns verified provider notifications into credits
type WebhookUseCase interface {
	// Handle runs the delivery through the webhook state machine.
	// The outcome is returned even when err is non-nil so callers can report the final state.
	Handle(ctx context.Context, delivery entity.WebhookDelivery) (*entity.WebhookOutcome, error)
}
