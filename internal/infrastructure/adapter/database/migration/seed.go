package migration

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

// SeedSignupBonus grants each development user the signup bonus through the
// ledger. The idempotency key makes reruns a no-op.
func SeedSignupBonus(ctx context.Context, credits usecase.CreditMutator, users []string, bonus int64, logger coreport.Logger) error {
	if bonus <= 0 {
		return nil
	}

	for _, userID := range users {
		result, err := credits.ApplyDelta(ctx, entity.MutationRequest{
			UserID:         userID,
			Delta:          bonus,
			Reason:         entity.ReasonSignupBonus,
			IdempotencyKey: "seed:signup_bonus:" + userID,
			Note:           "development seed",
		})
		if err != nil {
			return err
		}

		logger.Info("Seeded development account", map[string]any{
			"user_id":      userID,
			"free_credits": result.Balance.FreeCredits,
			"duplicate":    result.Duplicate,
		})
	}

	return nil
}
