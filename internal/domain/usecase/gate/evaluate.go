package gate

import (
	"context"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// Evaluate quotes an action against the user's current balance
func (s *Service) Evaluate(ctx context.Context, userID string, kind entity.ActionKind) (*entity.PaidActionQuote, error) {
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}

	_, cost, err := s.lookup(userID, kind)
	if err != nil {
		s.metrics.IncPaidAction(string(kind), OutcomeUnknownKind)
		return nil, err
	}

	balance, err := s.credits.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entity.NewPaidActionQuote(kind, cost, balance), nil
}
