package credit

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

var tracer = otel.Tracer("github.com/localhy/credit-ledger/credit")

// Default and maximum page sizes for ledger history
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// Service reads and mutates credit balances.
// Every balance change goes through ApplyDelta, ApplyInTx or Reverse.
type Service struct {
	uow          persistence.UnitOfWork
	idempotency  *IdempotencyHandler
	publisher    messaging.ChangeFeedPublisher
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	historyLimit int
}

var _ usecase.CreditUseCase = (*Service)(nil)

// NewService creates a new credit service
func NewService(
	uow persistence.UnitOfWork,
	publisher messaging.ChangeFeedPublisher,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	historyLimit int,
) *Service {
	if historyLimit <= 0 || historyLimit > MaxHistoryLimit {
		historyLimit = DefaultHistoryLimit
	}

	return &Service{
		uow:          uow,
		idempotency:  NewIdempotencyHandler(uow.GetLedgerRepository(context.Background())),
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// Announce publishes the change-feed event of a committed mutation.
// Feed failures are logged and never reported to the caller.
func (s *Service) Announce(ctx context.Context, result *entity.MutationResult) {
	if result == nil || result.Duplicate || result.Entry == nil {
		return
	}

	event := entity.NewBalanceChangedEvent(result.Entry)
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("Failed to publish balance change", map[string]any{
			"user_id":  result.Entry.UserID,
			"entry_id": result.Entry.ID.String(),
			"error":    err.Error(),
		})
	}
}
