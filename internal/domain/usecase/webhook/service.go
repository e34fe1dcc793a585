package webhook

import (
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
	"github.com/localhy/credit-ledger/internal/domain/port/payment"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

var tracer = otel.Tracer("github.com/localhy/credit-ledger/webhook")

// Service handles payment provider webhooks
type Service struct {
	uow          persistence.UnitOfWork
	credits      usecase.CreditUseCase
	gateways     payment.Gateways
	publisher    messaging.ChangeFeedPublisher
	exchangeRate decimal.Decimal
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.WebhookUseCase = (*Service)(nil)

// NewService creates a webhook service. A non-positive rate falls back to one credit per currency unit.
func NewService(
	uow persistence.UnitOfWork,
	credits usecase.CreditUseCase,
	gateways payment.Gateways,
	publisher messaging.ChangeFeedPublisher,
	exchangeRate decimal.Decimal,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	if !exchangeRate.IsPositive() {
		exchangeRate = entity.DefaultExchangeRate
	}

	return &Service{
		uow:          uow,
		credits:      credits,
		gateways:     gateways,
		publisher:    publisher,
		exchangeRate: exchangeRate,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}
