package gate

import (
	"fmt"
	"maps"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

var tracer = otel.Tracer("github.com/localhy/credit-ledger/gate")

// DefaultInFlightTTL bounds how long a crashed confirmation can block its token
const DefaultInFlightTTL = 30 * time.Second

// Paid action outcomes reported to metrics
const (
	OutcomeConfirmed          = "confirmed"
	OutcomeReplayed           = "replayed"
	OutcomeInsufficient       = "insufficient_balance"
	OutcomeInFlight           = "in_flight"
	OutcomeUnknownKind        = "unknown_kind"
	OutcomeCompensated        = "compensated"
	OutcomeCompensationFailed = "compensation_failed"
	OutcomeFailed             = "failed"
)

// Config holds gate settings
type Config struct {
	Prices      map[entity.ActionKind]int64
	InFlightTTL time.Duration
	Production  bool
}

// Service charges credits for paid actions
type Service struct {
	uow          persistence.UnitOfWork
	credits      usecase.CreditUseCase
	locks        persistence.ActionLockRepository
	actions      map[entity.ActionKind]usecase.PaidAction
	prices       map[entity.ActionKind]int64
	inFlightTTL  time.Duration
	production   bool
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.PaidActionUseCase = (*Service)(nil)

// NewService creates a gate over the given actions. Every action must have a positive price.
func NewService(
	uow persistence.UnitOfWork,
	credits usecase.CreditUseCase,
	locks persistence.ActionLockRepository,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
	actions ...usecase.PaidAction,
) *Service {
	prices := maps.Clone(entity.DefaultActionCosts)
	maps.Copy(prices, cfg.Prices)

	registered := make(map[entity.ActionKind]usecase.PaidAction, len(actions))
	for _, action := range actions {
		if prices[action.Kind()] <= 0 {
			panic(fmt.Sprintf("paid action %q has no positive price", action.Kind()))
		}
		registered[action.Kind()] = action
	}

	ttl := cfg.InFlightTTL
	if ttl <= 0 {
		ttl = DefaultInFlightTTL
	}

	return &Service{
		uow:          uow,
		credits:      credits,
		locks:        locks,
		actions:      registered,
		prices:       prices,
		inFlightTTL:  ttl,
		production:   cfg.Production,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Prices lists the cost of every registered action
func (s *Service) Prices() map[entity.ActionKind]int64 {
	result := make(map[entity.ActionKind]int64, len(s.actions))
	for kind := range s.actions {
		result[kind] = s.prices[kind]
	}
	return result
}

// lookup returns the action and its price, or ErrUnknownActionKind
func (s *Service) lookup(userID string, kind entity.ActionKind) (usecase.PaidAction, int64, error) {
	action, ok := s.actions[kind]
	if !ok {
		if s.production {
			s.logger.Warn("Rejected unknown paid action", map[string]any{"user_id": userID})
		} else {
			s.logger.Error("Unknown paid action kind", map[string]any{
				"user_id":     userID,
				"action_kind": string(kind),
			})
		}
		return nil, 0, fmt.Errorf("%w: %q", errs.ErrUnknownActionKind, kind)
	}
	return action, s.prices[kind], nil
}
