package gate

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
)

// Confirm performs the action and charges its cost as one unit.
// Re-submitting a token returns the original receipt with Replayed set.
func (s *Service) Confirm(ctx context.Context, req entity.PaidActionRequest) (*entity.PaidActionReceipt, error) {
	ctx, span := tracer.Start(ctx, "gate.Confirm", trace.WithAttributes(
		attribute.String("user.id", req.UserID),
		attribute.String("action.kind", string(req.ActionKind)),
	))
	defer span.End()

	receipt, err := s.confirm(ctx, req)
	s.metrics.IncPaidAction(string(req.ActionKind), confirmOutcome(receipt, err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("action.replayed", receipt.Replayed))
	return receipt, nil
}

func (s *Service) confirm(ctx context.Context, req entity.PaidActionRequest) (*entity.PaidActionReceipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	action, cost, err := s.lookup(req.UserID, req.ActionKind)
	if err != nil {
		return nil, err
	}

	lockKey := req.DebitKey()
	lockOwner, err := s.locks.AcquireLock(ctx, lockKey, s.inFlightTTL)
	if err != nil {
		if errors.Is(err, errs.ErrLockHeld) {
			s.logger.Info("Paid action already in flight", map[string]any{
				"user_id":     req.UserID,
				"action_kind": string(req.ActionKind),
			})
			return nil, errs.ErrActionInFlight
		}
		return nil, err
	}
	defer func() {
		if err := s.locks.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockOwner); err != nil {
			s.logger.Warn("Failed to release action lock", map[string]any{
				"lock_key": lockKey,
				"error":    err.Error(),
			})
		}
	}()

	existing, err := s.uow.GetLedgerRepository(ctx).GetByIdempotencyKey(ctx, lockKey)
	if err == nil {
		return s.replay(ctx, req, action, existing)
	}
	if !errors.Is(err, errs.ErrEntryNotFound) {
		return nil, err
	}

	debit := entity.MutationRequest{
		UserID:         req.UserID,
		Delta:          -cost,
		Reason:         entity.ReasonPostingFee,
		IdempotencyKey: lockKey,
		Reference:      string(req.ActionKind),
	}

	if action.Transactional() {
		return s.confirmInTx(ctx, req, action, debit)
	}
	return s.confirmExternal(ctx, req, action, debit)
}

// confirmInTx charges and performs the action in one transaction
func (s *Service) confirmInTx(ctx context.Context, req entity.PaidActionRequest, action usecase.PaidAction, debit entity.MutationRequest) (*entity.PaidActionReceipt, error) {
	var (
		result    *entity.MutationResult
		reference string
	)
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		r, err := s.credits.ApplyInTx(txCtx, debit)
		if err != nil {
			return err
		}
		ref, err := action.Perform(txCtx, entity.ActionInvocation{
			UserID:  req.UserID,
			EntryID: r.Entry.ID,
			Payload: req.Payload,
		})
		if err != nil {
			return fmt.Errorf("paid action %s failed: %w", req.ActionKind, err)
		}
		result, reference = r, ref
		return nil
	})
	if err != nil {
		if errs.IsAlreadyApplied(err) {
			return s.replayByKey(ctx, req, action)
		}
		return nil, err
	}

	s.credits.Announce(ctx, result)
	s.logger.Info("Paid action confirmed", map[string]any{
		"user_id":     req.UserID,
		"action_kind": string(req.ActionKind),
		"entry_id":    result.Entry.ID.String(),
		"reference":   reference,
	})
	return receiptOf(req.ActionKind, result.Entry, result.Balance, reference, false), nil
}

// confirmExternal charges first, then performs the action and refunds the charge if it fails
func (s *Service) confirmExternal(ctx context.Context, req entity.PaidActionRequest, action usecase.PaidAction, debit entity.MutationRequest) (*entity.PaidActionReceipt, error) {
	result, err := s.credits.ApplyDelta(ctx, debit)
	if err != nil {
		return nil, err
	}
	if result.Duplicate {
		return s.replay(ctx, req, action, result.Entry)
	}

	reference, actionErr := action.Perform(ctx, entity.ActionInvocation{
		UserID:  req.UserID,
		EntryID: result.Entry.ID,
		Payload: req.Payload,
	})
	if actionErr != nil {
		return nil, s.compensate(ctx, req, actionErr)
	}

	s.logger.Info("Paid action confirmed", map[string]any{
		"user_id":     req.UserID,
		"action_kind": string(req.ActionKind),
		"entry_id":    result.Entry.ID.String(),
		"reference":   reference,
	})
	return receiptOf(req.ActionKind, result.Entry, result.Balance, reference, false), nil
}

// compensate refunds a charge whose action failed
func (s *Service) compensate(ctx context.Context, req entity.PaidActionRequest, actionErr error) error {
	refundCtx := context.WithoutCancel(ctx)
	refund, err := s.credits.Reverse(refundCtx, req.UserID, req.DebitKey(), req.RefundKey())
	if err != nil {
		s.logger.Error("Failed to refund paid action", map[string]any{
			"user_id":      req.UserID,
			"action_kind":  string(req.ActionKind),
			"debit_key":    req.DebitKey(),
			"action_error": actionErr.Error(),
			"refund_error": err.Error(),
		})
		return fmt.Errorf("%w: action failed: %v; refund failed: %v", errs.ErrCompensationFailed, actionErr, err)
	}

	s.logger.Warn("Paid action failed, charge refunded", map[string]any{
		"user_id":     req.UserID,
		"action_kind": string(req.ActionKind),
		"error":       actionErr.Error(),
	})
	if !refund.Duplicate {
		s.notifyRefund(refundCtx, req, refund.Entry)
	}
	return &compensatedError{err: actionErr}
}

// notifyRefund tells the user their charge came back; failures are only logged
func (s *Service) notifyRefund(ctx context.Context, req entity.PaidActionRequest, entry *entity.LedgerEntry) {
	n := entity.NewCreditsRefundedNotification(req.UserID, req.ActionKind, entry, s.timeProvider)
	if err := s.uow.GetNotificationRepository(ctx).Create(ctx, n); err != nil {
		s.logger.Warn("Failed to store refund notification", map[string]any{
			"user_id":  req.UserID,
			"entry_id": entry.ID.String(),
			"error":    err.Error(),
		})
	}
}

func (s *Service) replayByKey(ctx context.Context, req entity.PaidActionRequest, action usecase.PaidAction) (*entity.PaidActionReceipt, error) {
	existing, err := s.uow.GetLedgerRepository(ctx).GetByIdempotencyKey(ctx, req.DebitKey())
	if err != nil {
		return nil, err
	}
	return s.replay(ctx, req, action, existing)
}

// replay answers a re-submitted token from the recorded charge
func (s *Service) replay(ctx context.Context, req entity.PaidActionRequest, action usecase.PaidAction, charge *entity.LedgerEntry) (*entity.PaidActionReceipt, error) {
	inv := entity.ActionInvocation{UserID: req.UserID, EntryID: charge.ID, Payload: req.Payload}

	reference, err := action.Find(ctx, inv)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if errors.Is(err, errs.ErrNotFound) {
		// The charge exists without its action: the first attempt failed or was
		// interrupted. Make sure it was refunded before reporting.
		if _, refundErr := s.credits.Reverse(ctx, req.UserID, req.DebitKey(), req.RefundKey()); refundErr != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrCompensationFailed, refundErr)
		}
		return nil, fmt.Errorf("%w: token %q belongs to a refunded attempt", errs.ErrInvalidIdempotencyKey, req.IdempotencyToken)
	}

	balance, err := s.credits.GetBalance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Paid action replayed", map[string]any{
		"user_id":     req.UserID,
		"action_kind": string(req.ActionKind),
		"entry_id":    charge.ID.String(),
	})
	return receiptOf(req.ActionKind, charge, balance, reference, true), nil
}

func receiptOf(kind entity.ActionKind, charge *entity.LedgerEntry, balance entity.Balance, reference string, replayed bool) *entity.PaidActionReceipt {
	return &entity.PaidActionReceipt{
		ActionKind: kind,
		Cost:       -charge.Delta,
		Balance:    balance,
		EntryID:    charge.ID,
		Reference:  reference,
		Replayed:   replayed,
	}
}

// compensatedError is an action failure whose charge was refunded
type compensatedError struct {
	err error
}

func (e *compensatedError) Error() string {
	return fmt.Sprintf("paid action failed and was refunded: %v", e.err)
}

func (e *compensatedError) Unwrap() error {
	return e.err
}

func confirmOutcome(receipt *entity.PaidActionReceipt, err error) string {
	var compensated *compensatedError
	switch {
	case err == nil && receipt.Replayed:
		return OutcomeReplayed
	case err == nil:
		return OutcomeConfirmed
	case errors.Is(err, errs.ErrInsufficientBalance):
		return OutcomeInsufficient
	case errors.Is(err, errs.ErrActionInFlight):
		return OutcomeInFlight
	case errors.Is(err, errs.ErrUnknownActionKind):
		return OutcomeUnknownKind
	case errors.Is(err, errs.ErrCompensationFailed):
		return OutcomeCompensationFailed
	case errors.As(err, &compensated):
		return OutcomeCompensated
	default:
		return OutcomeFailed
	}
}
