package credit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// Mutation outcomes reported to metrics
const (
	OutcomeApplied      = "applied"
	OutcomeDuplicate    = "duplicate"
	OutcomeInsufficient = "insufficient_balance"
	OutcomeInvalid      = "invalid"
	OutcomeUnavailable  = "store_unavailable"
	OutcomeFailed       = "failed"
)

// ApplyDelta changes a balance and appends the matching ledger entry in one transaction.
// A request whose key was already applied returns the current balance with Duplicate set.
func (s *Service) ApplyDelta(ctx context.Context, req entity.MutationRequest) (*entity.MutationResult, error) {
	ctx, span := tracer.Start(ctx, "credit.ApplyDelta", trace.WithAttributes(
		attribute.String("user.id", req.UserID),
		attribute.String("ledger.reason", string(req.Reason)),
		attribute.Int64("ledger.delta", req.Delta),
	))
	defer span.End()

	start := s.timeProvider.Now()
	result, err := s.applyDelta(ctx, req)
	s.metrics.ObserveMutation(string(req.Reason), outcomeOf(result, err), s.timeProvider.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("ledger.duplicate", result.Duplicate))
	s.Announce(ctx, result)
	return result, nil
}

func (s *Service) applyDelta(ctx context.Context, req entity.MutationRequest) (*entity.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mutation: %w", err)
	}

	// Duplicates are answered without taking the row lock. The unique
	// constraint inside the transaction stays authoritative.
	existing, found, err := s.idempotency.CheckIdempotency(ctx, req)
	if err != nil {
		return nil, err
	}
	if found {
		return s.duplicateResult(ctx, req.UserID, req.DedupKey(), existing)
	}

	var result *entity.MutationResult
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		r, err := s.ApplyInTx(txCtx, req)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return s.resolveConflict(ctx, req, err)
	}

	s.logger.Info("Credit mutation applied", map[string]any{
		"user_id":      req.UserID,
		"reason":       string(req.Reason),
		"delta":        req.Delta,
		"entry_id":     result.Entry.ID.String(),
		"cash_credits": result.Balance.CashCredits,
		"free_credits": result.Balance.FreeCredits,
	})
	return result, nil
}

// ApplyInTx runs the mutation inside the caller's transaction. The caller commits.
// Already-applied keys are returned as errors so the caller can roll back.
func (s *Service) ApplyInTx(txCtx context.Context, req entity.MutationRequest) (*entity.MutationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mutation: %w", err)
	}

	ledgerRepo := s.uow.GetLedgerRepository(txCtx)
	accountRepo := s.uow.GetAccountRepository(txCtx)

	account, err := accountRepo.GetForUpdate(txCtx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	// Re-check under the row lock; a concurrent request may have committed the key.
	if _, found, err := NewIdempotencyHandler(ledgerRepo).CheckIdempotency(txCtx, req); err != nil {
		return nil, err
	} else if found {
		return nil, duplicateError(req)
	}

	split, err := account.Apply(req.Delta, req.TargetPool(), s.timeProvider)
	if err != nil {
		var balanceErr *errs.InsufficientBalanceError
		if errors.As(err, &balanceErr) {
			s.logger.Info("Debit rejected", balanceErr.LogFields())
		}
		return nil, err
	}

	entry, err := entity.NewLedgerEntry(account, split, req, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := ledgerRepo.Append(txCtx, entry); err != nil {
		return nil, err
	}
	if err := accountRepo.Save(txCtx, account); err != nil {
		return nil, fmt.Errorf("failed to save balance: %w", err)
	}

	return &entity.MutationResult{
		Balance: account.Balance(),
		Entry:   entry,
	}, nil
}

// Reverse refunds the debit recorded under originalKey by applying its negated
// split, so each pool gets back exactly what it lost.
func (s *Service) Reverse(ctx context.Context, userID, originalKey, refundKey string) (*entity.MutationResult, error) {
	ctx, span := tracer.Start(ctx, "credit.Reverse", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("ledger.original_key", originalKey),
	))
	defer span.End()

	req := entity.MutationRequest{
		UserID:         userID,
		Reason:         entity.ReasonRefund,
		IdempotencyKey: refundKey,
	}

	start := s.timeProvider.Now()
	result, err := s.reverse(ctx, req, originalKey)
	s.metrics.ObserveMutation(string(entity.ReasonRefund), outcomeOf(result, err), s.timeProvider.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.Announce(ctx, result)
	return result, nil
}

func (s *Service) reverse(ctx context.Context, req entity.MutationRequest, originalKey string) (*entity.MutationResult, error) {
	if err := entity.ValidateUserID(req.UserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(originalKey) == "" || strings.TrimSpace(req.IdempotencyKey) == "" {
		return nil, errs.ErrInvalidIdempotencyKey
	}

	existing, found, err := s.idempotency.CheckIdempotency(ctx, req)
	if err != nil {
		return nil, err
	}
	if found {
		return s.duplicateResult(ctx, req.UserID, req.IdempotencyKey, existing)
	}

	var result *entity.MutationResult
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		ledgerRepo := s.uow.GetLedgerRepository(txCtx)
		accountRepo := s.uow.GetAccountRepository(txCtx)

		original, err := ledgerRepo.GetByIdempotencyKey(txCtx, originalKey)
		if err != nil {
			return fmt.Errorf("failed to find entry to reverse: %w", err)
		}
		if original.UserID != req.UserID || original.Delta >= 0 {
			return fmt.Errorf("%w: entry %s is not a debit of user %s", errs.ErrInvalidRequest, original.ID, req.UserID)
		}

		account, err := accountRepo.GetForUpdate(txCtx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}

		if _, found, err := NewIdempotencyHandler(ledgerRepo).CheckIdempotency(txCtx, req); err != nil {
			return err
		} else if found {
			return duplicateError(req)
		}

		split := original.Split().Negate()
		if err := account.ApplySplit(split, s.timeProvider); err != nil {
			return err
		}

		refund := req
		refund.Delta = split.Delta()
		refund.Reference = original.ID.String()
		entry, err := entity.NewLedgerEntry(account, split, refund, s.timeProvider)
		if err != nil {
			return err
		}

		if err := ledgerRepo.Append(txCtx, entry); err != nil {
			return err
		}
		if err := accountRepo.Save(txCtx, account); err != nil {
			return fmt.Errorf("failed to save balance: %w", err)
		}

		result = &entity.MutationResult{Balance: account.Balance(), Entry: entry}
		return nil
	})
	if err != nil {
		return s.resolveConflict(ctx, req, err)
	}

	s.logger.Info("Debit reversed", map[string]any{
		"user_id":      req.UserID,
		"original_key": originalKey,
		"entry_id":     result.Entry.ID.String(),
		"delta":        result.Entry.Delta,
	})
	return result, nil
}

// resolveConflict turns a unique-key conflict raised inside the transaction
// into the duplicate result the first request produced.
func (s *Service) resolveConflict(ctx context.Context, req entity.MutationRequest, err error) (*entity.MutationResult, error) {
	if !errs.IsAlreadyApplied(err) {
		return nil, err
	}

	existing, _, lookupErr := s.idempotency.CheckIdempotency(ctx, req)
	if lookupErr != nil {
		return nil, lookupErr
	}
	return s.duplicateResult(ctx, req.UserID, req.DedupKey(), existing)
}

func (s *Service) duplicateResult(ctx context.Context, userID, key string, existing *entity.LedgerEntry) (*entity.MutationResult, error) {
	fields := map[string]any{
		"user_id":         userID,
		"idempotency_key": key,
	}
	if existing != nil {
		fields["entry_id"] = existing.ID.String()
		if existing.UserID != userID {
			fields["owner_id"] = existing.UserID
			s.logger.Warn("Idempotency key already applied to a different user", fields)
		}
	}
	s.logger.Info("Mutation already applied", fields)

	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.MutationResult{
		Balance:   balance,
		Entry:     existing,
		Duplicate: true,
	}, nil
}

func duplicateError(req entity.MutationRequest) error {
	if req.ExternalPaymentID != "" {
		return errs.NewDuplicatePaymentError(req.ExternalPaymentID)
	}
	return errs.NewDuplicateRequestError(req.IdempotencyKey)
}

func outcomeOf(result *entity.MutationResult, err error) string {
	switch {
	case err == nil && result.Duplicate:
		return OutcomeDuplicate
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, errs.ErrInsufficientBalance):
		return OutcomeInsufficient
	case errors.Is(err, errs.ErrStoreUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, errs.ErrInvalidUserID), errors.Is(err, errs.ErrInvalidDelta),
		errors.Is(err, errs.ErrUnknownReason), errors.Is(err, errs.ErrInvalidRequest),
		errors.Is(err, errs.ErrInvalidIdempotencyKey), errors.Is(err, errs.ErrAmountOverflow):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}
