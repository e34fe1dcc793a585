package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/textproto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// stateFailed labels deliveries that failed while applying
const stateFailed = "failed"

// envelope is the outer webhook document
type envelope struct {
	Provider    string          `json:"provider"`
	PaymentData json.RawMessage `json:"paymentData"`
}

// Handle runs one delivery through received, verified, applied and acknowledged.
// Rejections leave no trace in the ledger; apply failures are returned so the
// provider retries.
func (s *Service) Handle(ctx context.Context, delivery entity.WebhookDelivery) (*entity.WebhookOutcome, error) {
	ctx, span := tracer.Start(ctx, "webhook.Handle")
	defer span.End()

	outcome := &entity.WebhookOutcome{State: entity.WebhookReceived}
	err := s.handle(ctx, delivery, outcome)

	span.SetAttributes(
		attribute.String("payment.provider", string(outcome.Provider)),
		attribute.String("webhook.state", string(outcome.State)),
	)

	state := string(outcome.State)
	if err != nil && !outcome.State.IsTerminal() {
		state = stateFailed
	}
	s.metrics.IncWebhook(providerLabel(outcome.Provider), state)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return outcome, err
}

func (s *Service) handle(ctx context.Context, delivery entity.WebhookDelivery, outcome *entity.WebhookOutcome) error {
	var env envelope
	if err := json.Unmarshal(delivery.Body, &env); err != nil {
		return s.reject(outcome, "malformed envelope", fmt.Errorf("%w: %v", errs.ErrInvalidWebhookPayload, err))
	}

	gateway, err := s.gateways.Lookup(env.Provider)
	if err != nil {
		return s.reject(outcome, "unknown provider", err)
	}
	outcome.Provider = gateway.Provider()

	signature := delivery.Headers[textproto.CanonicalMIMEHeaderKey(gateway.SignatureHeader())]
	if err := gateway.Verify(delivery.Body, signature); err != nil {
		return s.reject(outcome, "signature verification failed", err)
	}
	if err := s.advance(outcome, entity.WebhookVerified); err != nil {
		return err
	}

	notification, err := gateway.Decode(env.PaymentData)
	if err != nil {
		return s.reject(outcome, "invalid payment data", err)
	}
	outcome.TransactionID = notification.TransactionID
	outcome.UserID = notification.UserID

	if !notification.Completed {
		return s.reject(outcome, "payment not completed",
			fmt.Errorf("%w: status %q", errs.ErrPaymentNotCompleted, notification.Status))
	}

	credits, err := entity.CreditsForAmount(notification.Amount, s.exchangeRate)
	if err != nil {
		return s.reject(outcome, "amount buys no credits", fmt.Errorf("%w: %v", errs.ErrInvalidWebhookPayload, err))
	}
	outcome.Credits = credits

	return s.apply(ctx, notification, outcome)
}

// apply credits the purchase and stores its notification in one transaction
func (s *Service) apply(ctx context.Context, n *entity.PaymentNotification, outcome *entity.WebhookOutcome) error {
	req := entity.MutationRequest{
		UserID:            n.UserID,
		Delta:             outcome.Credits,
		Reason:            entity.ReasonPurchase,
		ExternalPaymentID: n.ExternalPaymentID(),
		Reference:         n.TransactionID,
		Note:              fmt.Sprintf("%s payment of %s", n.Provider, n.Amount.String()),
	}

	var (
		result       *entity.MutationResult
		notification *entity.Notification
	)
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		r, err := s.credits.ApplyInTx(txCtx, req)
		if err != nil {
			return err
		}
		note := entity.NewCreditsAddedNotification(n.UserID, outcome.Credits, n.Provider, r.Entry, s.timeProvider)
		if err := s.uow.GetNotificationRepository(txCtx).Create(txCtx, note); err != nil {
			return fmt.Errorf("failed to store notification: %w", err)
		}
		result, notification = r, note
		return nil
	})

	if err != nil && errs.IsAlreadyApplied(err) {
		return s.acknowledgeDuplicate(ctx, n, outcome)
	}
	if err != nil {
		s.logger.Error("Failed to apply payment", map[string]any{
			"provider":       string(n.Provider),
			"transaction_id": n.TransactionID,
			"user_id":        n.UserID,
			"error":          err.Error(),
		})
		return fmt.Errorf("failed to apply payment %s: %w", n.ExternalPaymentID(), err)
	}

	if err := s.advance(outcome, entity.WebhookApplied); err != nil {
		return err
	}
	outcome.Balance = result.Balance

	s.credits.Announce(ctx, result)
	if err := s.publisher.Publish(context.WithoutCancel(ctx), entity.NewNotificationCreatedEvent(notification)); err != nil {
		s.logger.Warn("Failed to publish notification", map[string]any{
			"user_id":         n.UserID,
			"notification_id": notification.ID.String(),
			"error":           err.Error(),
		})
	}

	s.logger.Info("Payment credited", map[string]any{
		"provider":       string(n.Provider),
		"transaction_id": n.TransactionID,
		"user_id":        n.UserID,
		"credits":        outcome.Credits,
		"entry_id":       result.Entry.ID.String(),
	})
	return s.advance(outcome, entity.WebhookAcknowledged)
}

func (s *Service) acknowledgeDuplicate(ctx context.Context, n *entity.PaymentNotification, outcome *entity.WebhookOutcome) error {
	outcome.Duplicate = true
	if err := s.advance(outcome, entity.WebhookApplied); err != nil {
		return err
	}

	balance, err := s.credits.GetBalance(ctx, n.UserID)
	if err != nil {
		return err
	}
	outcome.Balance = balance

	s.logger.Info("Duplicate payment delivery ignored", map[string]any{
		"provider":       string(n.Provider),
		"transaction_id": n.TransactionID,
		"user_id":        n.UserID,
	})
	return s.advance(outcome, entity.WebhookAcknowledged)
}

// reject ends the delivery without touching the ledger
func (s *Service) reject(outcome *entity.WebhookOutcome, reason string, cause error) error {
	if err := s.advance(outcome, entity.WebhookRejected); err != nil {
		return err
	}

	rejected := errs.NewWebhookRejectedError(string(outcome.Provider), outcome.TransactionID, reason, cause)
	fields := rejected.LogFields()
	if errors.Is(cause, errs.ErrPaymentNotCompleted) {
		s.logger.Info("Webhook acknowledged without credit", fields)
	} else {
		s.logger.Warn("Webhook rejected", fields)
	}
	return rejected
}

func (s *Service) advance(outcome *entity.WebhookOutcome, next entity.WebhookState) error {
	if !outcome.State.CanTransition(next) {
		s.logger.Error("Illegal webhook state transition", map[string]any{
			"from": string(outcome.State),
			"to":   string(next),
		})
		return fmt.Errorf("%w: webhook cannot move from %s to %s", errs.ErrInternalServer, outcome.State, next)
	}
	outcome.State = next
	return nil
}

func providerLabel(p entity.PaymentProvider) string {
	if p == "" {
		return "unknown"
	}
	return string(p)
}
