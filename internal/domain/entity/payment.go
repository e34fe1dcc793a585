package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// PaymentProvider tags which provider sent a webhook
type PaymentProvider string

// Supported providers
const (
	ProviderPayPal PaymentProvider = "paypal"
	ProviderCreem  PaymentProvider = "creem"
)

// ParsePaymentProvider converts the envelope tag into a provider
func ParsePaymentProvider(s string) (PaymentProvider, error) {
	switch p := PaymentProvider(s); p {
	case ProviderPayPal, ProviderCreem:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", errs.ErrUnknownProvider, s)
}

// PaymentNotification is the provider-neutral form of a decoded webhook payload
type PaymentNotification struct {
	Provider      PaymentProvider
	TransactionID string
	UserID        string
	Amount        decimal.Decimal
	Status        string
	Completed     bool
}

// ExternalPaymentID namespaces the provider transaction ID for the ledger's unique key
func (n *PaymentNotification) ExternalPaymentID() string {
	return string(n.Provider) + ":" + n.TransactionID
}

// WebhookState is a step of webhook processing
type WebhookState string

// Webhook states
const (
	WebhookReceived     WebhookState = "received"
	WebhookVerified     WebhookState = "verified"
	WebhookApplied      WebhookState = "applied"
	WebhookAcknowledged WebhookState = "acknowledged"
	WebhookRejected     WebhookState = "rejected"
)

var webhookTransitions = map[WebhookState][]WebhookState{
	WebhookReceived: {WebhookVerified, WebhookRejected},
	WebhookVerified: {WebhookApplied, WebhookRejected},
	WebhookApplied:  {WebhookAcknowledged},
}

// CanTransition reports whether the state machine allows s -> next
func (s WebhookState) CanTransition(next WebhookState) bool {
	for _, allowed := range webhookTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s WebhookState) IsTerminal() bool {
	return s == WebhookAcknowledged || s == WebhookRejected
}

// WebhookDelivery is one inbound webhook request
type WebhookDelivery struct {
	Body    []byte            // Raw request body, the signed bytes
	Headers map[string]string // Request headers keyed by canonical MIME name
}

// WebhookOutcome reports how a delivery was handled
type WebhookOutcome struct {
	State         WebhookState
	Provider      PaymentProvider
	TransactionID string
	UserID        string
	Credits       int64
	Balance       Balance
	Duplicate     bool
}
