package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

func TestParsePaymentProvider(t *testing.T) {
	p, err := ParsePaymentProvider("paypal")
	assert.NoError(t, err)
	assert.Equal(t, ProviderPayPal, p)

	_, err = ParsePaymentProvider("stripe")
	assert.ErrorIs(t, err, errs.ErrUnknownProvider)
}

func TestExternalPaymentIDIsNamespaced(t *testing.T) {
	n := &PaymentNotification{Provider: ProviderCreem, TransactionID: "T1"}
	assert.Equal(t, "creem:T1", n.ExternalPaymentID())
}

func TestWebhookStateTransitions(t *testing.T) {
	allowed := [][2]WebhookState{
		{WebhookReceived, WebhookVerified},
		{WebhookReceived, WebhookRejected},
		{WebhookVerified, WebhookApplied},
		{WebhookVerified, WebhookRejected},
		{WebhookApplied, WebhookAcknowledged},
	}
	for _, tr := range allowed {
		assert.True(t, tr[0].CanTransition(tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]WebhookState{
		{WebhookReceived, WebhookApplied},
		{WebhookApplied, WebhookRejected},
		{WebhookAcknowledged, WebhookReceived},
		{WebhookRejected, WebhookVerified},
	}
	for _, tr := range denied {
		assert.False(t, tr[0].CanTransition(tr[1]), "%s -> %s", tr[0], tr[1])
	}

	assert.True(t, WebhookAcknowledged.IsTerminal())
	assert.True(t, WebhookRejected.IsTerminal())
	assert.False(t, WebhookApplied.IsTerminal())
}
