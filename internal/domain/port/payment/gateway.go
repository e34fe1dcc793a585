package payment

import (
	"encoding/json"

	"github.com/localhy/credit-ledger/internal/domain/entity"
)

// Gateway verifies and decodes the notifications of one payment provider
type Gateway interface {
	// Provider returns the envelope tag this gateway handles
	Provider() entity.PaymentProvider

	// SignatureHeader is the request header carrying the provider signature
	SignatureHeader() string

	// Verify checks signature against the raw request body
	//
	// Possible errors:
	// - ErrInvalidSignature: If the signature is missing, malformed or wrong
	// - ErrUnknownProvider: If the gateway has no secret configured
	Verify(body []byte, signature string) error

	// Decode turns the provider payload into a notification
	//
	// Possible errors:
	// - ErrInvalidWebhookPayload: If required fields are missing or malformed
	Decode(data json.RawMessage) (*entity.PaymentNotification, error)
}

// Gateways resolves the gateway for an envelope's provider tag
type Gateways interface {
	// Lookup returns the provider's gateway
	//
	// Possible errors:
	// - ErrUnknownProvider: If the tag names no supported or configured provider
	Lookup(provider string) (Gateway, error)
}
