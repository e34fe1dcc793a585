package payment

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	port "github.com/localhy/credit-ledger/internal/domain/port/payment"
)

// DefaultCreemSignatureHeader carries the Creem signature
const DefaultCreemSignatureHeader = "creem-signature"

const creemCompleted = "completed"

type creemPayload struct {
	TransactionID string           `json:"transaction_id" validate:"required,max=200"`
	Status        string           `json:"status" validate:"required"`
	Amount        *decimal.Decimal `json:"amount"`
	Metadata      struct {
		UserID string `json:"userId"`
	} `json:"metadata"`
}

// Creem verifies and decodes Creem checkout notifications
type Creem struct {
	secret string
	header string
}

var _ port.Gateway = (*Creem)(nil)

// NewCreem creates a Creem gateway; an empty header selects the default
func NewCreem(secret, header string) *Creem {
	if header == "" {
		header = DefaultCreemSignatureHeader
	}
	return &Creem{secret: secret, header: header}
}

// Provider returns creem
func (c *Creem) Provider() entity.PaymentProvider { return entity.ProviderCreem }

// SignatureHeader returns the configured signature header
func (c *Creem) SignatureHeader() string { return c.header }

// Verify checks the body signature
func (c *Creem) Verify(body []byte, signature string) error {
	return VerifySignature(c.secret, body, signature)
}

// Decode reads the Creem payload. Amount may be a JSON number or string.
func (c *Creem) Decode(data json.RawMessage) (*entity.PaymentNotification, error) {
	var payload creemPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidWebhookPayload, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidWebhookPayload, err)
	}

	n := &entity.PaymentNotification{
		Provider:      entity.ProviderCreem,
		TransactionID: payload.TransactionID,
		Status:        payload.Status,
		Completed:     payload.Status == creemCompleted,
	}
	if !n.Completed {
		return n, nil
	}

	if err := entity.ValidateUserID(payload.Metadata.UserID); err != nil {
		return nil, fmt.Errorf("%w: metadata.userId: %v", errs.ErrInvalidWebhookPayload, err)
	}
	if payload.Amount == nil || !payload.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidWebhookPayload)
	}

	n.UserID = payload.Metadata.UserID
	n.Amount = *payload.Amount
	return n, nil
}
