package payment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	port "github.com/localhy/credit-ledger/internal/domain/port/payment"
)

// DefaultPayPalSignatureHeader carries the PayPal signature
const DefaultPayPalSignatureHeader = "X-Paypal-Signature"

const payPalCompleted = "Completed"

var validate = validator.New()

type payPalPayload struct {
	TxnID         string `json:"txn_id" validate:"required,max=200"`
	PaymentStatus string `json:"payment_status" validate:"required"`
	Custom        string `json:"custom"`
	McGross       string `json:"mc_gross"`
}

// payPalCustom is the JSON document carried in the custom field
type payPalCustom struct {
	UserID string           `json:"userId"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// PayPal verifies and decodes PayPal IPN-style notifications
type PayPal struct {
	secret string
	header string
}

var _ port.Gateway = (*PayPal)(nil)

// NewPayPal creates a PayPal gateway; an empty header selects the default
func NewPayPal(secret, header string) *PayPal {
	if header == "" {
		header = DefaultPayPalSignatureHeader
	}
	return &PayPal{secret: secret, header: header}
}

// Provider returns paypal
func (p *PayPal) Provider() entity.PaymentProvider { return entity.ProviderPayPal }

// SignatureHeader returns the configured signature header
func (p *PayPal) SignatureHeader() string { return p.header }

// Verify checks the body signature
func (p *PayPal) Verify(body []byte, signature string) error {
	return VerifySignature(p.secret, body, signature)
}

// Decode reads the PayPal payload. The credited amount is mc_gross; when the
// custom document also carries an amount it must match mc_gross.
func (p *PayPal) Decode(data json.RawMessage) (*entity.PaymentNotification, error) {
	var payload payPalPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidWebhookPayload, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidWebhookPayload, err)
	}

	n := &entity.PaymentNotification{
		Provider:      entity.ProviderPayPal,
		TransactionID: payload.TxnID,
		Status:        payload.PaymentStatus,
		Completed:     payload.PaymentStatus == payPalCompleted,
	}
	if !n.Completed {
		return n, nil
	}

	if strings.TrimSpace(payload.Custom) == "" {
		return nil, fmt.Errorf("%w: custom is required", errs.ErrInvalidWebhookPayload)
	}
	var custom payPalCustom
	if err := json.Unmarshal([]byte(payload.Custom), &custom); err != nil {
		return nil, fmt.Errorf("%w: custom: %v", errs.ErrInvalidWebhookPayload, err)
	}
	if err := entity.ValidateUserID(custom.UserID); err != nil {
		return nil, fmt.Errorf("%w: custom.userId: %v", errs.ErrInvalidWebhookPayload, err)
	}

	gross, err := entity.ParseCurrencyAmount(payload.McGross)
	if err != nil {
		return nil, fmt.Errorf("%w: mc_gross: %v", errs.ErrInvalidWebhookPayload, err)
	}
	if custom.Amount != nil && !custom.Amount.Equal(gross) {
		return nil, fmt.Errorf("%w: custom.amount %s does not match mc_gross %s",
			errs.ErrInvalidWebhookPayload, custom.Amount.String(), gross.String())
	}

	n.UserID = custom.UserID
	n.Amount = gross
	return n, nil
}
