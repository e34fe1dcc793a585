package dto

import "github.com/localhy/credit-ledger/internal/domain/entity"

// WebhookResponse acknowledges a payment webhook
type WebhookResponse struct {
	State         string `json:"state"`
	Provider      string `json:"provider,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	Credits       int64  `json:"credits,omitempty"`
	Duplicate     bool   `json:"duplicate,omitempty"`
}

// NewWebhookResponse converts an outcome
func NewWebhookResponse(o *entity.WebhookOutcome) WebhookResponse {
	return WebhookResponse{
		State:         string(o.State),
		Provider:      string(o.Provider),
		TransactionID: o.TransactionID,
		Credits:       o.Credits,
		Duplicate:     o.Duplicate,
	}
}
