package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
)

// maxWebhookBody bounds a provider notification
const maxWebhookBody = 1 << 20

// WebhookHandler receives payment provider notifications
type WebhookHandler struct {
	webhooks usecase.WebhookUseCase
	logger   coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(webhooks usecase.WebhookUseCase, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, logger: logger}
}

// Handle handles POST /webhooks/payments.
// 200 acknowledges, 202 means the payment is not completed yet, 4xx is a
// permanent rejection and 500 asks the provider to retry.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, h.logger, "read webhook", errs.ErrInvalidWebhookPayload)
		return
	}

	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	outcome, err := h.webhooks.Handle(c.Request.Context(), entity.WebhookDelivery{
		Body:    body,
		Headers: headers,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.NewWebhookResponse(outcome))
	case errors.Is(err, errs.ErrPaymentNotCompleted):
		c.JSON(http.StatusAccepted, dto.NewWebhookResponse(outcome))
	case errs.IsWebhookRejectedError(err):
		respondError(c, h.logger, "handle webhook", err)
	default:
		h.logger.Error("Webhook processing failed, provider will retry", map[string]any{
			"provider":       string(outcome.Provider),
			"transaction_id": outcome.TransactionID,
			"error":          err.Error(),
		})
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    errs.ErrorCode(err),
			Message: "Webhook could not be processed",
		})
	}
}

// Options answers preflight requests that did not come from a browser origin
func (h *WebhookHandler) Options(c *gin.Context) {
	c.Header("Allow", "POST, OPTIONS")
	c.Status(http.StatusNoContent)
}
