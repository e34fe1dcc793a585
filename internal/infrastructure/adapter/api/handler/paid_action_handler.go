package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// IdempotencyKeyHeader carries the client's confirmation token
const IdempotencyKeyHeader = "Idempotency-Key"

// maxActionPayload bounds the JSON payload of a paid action
const maxActionPayload = 64 << 10

// PaidActionHandler serves the quote and confirm steps of paid actions
type PaidActionHandler struct {
	gate   usecase.PaidActionUseCase
	logger coreport.Logger
}

// NewPaidActionHandler creates a new paid action handler instance
func NewPaidActionHandler(gate usecase.PaidActionUseCase, logger coreport.Logger) *PaidActionHandler {
	return &PaidActionHandler{gate: gate, logger: logger}
}

// ListPrices handles GET /v1/actions
func (h *PaidActionHandler) ListPrices(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPriceListResponse(h.gate.Prices()))
}

// Quote handles GET /v1/actions/:kind/quote
func (h *PaidActionHandler) Quote(c *gin.Context) {
	kind := entity.ActionKind(c.Param("kind"))

	quote, err := h.gate.Evaluate(c.Request.Context(), middleware.UserID(c), kind)
	if err != nil {
		respondError(c, h.logger, "quote paid action", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// Confirm handles POST /v1/actions/:kind/confirm. The body is the action's own payload.
func (h *PaidActionHandler) Confirm(c *gin.Context) {
	token := c.GetHeader(IdempotencyKeyHeader)
	if token == "" {
		respondError(c, h.logger, "confirm paid action", errs.ErrInvalidIdempotencyKey)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxActionPayload))
	if err != nil {
		badRequest(c, "Request body is too large or unreadable")
		return
	}
	if len(payload) > 0 && !json.Valid(payload) {
		badRequest(c, "Request body must be JSON")
		return
	}

	receipt, err := h.gate.Confirm(c.Request.Context(), entity.PaidActionRequest{
		UserID:           middleware.UserID(c),
		ActionKind:       entity.ActionKind(c.Param("kind")),
		IdempotencyToken: token,
		Payload:          payload,
	})
	if err != nil {
		respondError(c, h.logger, "confirm paid action", err)
		return
	}

	status := http.StatusCreated
	if receipt.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.NewReceiptResponse(receipt))
}
