package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/messaging"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// streamHeartbeat keeps idle change-feed connections open through proxies
const streamHeartbeat = 25 * time.Second

// CreditHandler serves balances, ledger history and the change feed
type CreditHandler struct {
	credits    usecase.CreditAccessor
	subscriber messaging.ChangeFeedSubscriber
	logger     coreport.Logger
	heartbeat  time.Duration
}

// NewCreditHandler creates a new credit handler instance
func NewCreditHandler(
	credits usecase.CreditAccessor,
	subscriber messaging.ChangeFeedSubscriber,
	logger coreport.Logger,
) *CreditHandler {
	return &CreditHandler{
		credits:    credits,
		subscriber: subscriber,
		logger:     logger,
		heartbeat:  streamHeartbeat,
	}
}

// GetBalance handles GET /v1/credits/balance
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID := middleware.UserID(c)

	balance, err := h.credits.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "get balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBalanceResponse(userID, balance))
}

// GetLedger handles GET /v1/credits/ledger?limit=
func (h *CreditHandler) GetLedger(c *gin.Context) {
	userID := middleware.UserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		badRequest(c, "limit must be a non-negative integer")
		return
	}

	entries, err := h.credits.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, "get ledger", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLedgerResponse(userID, entries))
}

// Stream handles GET /v1/credits/stream. It sends the current balance, then
// every change-feed event for the user as server-sent events.
func (h *CreditHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	// Subscribe before the snapshot so no change falls between them.
	events, unsubscribe, err := h.subscriber.Subscribe(ctx, userID)
	if err != nil {
		respondError(c, h.logger, "subscribe to change feed", err)
		return
	}
	defer unsubscribe()

	balance, err := h.credits.GetBalance(ctx, userID)
	if err != nil {
		respondError(c, h.logger, "get balance", err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("balance", dto.NewBalanceResponse(userID, balance))
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	h.logger.Debug("Change feed stream opened", map[string]any{"user_id": userID})
	c.Stream(func(io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		case <-ctx.Done():
			return false
		}
	})
	h.logger.Debug("Change feed stream closed", map[string]any{"user_id": userID})
}
