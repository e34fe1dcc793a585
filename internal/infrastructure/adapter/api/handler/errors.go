package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// StatusCode maps domain errors to HTTP status codes
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrPaymentNotCompleted):
		return http.StatusAccepted
	case errors.Is(err, errs.ErrInvalidAmount),
		errors.Is(err, errs.ErrAmountOverflow),
		errors.Is(err, errs.ErrInvalidUserID),
		errors.Is(err, errs.ErrInvalidDelta),
		errors.Is(err, errs.ErrUnknownReason),
		errors.Is(err, errs.ErrInvalidIdempotencyKey),
		errors.Is(err, errs.ErrInvalidWebhookPayload),
		errors.Is(err, errs.ErrUnknownProvider),
		errors.Is(err, errs.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidSignature), errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrUnknownActionKind),
		errors.Is(err, errs.ErrNotFound),
		errors.Is(err, errs.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrActionInFlight),
		errors.Is(err, errs.ErrLockHeld),
		errors.Is(err, errs.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response. Server errors hide their details.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := StatusCode(err)
	message := err.Error()

	fields := map[string]any{
		"operation":  operation,
		"status":     status,
		"error":      err.Error(),
		"user_id":    middleware.UserID(c),
		"request_id": c.GetHeader(middleware.RequestIDHeader),
	}
	var detailed interface{ LogFields() map[string]any }
	if errors.As(err, &detailed) {
		for k, v := range detailed.LogFields() {
			fields[k] = v
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
		message = http.StatusText(status)
	} else {
		logger.Debug("Request rejected", fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

// badRequest answers a malformed request
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrInvalidRequest),
		Message: message,
	})
}
