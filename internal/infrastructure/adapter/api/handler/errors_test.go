package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{errs.NewInsufficientBalanceError("u1", 5, 1, 1), http.StatusPaymentRequired},
		{errs.ErrInvalidIdempotencyKey, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", errs.ErrInvalidDelta), http.StatusBadRequest},
		{errs.ErrUnknownActionKind, http.StatusNotFound},
		{errs.ErrActionInFlight, http.StatusConflict},
		{errs.NewWebhookRejectedError("paypal", "T1", "bad signature", errs.ErrInvalidSignature), http.StatusUnauthorized},
		{errs.NewWebhookRejectedError("paypal", "T1", "pending", errs.ErrPaymentNotCompleted), http.StatusAccepted},
		{errs.NewStoreError("lock account", fmt.Errorf("timeout")), http.StatusServiceUnavailable},
		{errs.ErrCompensationFailed, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusCode(tc.err))
		})
	}
}
