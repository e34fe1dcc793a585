package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	ucmocks "github.com/localhy/credit-ledger/mocks/port/usecase"
)

func newAdminRouter(credits *ucmocks.MockCreditUseCase) http.Handler {
	h := NewAdminHandler(credits, testLogger)
	router := newTestRouter("ops-1")
	router.POST("/admin/credits/adjust", h.Adjust)
	router.GET("/admin/credits/:userId/audit", h.Audit)
	return router
}

func TestAdminHandler_Adjust(t *testing.T) {
	entry := &entity.LedgerEntry{ID: uuid.Must(uuid.NewV7())}

	testCases := []struct {
		name           string
		body           string
		setup          func(c *ucmocks.MockCreditUseCase)
		expectedStatus int
		expectedEntry  string
	}{
		{
			name: "Grant",
			body: `{"userId":"user-1","delta":50,"reason":"referral_reward","idempotencyKey":"reward-7","note":"referral hired"}`,
			setup: func(c *ucmocks.MockCreditUseCase) {
				c.EXPECT().ApplyDelta(mock.Anything, mock.MatchedBy(func(req entity.MutationRequest) bool {
					return req.UserID == "user-1" &&
						req.Delta == 50 &&
						req.Reason == entity.ReasonReferralReward &&
						req.IdempotencyKey == "admin:reward-7" &&
						req.Reference == "operator:ops-1"
				})).Return(&entity.MutationResult{Balance: entity.Balance{FreeCredits: 50}, Entry: entry}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedEntry:  entry.ID.String(),
		},
		{
			name:           "Purchase is not an operator reason",
			body:           `{"userId":"user-1","delta":50,"reason":"purchase","idempotencyKey":"k"}`,
			setup:          func(*ucmocks.MockCreditUseCase) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero delta",
			body:           `{"userId":"user-1","delta":0,"reason":"admin_adjustment","idempotencyKey":"k"}`,
			setup:          func(*ucmocks.MockCreditUseCase) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Debit beyond balance",
			body: `{"userId":"user-1","delta":-500,"reason":"admin_adjustment","idempotencyKey":"k"}`,
			setup: func(c *ucmocks.MockCreditUseCase) {
				c.EXPECT().ApplyDelta(mock.Anything, mock.Anything).
					Return(nil, errs.NewInsufficientBalanceError("user-1", 500, 10, 0))
			},
			expectedStatus: http.StatusPaymentRequired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			credits := ucmocks.NewMockCreditUseCase(t)
			tc.setup(credits)

			rec := serve(newAdminRouter(credits), http.MethodPost, "/admin/credits/adjust", tc.body, nil)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedEntry != "" {
				var resp dto.AdjustResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.expectedEntry, resp.EntryID)
				assert.Equal(t, int64(50), resp.FreeCredits)
			}
		})
	}
}

func TestAdminHandler_Audit(t *testing.T) {
	credits := ucmocks.NewMockCreditUseCase(t)
	credits.EXPECT().Audit(mock.Anything, "user-9").Return(
		entity.NewAuditReport("user-9", entity.Balance{CashCredits: 30}, entity.LedgerTotals{Cash: 25, Entries: 2}), nil)

	rec := serve(newAdminRouter(credits), http.MethodGet, "/admin/credits/user-9/audit", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var report entity.AuditReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Consistent)
	assert.Equal(t, int64(25), report.Ledger.CashCredits)
}

func TestHealthHandler(t *testing.T) {
	testCases := []struct {
		name           string
		dbErr          error
		expectedStatus int
		expectedState  string
	}{
		{"Healthy", nil, http.StatusOK, "ok"},
		{"Database down", errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(testLogger, HealthCheck{
				Name:  "database",
				Check: func(context.Context) error { return tc.dbErr },
			})
			router := newTestRouter("")
			router.GET("/healthz", h.Health)

			rec := serve(router, http.MethodGet, "/healthz", "", nil)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			var resp struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.expectedState, resp.Status)
			assert.Contains(t, resp.Checks, "database")
		})
	}
}
