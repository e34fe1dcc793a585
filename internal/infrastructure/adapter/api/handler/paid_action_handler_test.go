package handler

import (
	"encoding/json"
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

func newPaidActionRouter(gate *ucmocks.MockPaidActionUseCase) http.Handler {
	h := NewPaidActionHandler(gate, testLogger)
	router := newTestRouter("user-1")
	router.GET("/actions", h.ListPrices)
	router.GET("/actions/:kind/quote", h.Quote)
	router.POST("/actions/:kind/confirm", h.Confirm)
	return router
}

func TestPaidActionHandler_ListPrices(t *testing.T) {
	gate := ucmocks.NewMockPaidActionUseCase(t)
	gate.EXPECT().Prices().Return(map[entity.ActionKind]int64{
		entity.ActionCreateReferralJob: 5,
		"boost_listing":                3,
	})

	rec := serve(newPaidActionRouter(gate), http.MethodGet, "/actions", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.PriceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []dto.ActionPrice{
		{ActionKind: "boost_listing", Cost: 3},
		{ActionKind: "create_referral_job", Cost: 5},
	}, resp.Actions)
}

func TestPaidActionHandler_Quote(t *testing.T) {
	t.Run("Affordable", func(t *testing.T) {
		gate := ucmocks.NewMockPaidActionUseCase(t)
		gate.EXPECT().Evaluate(mock.Anything, "user-1", entity.ActionCreateReferralJob).
			Return(entity.NewPaidActionQuote(entity.ActionCreateReferralJob, 5, entity.Balance{CashCredits: 4, FreeCredits: 1}), nil)

		rec := serve(newPaidActionRouter(gate), http.MethodGet, "/actions/create_referral_job/quote", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.CanAfford)
		assert.Equal(t, int64(5), resp.Cost)
	})

	t.Run("Unknown action", func(t *testing.T) {
		gate := ucmocks.NewMockPaidActionUseCase(t)
		gate.EXPECT().Evaluate(mock.Anything, "user-1", entity.ActionKind("teleport")).
			Return(nil, errs.ErrUnknownActionKind)

		rec := serve(newPaidActionRouter(gate), http.MethodGet, "/actions/teleport/quote", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, errs.CodeUnknownActionKind, decodeError(t, rec).Code)
	})
}

func TestPaidActionHandler_Confirm(t *testing.T) {
	receipt := &entity.PaidActionReceipt{
		ActionKind: entity.ActionCreateReferralJob,
		Cost:       5,
		Balance:    entity.Balance{CashCredits: 7},
		EntryID:    uuid.Must(uuid.NewV7()),
		Reference:  "referral_job:42",
	}
	replayed := *receipt
	replayed.Replayed = true

	matchesRequest := mock.MatchedBy(func(req entity.PaidActionRequest) bool {
		return req.UserID == "user-1" &&
			req.ActionKind == entity.ActionCreateReferralJob &&
			req.IdempotencyToken == "tok-1" &&
			string(req.Payload) == `{"title":"Need a plumber"}`
	})

	testCases := []struct {
		name           string
		headers        map[string]string
		body           string
		setup          func(gate *ucmocks.MockPaidActionUseCase)
		expectedStatus int
		expectedCode   int
	}{
		{
			name:           "Missing idempotency key",
			body:           `{"title":"Need a plumber"}`,
			setup:          func(*ucmocks.MockPaidActionUseCase) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errs.CodeInvalidIdempotencyKey,
		},
		{
			name:           "Body is not JSON",
			headers:        map[string]string{IdempotencyKeyHeader: "tok-1"},
			body:           `title=plumber`,
			setup:          func(*ucmocks.MockPaidActionUseCase) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errs.CodeInvalidRequest,
		},
		{
			name:    "Confirmed",
			headers: map[string]string{IdempotencyKeyHeader: "tok-1"},
			body:    `{"title":"Need a plumber"}`,
			setup: func(gate *ucmocks.MockPaidActionUseCase) {
				gate.EXPECT().Confirm(mock.Anything, matchesRequest).Return(receipt, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "Replayed",
			headers: map[string]string{IdempotencyKeyHeader: "tok-1"},
			body:    `{"title":"Need a plumber"}`,
			setup: func(gate *ucmocks.MockPaidActionUseCase) {
				gate.EXPECT().Confirm(mock.Anything, matchesRequest).Return(&replayed, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Insufficient balance",
			headers: map[string]string{IdempotencyKeyHeader: "tok-1"},
			body:    `{"title":"Need a plumber"}`,
			setup: func(gate *ucmocks.MockPaidActionUseCase) {
				gate.EXPECT().Confirm(mock.Anything, matchesRequest).
					Return(nil, errs.NewInsufficientBalanceError("user-1", 5, 3, 0))
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedCode:   errs.CodeInsufficientBalance,
		},
		{
			name:    "Already in progress",
			headers: map[string]string{IdempotencyKeyHeader: "tok-1"},
			body:    `{"title":"Need a plumber"}`,
			setup: func(gate *ucmocks.MockPaidActionUseCase) {
				gate.EXPECT().Confirm(mock.Anything, matchesRequest).Return(nil, errs.ErrActionInFlight)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   errs.CodeActionInFlight,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gate := ucmocks.NewMockPaidActionUseCase(t)
			tc.setup(gate)

			rec := serve(newPaidActionRouter(gate), http.MethodPost, "/actions/create_referral_job/confirm", tc.body, tc.headers)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedCode != 0 {
				assert.Equal(t, tc.expectedCode, decodeError(t, rec).Code)
				return
			}

			var resp dto.ReceiptResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, receipt.EntryID.String(), resp.EntryID)
			assert.Equal(t, int64(7), resp.CashCredits)
		})
	}
}
