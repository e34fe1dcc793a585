package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	messagingmocks "github.com/localhy/credit-ledger/mocks/port/messaging"
	ucmocks "github.com/localhy/credit-ledger/mocks/port/usecase"
)

func TestCreditHandler_GetBalance(t *testing.T) {
	testCases := []struct {
		name           string
		balance        entity.Balance
		err            error
		expectedStatus int
		expectedCode   int
	}{
		{
			name:           "Success",
			balance:        entity.Balance{CashCredits: 20, FreeCredits: 5},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Store unavailable",
			err:            errs.NewStoreError("read account", assert.AnError),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   errs.CodeStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			credits := ucmocks.NewMockCreditUseCase(t)
			credits.EXPECT().GetBalance(mock.Anything, "user-1").Return(tc.balance, tc.err)

			h := NewCreditHandler(credits, messagingmocks.NewMockChangeFeedSubscriber(t), testLogger)
			router := newTestRouter("user-1")
			router.GET("/balance", h.GetBalance)

			rec := serve(router, http.MethodGet, "/balance", "", nil)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.err != nil {
				resp := decodeError(t, rec)
				assert.Equal(t, tc.expectedCode, resp.Code)
				assert.Equal(t, "Service Unavailable", resp.Message)
				return
			}

			var resp dto.BalanceResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, dto.BalanceResponse{UserID: "user-1", CashCredits: 20, FreeCredits: 5, Total: 25}, resp)
		})
	}
}

func TestCreditHandler_GetLedger(t *testing.T) {
	t.Run("Invalid limit", func(t *testing.T) {
		h := NewCreditHandler(ucmocks.NewMockCreditUseCase(t), messagingmocks.NewMockChangeFeedSubscriber(t), testLogger)
		router := newTestRouter("user-1")
		router.GET("/ledger", h.GetLedger)

		rec := serve(router, http.MethodGet, "/ledger?limit=abc", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		entry := &entity.LedgerEntry{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    "user-1",
			Delta:     -5,
			FreeDelta: -2,
			CashDelta: -3,
			Reason:    entity.ReasonPostingFee,
			CashAfter: 7,
			CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		}
		credits := ucmocks.NewMockCreditUseCase(t)
		credits.EXPECT().History(mock.Anything, "user-1", 10).Return([]*entity.LedgerEntry{entry}, nil)

		h := NewCreditHandler(credits, messagingmocks.NewMockChangeFeedSubscriber(t), testLogger)
		router := newTestRouter("user-1")
		router.GET("/ledger", h.GetLedger)

		rec := serve(router, http.MethodGet, "/ledger?limit=10", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LedgerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "posting_fee", resp.Entries[0].Reason)
		assert.Equal(t, int64(-2), resp.Entries[0].FreeDelta)
	})
}

func TestCreditHandler_Stream(t *testing.T) {
	events := make(chan entity.FeedEvent, 1)
	events <- entity.FeedEvent{
		Type:    entity.FeedBalanceChanged,
		UserID:  "user-1",
		Balance: &entity.Balance{CashCredits: 30},
		Delta:   10,
	}
	close(events)

	unsubscribed := false
	subscriber := messagingmocks.NewMockChangeFeedSubscriber(t)
	subscriber.EXPECT().Subscribe(mock.Anything, "user-1").Return(events, func() { unsubscribed = true }, nil)
	credits := ucmocks.NewMockCreditUseCase(t)
	credits.EXPECT().GetBalance(mock.Anything, "user-1").Return(entity.Balance{CashCredits: 20}, nil)

	h := NewCreditHandler(credits, subscriber, testLogger)
	router := newTestRouter("user-1")
	router.GET("/stream", h.Stream)

	rec := newStreamRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, body, "event:balance\n")
	assert.Contains(t, body, "event:balance_changed\n")
	assert.Contains(t, body, `"cashCredits":30`)
	assert.True(t, unsubscribed)
}
