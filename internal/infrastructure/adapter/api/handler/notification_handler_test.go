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

func newNotificationRouter(notifications *ucmocks.MockNotificationUseCase) http.Handler {
	h := NewNotificationHandler(notifications, testLogger)
	router := newTestRouter("user-1")
	router.GET("/notifications", h.List)
	router.POST("/notifications/:id/read", h.MarkRead)
	return router
}

func TestNotificationHandler_List(t *testing.T) {
	t.Run("Unread only", func(t *testing.T) {
		notifications := ucmocks.NewMockNotificationUseCase(t)
		notifications.EXPECT().List(mock.Anything, "user-1", 5, true).Return([]*entity.Notification{
			{ID: uuid.Must(uuid.NewV7()), UserID: "user-1", Title: "Credits added"},
		}, nil)

		rec := serve(newNotificationRouter(notifications), http.MethodGet, "/notifications?limit=5&unread=true", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.NotificationListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Notifications, 1)
		assert.Equal(t, "Credits added", resp.Notifications[0].Title)
	})

	t.Run("Bad unread flag", func(t *testing.T) {
		rec := serve(newNotificationRouter(ucmocks.NewMockNotificationUseCase(t)), http.MethodGet, "/notifications?unread=maybe", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	testCases := []struct {
		name           string
		path           string
		setup          func(n *ucmocks.MockNotificationUseCase)
		expectedStatus int
	}{
		{
			name: "Marked",
			path: "/notifications/" + id.String() + "/read",
			setup: func(n *ucmocks.MockNotificationUseCase) {
				n.EXPECT().MarkRead(mock.Anything, "user-1", id).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "Not the owner",
			path: "/notifications/" + id.String() + "/read",
			setup: func(n *ucmocks.MockNotificationUseCase) {
				n.EXPECT().MarkRead(mock.Anything, "user-1", id).Return(errs.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed ID",
			path:           "/notifications/42/read",
			setup:          func(*ucmocks.MockNotificationUseCase) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			notifications := ucmocks.NewMockNotificationUseCase(t)
			tc.setup(notifications)

			rec := serve(newNotificationRouter(notifications), http.MethodPost, tc.path, "", nil)

			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}
