package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// NotificationHandler serves the notification centre
type NotificationHandler struct {
	notifications usecase.NotificationUseCase
	logger        coreport.Logger
}

// NewNotificationHandler creates a new notification handler instance
func NewNotificationHandler(notifications usecase.NotificationUseCase, logger coreport.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// List handles GET /v1/notifications?limit=&unread=
func (h *NotificationHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		badRequest(c, "limit must be a non-negative integer")
		return
	}
	unreadOnly, err := strconv.ParseBool(c.DefaultQuery("unread", "false"))
	if err != nil {
		badRequest(c, "unread must be a boolean")
		return
	}

	notifications, err := h.notifications.List(c.Request.Context(), middleware.UserID(c), limit, unreadOnly)
	if err != nil {
		respondError(c, h.logger, "list notifications", err)
		return
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{Notifications: notifications})
}

// MarkRead handles POST /v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid notification ID format")
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.logger, "mark notification read", err)
		return
	}

	c.Status(http.StatusNoContent)
}
