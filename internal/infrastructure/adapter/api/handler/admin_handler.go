package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	coreport "github.com/localhy/credit-ledger/internal/domain/port/core"
	"github.com/localhy/credit-ledger/internal/domain/port/usecase"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/api/middleware"
)

// AdminKeyPrefix namespaces operator idempotency keys away from gate and seed keys
const AdminKeyPrefix = "admin:"

// AdminHandler serves operator grants and ledger audits
type AdminHandler struct {
	credits usecase.CreditUseCase
	logger  coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(credits usecase.CreditUseCase, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{credits: credits, logger: logger}
}

// Adjust handles POST /admin/credits/adjust
func (h *AdminHandler) Adjust(c *gin.Context) {
	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	operator := middleware.UserID(c)
	result, err := h.credits.ApplyDelta(c.Request.Context(), entity.MutationRequest{
		UserID:         req.UserID,
		Delta:          req.Delta,
		Reason:         entity.Reason(req.Reason),
		Pool:           entity.CreditPool(req.Pool),
		IdempotencyKey: AdminKeyPrefix + req.IdempotencyKey,
		Reference:      "operator:" + operator,
		Note:           req.Note,
	})
	if err != nil {
		respondError(c, h.logger, "adjust credits", err)
		return
	}

	h.logger.Info("Operator adjusted credits", map[string]any{
		"operator":  operator,
		"user_id":   req.UserID,
		"delta":     req.Delta,
		"reason":    req.Reason,
		"duplicate": result.Duplicate,
	})

	resp := dto.AdjustResponse{
		UserID:      req.UserID,
		CashCredits: result.Balance.CashCredits,
		FreeCredits: result.Balance.FreeCredits,
		Duplicate:   result.Duplicate,
	}
	if result.Entry != nil {
		resp.EntryID = result.Entry.ID.String()
	}
	c.JSON(http.StatusOK, resp)
}

// Audit handles GET /admin/credits/:userId/audit
func (h *AdminHandler) Audit(c *gin.Context) {
	report, err := h.credits.Audit(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, "audit ledger", err)
		return
	}

	if !report.Consistent {
		h.logger.Warn("Stored balance does not match the ledger", map[string]any{
			"user_id": report.UserID,
			"stored":  report.Stored,
			"ledger":  report.Ledger,
		})
	}
	c.JSON(http.StatusOK, report)
}
