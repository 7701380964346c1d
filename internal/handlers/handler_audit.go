package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the read-only ledger health audit.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers audit routes relative to a branch group.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/audit", h.runAudit)
}

// runAudit godoc
// @Summary Run the ledger health audit
// @Description Scans accounts, posted journals, and open billing documents and reports every structural issue found
// @Tags audit
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Success 200 {object} dto.AuditReportResponse
// @Failure 500 {object} map[string]string "Failed to run audit"
// @Security BearerAuth
// @Router /branches/{branchID}/audit [get]
func (h *auditHandler) runAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	issues, err := h.auditService.RunAudit(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Failed to run ledger audit", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run audit"})
		return
	}

	report := dto.ToAuditReportResponse(issues)
	logger.Info("Ledger audit completed",
		slog.Int("critical_count", report.CriticalCount),
		slog.Int("warning_count", report.WarningCount))
	c.JSON(http.StatusOK, report)
}
