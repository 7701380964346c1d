package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/core/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles period locking and period-closing journal generation.
type periodHandler struct {
	periodLockService portssvc.PeriodLockSvcFacade
	auditService      portssvc.AuditSvcFacade
	closingService    portssvc.ClosingSvcFacade
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(pls portssvc.PeriodLockSvcFacade, aus portssvc.AuditSvcFacade, cls portssvc.ClosingSvcFacade) *periodHandler {
	return &periodHandler{
		periodLockService: pls,
		auditService:      aus,
		closingService:    cls,
	}
}

// registerPeriodRoutes registers period lock and closing routes relative to a branch group.
func registerPeriodRoutes(rg *gin.RouterGroup, periodLockService portssvc.PeriodLockSvcFacade, auditService portssvc.AuditSvcFacade, closingService portssvc.ClosingSvcFacade) {
	h := newPeriodHandler(periodLockService, auditService, closingService)

	period := rg.Group("/period")
	{
		period.GET("/lock", h.getLockStatus)
		period.POST("/lock", h.lockPeriod)
		period.DELETE("/lock", h.unlockPeriod)
		period.POST("/closing-journal", h.generateClosingJournal)
	}
}

// getLockStatus godoc
// @Summary Get the current period lock state
// @Description Returns the lock date, or null when the ledger is fully open
// @Tags period
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 500 {object} map[string]string "Failed to read lock state"
// @Security BearerAuth
// @Router /branches/{branchID}/period/lock [get]
func (h *periodHandler) getLockStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	lockDate, err := h.periodLockService.GetLockDate(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read lock state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read lock state"})
		return
	}

	c.JSON(http.StatusOK, dto.LockStatusResponse{LockDate: lockDate})
}

// lockPeriod godoc
// @Summary Lock the ledger up to a date
// @Description Runs the health audit first; any CRITICAL issue blocks the lock and the full report is returned
// @Tags period
// @Accept  json
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   lock body dto.LockPeriodRequest true "Lock date"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} dto.AuditReportResponse "Audit found CRITICAL issues"
// @Failure 500 {object} map[string]string "Failed to lock period"
// @Security BearerAuth
// @Router /branches/{branchID}/period/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.LockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for LockPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Audit gate: the lock service itself never re-checks, so this is the
	// only place CRITICAL issues can stop a lock.
	issues, err := h.auditService.RunAudit(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Health audit failed before period lock", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run pre-lock audit"})
		return
	}
	report := dto.ToAuditReportResponse(issues)
	if !report.CanLockPeriod {
		logger.Warn("Period lock refused by audit gate",
			slog.Int("critical_count", report.CriticalCount),
			slog.String("lock_date", req.LockDate.String()))
		c.JSON(http.StatusConflict, report)
		return
	}

	if err := h.periodLockService.LockPeriod(c.Request.Context(), req.LockDate, userID); err != nil {
		logger.Error("Failed to lock period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock period"})
		return
	}

	logger.Info("Period locked", slog.String("lock_date", req.LockDate.String()))
	lockDate := req.LockDate
	c.JSON(http.StatusOK, dto.LockStatusResponse{LockDate: &lockDate})
}

// unlockPeriod godoc
// @Summary Unlock the ledger
// @Description Clears the lock date, reopening the ledger for postings on any date
// @Tags period
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to unlock period"
// @Security BearerAuth
// @Router /branches/{branchID}/period/lock [delete]
func (h *periodHandler) unlockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.periodLockService.UnlockPeriod(c.Request.Context(), userID); err != nil {
		logger.Error("Failed to unlock period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock period"})
		return
	}

	logger.Info("Period unlocked")
	c.JSON(http.StatusOK, dto.LockStatusResponse{LockDate: nil})
}

// generateClosingJournal godoc
// @Summary Generate a period-closing journal
// @Description Builds the DRAFT journal that zeroes the period's revenue and expense activity into retained earnings; the draft is returned unpersisted and goes through the normal posting path
// @Tags period
// @Accept  json
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   closing body dto.GenerateClosingRequest true "Closing period and retained earnings account"
// @Success 200 {object} dto.JournalResponse "Generated draft"
// @Success 204 "No revenue or expense activity in the period"
// @Failure 400 {object} map[string]string "Invalid input or unusable retained earnings account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate closing journal"
// @Security BearerAuth
// @Router /branches/{branchID}/period/closing-journal [post]
func (h *periodHandler) generateClosingJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.GenerateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateClosingJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.closingService.GenerateClosingJournal(c.Request.Context(), branchID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRetainedEarnings):
			logger.Warn("Unusable retained earnings account", slog.String("account_id", req.RetainedEarningsAccountID))
			c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrMissingRetainedEarnings.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Closing generation rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to generate closing journal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate closing journal"})
		}
		return
	}

	if journal == nil {
		logger.Info("No closing journal needed", slog.String("start", req.StartDate.String()), slog.String("end", req.EndDate.String()))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Closing journal generated",
		slog.String("end_date", req.EndDate.String()),
		slog.Int("line_count", len(journal.Transactions)))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
