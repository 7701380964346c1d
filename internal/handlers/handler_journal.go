package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/core/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers journal routes relative to a branch group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.POST("/adjustments", h.postAdjustmentJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/post", h.postDraftJournal)
	}
}

// journalErrorResponse maps service errors to HTTP responses. Validation
// failures stay distinguishable so callers can tell an unbalanced entry
// from a locked period.
func journalErrorResponse(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPeriodLocked):
		logger.Warn("Journal rejected by period lock", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrPeriodLocked.Error()})
	case errors.Is(err, services.ErrNotDraft):
		logger.Warn("Journal is not a draft", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrNotDraft.Error()})
	case errors.Is(err, services.ErrAccountNotFound):
		logger.Warn("Journal references an unknown account", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrJournalUnbalanced),
		errors.Is(err, services.ErrJournalMinEntries),
		errors.Is(err, services.ErrJournalMinAccounts),
		errors.Is(err, services.ErrHeaderAccountPosting),
		errors.Is(err, services.ErrCurrencyMismatch),
		errors.Is(err, services.ErrDescriptionMissing):
		logger.Warn("Journal validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidExchangeRate):
		logger.Warn("Invalid exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidExchangeRate.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Journal validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Journal or account not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Journal conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createJournal godoc
// @Summary Create a journal entry
// @Description Validates and persists a journal entry; POSTED entries must balance and fall after the period lock date
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Period is locked"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Security BearerAuth
// @Router /branches/{branchID}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	journal, err := h.journalService.CreateJournal(c.Request.Context(), branchID, req, creatorUserID)
	if err != nil {
		journalErrorResponse(c, logger, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("status", string(journal.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// postAdjustmentJournal godoc
// @Summary Post an adjustment journal into a locked period
// @Description Validates the journal in adjustment mode and posts it through the temporary-unlock sequence; the lock date is restored afterwards
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   journal body dto.CreateJournalRequest true "Adjustment journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Adjustment sequence failed"
// @Security BearerAuth
// @Router /branches/{branchID}/journals/adjustments [post]
func (h *journalHandler) postAdjustmentJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostAdjustmentJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	journal, err := h.journalService.PostAdjustmentJournal(c.Request.Context(), branchID, req, creatorUserID)
	if err != nil {
		var seqErr *services.AdjustmentSequenceError
		if errors.As(err, &seqErr) && seqErr.RelockErr != nil {
			// Lock state may be ambiguous, surface loudly
			logger.Error("Adjustment sequence left the period lock unrestored",
				slog.String("post_error", errString(seqErr.PostErr)),
				slog.String("relock_error", seqErr.RelockErr.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Adjustment failed and the period lock could not be restored"})
			return
		}
		journalErrorResponse(c, logger, err, "Failed to post adjustment journal")
		return
	}

	logger.Info("Adjustment journal posted", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// postDraftJournal godoc
// @Summary Post a draft journal
// @Description Transitions a DRAFT journal to POSTED after re-running full validation
// @Tags journals
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation failed"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft or period is locked"
// @Failure 500 {object} map[string]string "Failed to post journal"
// @Security BearerAuth
// @Router /branches/{branchID}/journals/{journalID}/post [post]
func (h *journalHandler) postDraftJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.PostDraftJournal(c.Request.Context(), branchID, journalID, userID)
	if err != nil {
		journalErrorResponse(c, logger, err, "Failed to post journal")
		return
	}

	logger.Info("Draft journal posted", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Retrieves a journal and its transactions by journal ID
// @Tags journals
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /branches/{branchID}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), branchID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to get journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Retrieves a paginated list of the branch's journals, newest first
// @Tags journals
// @Produce  json
// @Param   branchID path string true "Branch ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Param   includeTransactions query bool false "Include transaction lines"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /branches/{branchID}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), branchID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
