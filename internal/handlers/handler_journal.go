package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/dto"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// journalHandler handles HTTP requests for claims journal creation.
type journalHandler struct {
	journalService portssvc.ClaimsJournalSvcFacade
}

func newJournalHandler(js portssvc.ClaimsJournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers the claims journal routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.ClaimsJournalSvcFacade) {
	h := newJournalHandler(journalService)

	rg.POST("/journal-entries", h.createClaimsJournal)
}

// createClaimsJournal godoc
// @Summary Create a claims journal
// @Description Posts a rejection, withholding or adjustment journal whose entries reference provider purchase invoices
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateClaimsJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Missing mandatory fields or unbalanced journal"
// @Failure 404 {object} dto.ErrorResponse "Referenced purchase invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create claims journal"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createClaimsJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClaimsJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClaimsJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "failed", Error: "unauthorized"})
		return
	}

	entry, err := h.journalService.CreateClaimsJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondCreateError(c, logger, err, "claims journal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
