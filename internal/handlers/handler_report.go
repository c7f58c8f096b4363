package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/dto"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// reportHandler handles the general-ledger report endpoint.
type reportHandler struct {
	reportService portssvc.LedgerReportSvcFacade
}

func newReportHandler(rs portssvc.LedgerReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers the reporting routes.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.LedgerReportSvcFacade) {
	h := newReportHandler(reportService)

	rg.GET("/reports/general-ledger", h.generalLedger)
}

// generalLedger godoc
// @Summary Run the general-ledger report
// @Description Retrieves grouped ledger rows with opening/total/closing buckets for a company and date range
// @Tags reports
// @Produce  json
// @Param   company query string true "Company ID"
// @Param   from_date query string true "From date (YYYY-MM-DD)"
// @Param   to_date query string true "To date (YYYY-MM-DD)"
// @Param   account query string false "Account filter"
// @Param   party_type query string false "Party type filter"
// @Param   party_name query string false "Party filter"
// @Param   presentation_currency query string false "Presentation currency"
// @Param   categorize_by query string false "Grouping mode"
// @Success 200 {object} dto.GLReportResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Failure 500 {object} dto.ErrorResponse "Report failed"
// @Security BearerAuth
// @Router /reports/general-ledger [get]
func (h *reportHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GLReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for general ledger report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "invalid report filters: " + err.Error()})
		return
	}

	filters, err := req.ToGLReportFilters()
	if err != nil {
		logger.Warn("Invalid report dates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "dates must be YYYY-MM-DD"})
		return
	}

	report, err := h.reportService.RunReport(c.Request.Context(), filters, nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Report lookup failed", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Status: "failed", Error: err.Error()})
			return
		}
		logger.Error("General ledger report failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Status: "failed", Error: "failed to run general ledger report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGLReportResponse(report))
}
