package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/dto"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// invoiceHandler handles HTTP requests for purchase invoices, sales invoices
// and credit notes.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers the invoice and credit-note routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	rg.POST("/purchase-invoices", h.createPurchaseInvoice)
	rg.POST("/sales-invoices", h.createSalesInvoice)
	rg.POST("/credit-notes", h.createCreditNote)
}

// createPurchaseInvoice godoc
// @Summary Create a purchase invoice
// @Description Creates a Claims or Refund purchase invoice for a provider
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreatePurchaseInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.CreateRecordResponse
// @Failure 400 {object} dto.ErrorResponse "Missing mandatory fields"
// @Failure 500 {object} dto.ErrorResponse "Failed to create purchase invoice"
// @Security BearerAuth
// @Router /purchase-invoices [post]
func (h *invoiceHandler) createPurchaseInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchaseInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "failed", Error: "unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreatePurchaseInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondCreateError(c, logger, err, "purchase invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecordResponse{Status: "success", Name: invoice.InvoiceID})
}

// createSalesInvoice godoc
// @Summary Create a sales invoice
// @Description Bills an insured company for a cover period
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateSalesInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.CreateRecordResponse
// @Failure 400 {object} dto.ErrorResponse "Missing mandatory fields"
// @Failure 500 {object} dto.ErrorResponse "Failed to create sales invoice"
// @Security BearerAuth
// @Router /sales-invoices [post]
func (h *invoiceHandler) createSalesInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSalesInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSalesInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "failed", Error: "unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateSalesInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondCreateError(c, logger, err, "sales invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecordResponse{Status: "success", Name: invoice.InvoiceNumber})
}

// createCreditNote godoc
// @Summary Create a credit note
// @Description Reverses part of a previously issued sales invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   note body dto.CreateCreditNoteRequest true "Credit note details"
// @Success 201 {object} dto.CreateRecordResponse
// @Failure 400 {object} dto.ErrorResponse "Missing mandatory fields"
// @Failure 404 {object} dto.ErrorResponse "Referenced sales invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create credit note"
// @Security BearerAuth
// @Router /credit-notes [post]
func (h *invoiceHandler) createCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "failed", Error: "unauthorized"})
		return
	}

	note, err := h.invoiceService.CreateCreditNote(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondCreateError(c, logger, err, "credit note")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecordResponse{Status: "success", Name: note.CreditNoteID})
}
