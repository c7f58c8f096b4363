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

// partyHandler handles HTTP requests for customer and provider creation.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

// registerPartyRoutes registers the customer and provider routes.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	rg.POST("/customers", h.createCustomer)
	rg.POST("/providers", h.createProvider)
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates an insured company keyed by its company ID
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CreateRecordResponse
// @Failure 400 {object} dto.ErrorResponse "Missing customer ID"
// @Failure 409 {object} dto.ErrorResponse "Customer already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create customer"
// @Security BearerAuth
// @Router /customers [post]
func (h *partyHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "customer ID is required"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "failed", Error: "unauthorized"})
		return
	}

	customer, err := h.partyService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondCreateError(c, logger, err, "customer")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecordResponse{Status: "success", Name: customer.CustomerName})
}

// createProvider godoc
// @Summary Create a provider
// @Description Creates a care provider (supplier) keyed by its provider ID
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   provider body dto.CreateProviderRequest true "Provider details"
// @Success 201 {object} dto.CreateRecordResponse
// @Failure 400 {object} dto.ErrorResponse "Missing provider ID"
// @Failure 409 {object} dto.ErrorResponse "Provider already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create provider"
// @Security BearerAuth
// @Router /providers [post]
func (h *partyHandler) createProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProvider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: "provider ID is required"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Status: "failed", Error: "unauthorized"})
		return
	}

	supplier, err := h.partyService.CreateProvider(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondCreateError(c, logger, err, "provider")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecordResponse{Status: "success", Name: supplier.SupplierName})
}

// respondCreateError translates the service error taxonomy into the create
// endpoints' uniform failure payload and status ladder.
func respondCreateError(c *gin.Context, logger *slog.Logger, err error, entity string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("entity", entity), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "failed", Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate "+entity, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Status: "failed", Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Referenced record not found", slog.String("entity", entity), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Status: "failed", Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("entity", entity), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Status: "failed", Error: err.Error()})
	default:
		logger.Error("Failed to create "+entity, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Status: "failed", Error: "failed to create " + entity})
	}
}
