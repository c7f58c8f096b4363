package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/dto"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

const defaultItemCode = "Item-Default"

// invoiceService creates purchase invoices, sales invoices and credit notes.
// Field mapping from request to document is the explicit per-type mapping
// below; unknown caller keys never reach a document.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{invoiceRepo: invoiceRepo}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreatePurchaseInvoice implements portssvc.InvoiceSvcFacade.
//
// Claims invoices bill a provider directly and are dated by invoice_date;
// Refund invoices use the refund identifier as the supplier and are dated by
// request_date. Both checks run before any write.
func (s *invoiceService) CreatePurchaseInvoice(ctx context.Context, req dto.CreatePurchaseInvoiceRequest, creatorUserID string) (*domain.PurchaseInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var supplier, refundID string
	var postingDate *time.Time
	switch domain.InvoiceType(req.InvoiceType) {
	case domain.InvoiceClaims:
		supplier = req.ProviderID
		postingDate = req.InvoiceDate
		if supplier == "" || postingDate == nil {
			return nil, fmt.Errorf("%w: supplier and invoice date are required", apperrors.ErrValidation)
		}
	default:
		supplier = req.RefundID
		refundID = req.RefundID
		postingDate = req.RequestDate
		if refundID == "" || postingDate == nil {
			return nil, fmt.Errorf("%w: refund ID and request date are required", apperrors.ErrValidation)
		}
	}

	// amount / qty with a zero qty yields a zero rate, never an error.
	defaultRate := decimal.Zero
	if !req.TotalQty.IsZero() {
		defaultRate = req.TotalAmount.Div(req.TotalQty)
	}

	var items []domain.PurchaseInvoiceItem
	for _, item := range req.Items {
		qty := req.TotalQty
		if item.Qty != nil {
			qty = *item.Qty
		}
		rate := defaultRate
		if item.Rate != nil {
			rate = *item.Rate
		}
		items = append(items, domain.PurchaseInvoiceItem{
			ItemCode: item.ItemCode,
			Qty:      qty,
			Rate:     rate,
		})
	}
	if len(items) == 0 {
		itemCode := req.DefaultItemCode
		if itemCode == "" {
			itemCode = defaultItemCode
		}
		items = append(items, domain.PurchaseInvoiceItem{
			ItemCode: itemCode,
			Qty:      req.TotalQty,
			Rate:     defaultRate,
		})
	}

	now := time.Now()
	invoice := domain.PurchaseInvoice{
		InvoiceID:   uuid.NewString(),
		Supplier:    supplier,
		InvoiceType: domain.InvoiceType(req.InvoiceType),
		RefundID:    refundID,
		PostingDate: *postingDate,
		BillNo:      req.SupplierInvoiceNo,
		CreditTo:    req.CreditTo,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SavePurchaseInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create purchase invoice: %w", err)
	}

	logger.Info("Purchase invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_type", string(invoice.InvoiceType)),
		slog.String("supplier", invoice.Supplier))
	return &invoice, nil
}

// CreateSalesInvoice implements portssvc.InvoiceSvcFacade.
func (s *invoiceService) CreateSalesInvoice(ctx context.Context, req dto.CreateSalesInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InvoiceNumber == "" || req.CompanyID == "" || req.InvoiceDate == nil {
		return nil, fmt.Errorf("%w: invoice number, company ID and invoice date are required", apperrors.ErrValidation)
	}

	var items []domain.SalesInvoiceItem
	for _, item := range req.Items {
		rate := decimal.Zero
		if !item.Members.IsZero() {
			rate = item.PremiumAmount.Div(item.Members)
		}
		items = append(items, domain.SalesInvoiceItem{
			ItemCode: item.Plan,
			Qty:      item.Members,
			Rate:     rate,
			Amount:   item.PremiumAmount,
		})
	}

	now := time.Now()
	invoice := domain.SalesInvoice{
		InvoiceID:        uuid.NewString(),
		Company:          req.CompanyID,
		Customer:         req.CompanyID,
		InvoiceNumber:    req.InvoiceNumber,
		PostingDate:      *req.InvoiceDate,
		CoverPeriodStart: req.CoverPeriodStart,
		CoverPeriodEnd:   req.CoverPeriodEnd,
		NextInvoiceDate:  req.NextInvoiceDate,
		InsuranceType:    req.InsuranceType,
		CardOption:       req.CardOption,
		CurrentAmount:    req.CurrentInvoiceAmount,
		Items:            items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveSalesInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create sales invoice: %w", err)
	}

	logger.Info("Sales invoice created",
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("customer", invoice.Customer))
	return &invoice, nil
}

// CreateCreditNote implements portssvc.InvoiceSvcFacade.
func (s *invoiceService) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, creatorUserID string) (*domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InvoiceNumber == "" || req.InsuranceType == "" {
		return nil, fmt.Errorf("%w: invoice number and insurance type are required", apperrors.ErrValidation)
	}

	if _, err := s.invoiceRepo.FindSalesInvoiceByNumber(ctx, req.InvoiceNumber); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invoice number '%s' not found", apperrors.ErrNotFound, req.InvoiceNumber)
		}
		return nil, fmt.Errorf("failed to look up sales invoice %s: %w", req.InvoiceNumber, err)
	}

	postingDate := time.Now()
	if req.PostingDate != nil {
		postingDate = *req.PostingDate
	}

	now := time.Now()
	note := domain.CreditNote{
		CreditNoteID:  uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		InsuranceType: req.InsuranceType,
		Amount:        req.Amount,
		Reason:        req.Reason,
		PostingDate:   postingDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveCreditNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create credit note: %w", err)
	}

	logger.Info("Credit note created",
		slog.String("invoice_number", note.InvoiceNumber),
		slog.String("insurance_type", note.InsuranceType))
	return &note, nil
}
