package services

import (
	"context"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	"github.com/smartclaims/claimsledger/internal/dto"
)

// PartySvcFacade creates the customer/provider registry entries.
type PartySvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	CreateProvider(ctx context.Context, req dto.CreateProviderRequest, creatorUserID string) (*domain.Supplier, error)
}

// InvoiceSvcFacade creates purchase invoices, sales invoices and credit notes.
type InvoiceSvcFacade interface {
	CreatePurchaseInvoice(ctx context.Context, req dto.CreatePurchaseInvoiceRequest, creatorUserID string) (*domain.PurchaseInvoice, error)
	CreateSalesInvoice(ctx context.Context, req dto.CreateSalesInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error)
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, creatorUserID string) (*domain.CreditNote, error)
}
