package repositories

import (
	"context"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// PurchaseInvoiceRepository defines persistence for provider claims/refund invoices.
type PurchaseInvoiceRepository interface {
	SavePurchaseInvoice(ctx context.Context, invoice domain.PurchaseInvoice) error

	// FindPurchaseInvoiceByID retrieves an invoice by identifier.
	// Returns apperrors.ErrNotFound when absent.
	FindPurchaseInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error)
}

// SalesInvoiceRepository defines persistence for premium invoices.
type SalesInvoiceRepository interface {
	SaveSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error

	// FindSalesInvoiceByNumber retrieves an invoice by its customer-facing
	// invoice number. Returns apperrors.ErrNotFound when absent.
	FindSalesInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.SalesInvoice, error)
}

// CreditNoteRepository defines persistence for credit notes.
type CreditNoteRepository interface {
	SaveCreditNote(ctx context.Context, note domain.CreditNote) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	PurchaseInvoiceRepository
	SalesInvoiceRepository
	CreditNoteRepository
}
