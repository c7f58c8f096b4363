package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoiceItemRequest is one caller-supplied invoice item. Qty and Rate
// fall back to the invoice-level totals when omitted.
type PurchaseInvoiceItemRequest struct {
	ItemCode string           `json:"item_code" binding:"required"`
	Qty      *decimal.Decimal `json:"qty,omitempty"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
}

// CreatePurchaseInvoiceRequest creates a Claims or Refund purchase invoice.
// Claims invoices require provider_id + invoice_date; Refund invoices require
// refund_id + request_date.
type CreatePurchaseInvoiceRequest struct {
	InvoiceType       string                       `json:"custom_invoice_type" binding:"required"`
	ProviderID        string                       `json:"provider_id,omitempty"`
	InvoiceDate       *time.Time                   `json:"invoice_date,omitempty" time_format:"2006-01-02"`
	RefundID          string                       `json:"refund_id,omitempty"`
	RequestDate       *time.Time                   `json:"request_date,omitempty" time_format:"2006-01-02"`
	SupplierInvoiceNo string                       `json:"supplier_invoice_no,omitempty"`
	CreditTo          string                       `json:"credit_to,omitempty"`
	TotalQty          decimal.Decimal              `json:"total_qty"`
	TotalAmount       decimal.Decimal              `json:"total_amount"`
	DefaultItemCode   string                       `json:"default_item_code,omitempty"`
	Items             []PurchaseInvoiceItemRequest `json:"items,omitempty"`
}

// SalesInvoiceItemRequest is one premium plan line.
type SalesInvoiceItemRequest struct {
	Plan          string          `json:"plan" binding:"required"`
	Members       decimal.Decimal `json:"members"`
	PremiumAmount decimal.Decimal `json:"premium_amount"`
}

// CreateSalesInvoiceRequest bills an insured company for a cover period.
type CreateSalesInvoiceRequest struct {
	InvoiceNumber        string                    `json:"invoice_number" binding:"required"`
	CompanyID            string                    `json:"company_id" binding:"required"`
	InvoiceDate          *time.Time                `json:"invoice_date,omitempty" time_format:"2006-01-02"`
	CoverPeriodStart     *time.Time                `json:"cover_period_start,omitempty" time_format:"2006-01-02"`
	CoverPeriodEnd       *time.Time                `json:"cover_period_end,omitempty" time_format:"2006-01-02"`
	NextInvoiceDate      *time.Time                `json:"next_invoice_date,omitempty" time_format:"2006-01-02"`
	InsuranceType        string                    `json:"insurance_type,omitempty"`
	CardOption           string                    `json:"card_option,omitempty"`
	CurrentInvoiceAmount decimal.Decimal           `json:"current_invoice_amount"`
	Items                []SalesInvoiceItemRequest `json:"items,omitempty"`
}

// CreateCreditNoteRequest reverses part of an issued sales invoice.
type CreateCreditNoteRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	InsuranceType string          `json:"insurance_type" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason,omitempty"`
	PostingDate   *time.Time      `json:"posting_date,omitempty" time_format:"2006-01-02"`
}
