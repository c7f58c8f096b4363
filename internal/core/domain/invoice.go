package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes claims purchase invoices from refund ones.
type InvoiceType string

const (
	InvoiceClaims InvoiceType = "Claims"
	InvoiceRefund InvoiceType = "Refund"
)

// PurchaseInvoiceItem is one billed line on a purchase invoice.
type PurchaseInvoiceItem struct {
	ItemCode       string          `json:"itemCode"`
	Qty            decimal.Decimal `json:"qty"`
	Rate           decimal.Decimal `json:"rate"`
	ExpenseAccount string          `json:"expenseAccount,omitempty"`
}

// Amount is qty * rate for the item.
func (i PurchaseInvoiceItem) Amount() decimal.Decimal {
	return i.Qty.Mul(i.Rate)
}

// PurchaseInvoice is a provider claim or refund request billed to the insurer.
type PurchaseInvoice struct {
	InvoiceID   string                `json:"invoiceID"`
	Company     string                `json:"company"`
	Supplier    string                `json:"supplier"`
	InvoiceType InvoiceType           `json:"invoiceType"`
	RefundID    string                `json:"refundID,omitempty"`
	PostingDate time.Time             `json:"postingDate"`
	BillNo      string                `json:"billNo,omitempty"`
	CreditTo    string                `json:"creditTo"`
	Items       []PurchaseInvoiceItem `json:"items"`
	AuditFields
}

// SalesInvoiceItem is one premium plan line on a sales invoice.
type SalesInvoiceItem struct {
	ItemCode string          `json:"itemCode"`
	Qty      decimal.Decimal `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// SalesInvoice bills an insured company for its cover period.
type SalesInvoice struct {
	InvoiceID        string             `json:"invoiceID"`
	Company          string             `json:"company"`
	Customer         string             `json:"customer"`
	InvoiceNumber    string             `json:"invoiceNumber"`
	PostingDate      time.Time          `json:"postingDate"`
	CoverPeriodStart *time.Time         `json:"coverPeriodStart,omitempty"`
	CoverPeriodEnd   *time.Time         `json:"coverPeriodEnd,omitempty"`
	NextInvoiceDate  *time.Time         `json:"nextInvoiceDate,omitempty"`
	InsuranceType    string             `json:"insuranceType,omitempty"`
	CardOption       string             `json:"cardOption,omitempty"`
	CurrentAmount    decimal.Decimal    `json:"currentAmount"`
	Items            []SalesInvoiceItem `json:"items"`
	AuditFields
}

// CreditNote reverses part of a previously issued sales invoice.
type CreditNote struct {
	CreditNoteID  string          `json:"creditNoteID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InsuranceType string          `json:"insuranceType"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason,omitempty"`
	PostingDate   time.Time       `json:"postingDate"`
	AuditFields
}
