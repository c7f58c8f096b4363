package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType identifies the document whose posting produced a ledger line.
type VoucherType string

const (
	PaymentEntry         VoucherType = "Payment Entry"
	JournalEntryVoucher  VoucherType = "Journal Entry"
	PurchaseInvoiceType  VoucherType = "Purchase Invoice"
	SalesInvoiceType     VoucherType = "Sales Invoice"
	CreditNoteVoucher    VoucherType = "Credit Note"
	PeriodClosingVoucher VoucherType = "Period Closing Voucher"
)

// LedgerLine is one debit-or-credit posting row against an account for a voucher.
// All processing must keep a voucher's lines balanced: sum(debit) == sum(credit).
type LedgerLine struct {
	GLEntryID   string      `json:"glEntryID"`
	Company     string      `json:"company"`
	VoucherType VoucherType `json:"voucherType"`
	VoucherNo   string      `json:"voucherNo"`
	PostingDate time.Time   `json:"postingDate"`
	Account     string      `json:"account"`
	PartyType   PartyType   `json:"partyType,omitempty"`
	Party       string      `json:"party,omitempty"`

	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`

	DebitInAccountCurrency  decimal.Decimal `json:"debitInAccountCurrency"`
	CreditInAccountCurrency decimal.Decimal `json:"creditInAccountCurrency"`

	DebitInTransactionCurrency  decimal.Decimal `json:"debitInTransactionCurrency"`
	CreditInTransactionCurrency decimal.Decimal `json:"creditInTransactionCurrency"`

	AccountCurrency     string `json:"accountCurrency"`
	TransactionCurrency string `json:"transactionCurrency,omitempty"`

	Against            string      `json:"against,omitempty"`
	AgainstVoucherType VoucherType `json:"againstVoucherType,omitempty"`
	AgainstVoucher     string      `json:"againstVoucher,omitempty"`

	CostCenter string `json:"costCenter,omitempty"`
	Project    string `json:"project,omitempty"`

	IsOpening    bool      `json:"isOpening"`
	PostNetValue bool      `json:"postNetValue"`
	Remarks      string    `json:"remarks,omitempty"`
	Creation     time.Time `json:"creation"`

	// Dimensions holds accounting-dimension extension fields (open set).
	Dimensions map[string]string `json:"dimensions,omitempty"`
}

// Dimension returns the named accounting dimension, empty when unset.
func (l *LedgerLine) Dimension(name string) string {
	if l.Dimensions == nil {
		return ""
	}
	return l.Dimensions[name]
}

// SetDimension records an accounting dimension value on the line.
func (l *LedgerLine) SetDimension(name, value string) {
	if l.Dimensions == nil {
		l.Dimensions = make(map[string]string)
	}
	l.Dimensions[name] = value
}

// SumDebitCredit totals both sides of a set of ledger lines.
func SumDebitCredit(lines []LedgerLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for i := range lines {
		debit = debit.Add(lines[i].Debit)
		credit = credit.Add(lines[i].Credit)
	}
	return debit, credit
}
