package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is the direction of a payment entry.
type PaymentType string

const (
	PaymentPay              PaymentType = "Pay"
	PaymentReceive          PaymentType = "Receive"
	PaymentInternalTransfer PaymentType = "Internal Transfer"
)

// AddDeductTax says whether a payment tax line adds to or deducts from the paid amount.
type AddDeductTax string

const (
	TaxAdd    AddDeductTax = "Add"
	TaxDeduct AddDeductTax = "Deduct"
)

// TaxLine is one tax row on a payment voucher.
type TaxLine struct {
	AccountHead         string          `json:"accountHead"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	BaseTaxAmount       decimal.Decimal `json:"baseTaxAmount"`
	AddDeductTax        AddDeductTax    `json:"addDeductTax"`
	IncludedInPaidAmount bool           `json:"includedInPaidAmount"`
	CostCenter          string          `json:"costCenter,omitempty"`
}

// PaymentVoucher is the payment document the GL post-processor and tax-line
// generator inspect. Loaded by voucher_no when the first GL line is a Payment Entry.
type PaymentVoucher struct {
	VoucherNo                 string          `json:"voucherNo"`
	Company                   string          `json:"company"`
	PaymentType               PaymentType     `json:"paymentType"`
	ApplyTaxWithholdingAmount bool            `json:"applyTaxWithholdingAmount"`
	PartyType                 PartyType       `json:"partyType,omitempty"`
	Party                     string          `json:"party,omitempty"`
	PaidFrom                  string          `json:"paidFrom"`
	PaidTo                    string          `json:"paidTo"`
	PaidAmount                decimal.Decimal `json:"paidAmount"`
	CostCenter                string          `json:"costCenter,omitempty"`
	SourceExchangeRate        decimal.Decimal `json:"sourceExchangeRate"`
	TargetExchangeRate        decimal.Decimal `json:"targetExchangeRate"`
	TransactionExchangeRate   decimal.Decimal `json:"transactionExchangeRate"`
	TaxPaymentAccount         string          `json:"taxPaymentAccount,omitempty"`
	PostingDate               time.Time       `json:"postingDate"`
	Taxes                     []TaxLine       `json:"taxes,omitempty"`
	AuditFields
}

// PaidAccount returns the account the paid amount moves through for the
// voucher's payment direction.
func (v *PaymentVoucher) PaidAccount() string {
	if v.PaymentType == PaymentReceive {
		return v.PaidTo
	}
	return v.PaidFrom
}

// ClaimsJournalType names the claims journal entry variants.
type ClaimsJournalType string

const (
	RejectionJournal   ClaimsJournalType = "Rejection Journal"
	WithholdingJournal ClaimsJournalType = "Withholding Journal"
	AdjustmentJournal  ClaimsJournalType = "Adjustment Journal"
)

// JournalEntryLine is one account row of a claims journal entry.
type JournalEntryLine struct {
	Account   string          `json:"account"`
	PartyType PartyType       `json:"partyType,omitempty"`
	Party     string          `json:"party,omitempty"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Reference string          `json:"reference,omitempty"`
}

// JournalEntry is a posted claims journal (rejection, withholding or adjustment).
type JournalEntry struct {
	JournalEntryID string             `json:"journalEntryID"`
	Company        string             `json:"company"`
	JournalType    ClaimsJournalType  `json:"journalType"`
	PostingDate    time.Time          `json:"postingDate"`
	Remark         string             `json:"remark,omitempty"`
	Lines          []JournalEntryLine `json:"lines"`
	AuditFields
}

// TotalDebit sums the debit side of the journal.
func (j *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for i := range j.Lines {
		total = total.Add(j.Lines[i].Debit)
	}
	return total
}

// TotalCredit sums the credit side of the journal.
func (j *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for i := range j.Lines {
		total = total.Add(j.Lines[i].Credit)
	}
	return total
}
