package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategorizeBy selects the grouping key of the general-ledger report.
type CategorizeBy string

const (
	CategorizeByParty              CategorizeBy = "Categorize by Party"
	CategorizeByAccount            CategorizeBy = "Categorize by Account"
	CategorizeByVoucher            CategorizeBy = "Categorize by Voucher"
	CategorizeByVoucherConsolidated CategorizeBy = "Categorize by Voucher (Consolidated)"
)

// GLReportFilters is the filter set of a general-ledger report request.
type GLReportFilters struct {
	Company                        string       `json:"company"`
	FromDate                       time.Time    `json:"fromDate"`
	ToDate                         time.Time    `json:"toDate"`
	Account                        string       `json:"account,omitempty"`
	PartyType                      PartyType    `json:"partyType,omitempty"`
	PartyName                      string       `json:"partyName,omitempty"`
	VoucherNo                      string       `json:"voucherNo,omitempty"`
	Project                        string       `json:"project,omitempty"`
	CostCenter                     string       `json:"costCenter,omitempty"`
	PresentationCurrency           string       `json:"presentationCurrency,omitempty"`
	CategorizeBy                   CategorizeBy `json:"categorizeBy,omitempty"`
	ShowRemarks                    bool         `json:"showRemarks,omitempty"`
	ShowOpeningEntries             bool         `json:"showOpeningEntries,omitempty"`
	ShowNetValuesInPartyAccount    bool         `json:"showNetValuesInPartyAccount,omitempty"`
	ShowInCompanyCurrency          bool         `json:"showInCompanyCurrency,omitempty"`
	IncludeDimensions              bool         `json:"includeDimensions,omitempty"`
	IncludeDefaultBookEntries      bool         `json:"includeDefaultBookEntries,omitempty"`
	AddValuesInTransactionCurrency bool         `json:"addValuesInTransactionCurrency,omitempty"`
	IgnoreImmutableLedger          bool         `json:"ignoreImmutableLedger,omitempty"`

	// CompanyFinanceBook is resolved from company metadata when
	// IncludeDefaultBookEntries is set; not caller-supplied.
	CompanyFinanceBook string `json:"-"`
}

// GLRow is one annotated general-ledger report row.
type GLRow struct {
	LedgerLine
	PartyName string `json:"partyName,omitempty"`
}

// CurrencyInfo carries the currencies of a report run for the conversion pass.
type CurrencyInfo struct {
	PresentationCurrency string    `json:"presentationCurrency"`
	CompanyCurrency      string    `json:"companyCurrency"`
	ReportDate           time.Time `json:"reportDate"`
}

// TotalsBucket accumulates both sides of a set of report rows.
type TotalsBucket struct {
	Account                     string          `json:"account,omitempty"`
	Debit                       decimal.Decimal `json:"debit"`
	Credit                      decimal.Decimal `json:"credit"`
	DebitInAccountCurrency      decimal.Decimal `json:"debitInAccountCurrency"`
	CreditInAccountCurrency     decimal.Decimal `json:"creditInAccountCurrency"`
	DebitInTransactionCurrency  decimal.Decimal `json:"debitInTransactionCurrency"`
	CreditInTransactionCurrency decimal.Decimal `json:"creditInTransactionCurrency"`
}

// Accumulate adds a row's amounts into the bucket.
func (b *TotalsBucket) Accumulate(row *GLRow) {
	b.Debit = b.Debit.Add(row.Debit)
	b.Credit = b.Credit.Add(row.Credit)
	b.DebitInAccountCurrency = b.DebitInAccountCurrency.Add(row.DebitInAccountCurrency)
	b.CreditInAccountCurrency = b.CreditInAccountCurrency.Add(row.CreditInAccountCurrency)
	b.DebitInTransactionCurrency = b.DebitInTransactionCurrency.Add(row.DebitInTransactionCurrency)
	b.CreditInTransactionCurrency = b.CreditInTransactionCurrency.Add(row.CreditInTransactionCurrency)
}

// ReportTotals holds the three fixed report buckets. They are created up front
// rather than lazily so every report response carries all of them.
type ReportTotals struct {
	Opening TotalsBucket `json:"opening"`
	Total   TotalsBucket `json:"total"`
	Closing TotalsBucket `json:"closing"`
}

// GroupBucket is the per-group accumulation of the grouping engine.
type GroupBucket struct {
	Key     string       `json:"key"`
	Rows    []GLRow      `json:"rows"`
	Opening TotalsBucket `json:"opening"`
	Total   TotalsBucket `json:"total"`
	Closing TotalsBucket `json:"closing"`
}

// GLReport is the grouped general-ledger report response.
type GLReport struct {
	Totals  ReportTotals `json:"totals"`
	Entries []GLRow      `json:"entries"`
	Groups  []GroupBucket `json:"groups,omitempty"`
}

// ConsolidationKey is the equality key under which rows merge in
// consolidated-voucher mode. Built per report request, never persisted.
func ConsolidationKey(row *GLRow, includeCreation bool, dimensions []string, includeDimensions bool) string {
	parts := []string{
		row.PostingDate.Format("2006-01-02"),
		string(row.VoucherType),
		row.VoucherNo,
		row.Account,
		string(row.PartyType),
		row.Party,
	}
	if includeCreation {
		parts = append(parts, row.Creation.Format(time.RFC3339Nano))
	}
	if includeDimensions {
		for _, dim := range dimensions {
			parts = append(parts, row.Dimension(dim))
		}
		parts = append(parts, row.CostCenter, row.Project)
	}
	return strings.Join(parts, "|")
}
