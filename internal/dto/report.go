package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// GLReportRequest is the general-ledger report filter set as bound from query
// parameters. Dates use YYYY-MM-DD.
type GLReportRequest struct {
	Company                        string `form:"company" binding:"required"`
	FromDate                       string `form:"from_date" binding:"required"`
	ToDate                         string `form:"to_date" binding:"required"`
	Account                        string `form:"account"`
	PartyType                      string `form:"party_type"`
	PartyName                      string `form:"party_name"`
	VoucherNo                      string `form:"voucher_no"`
	Project                        string `form:"project"`
	CostCenter                     string `form:"cost_center"`
	PresentationCurrency           string `form:"presentation_currency"`
	CategorizeBy                   string `form:"categorize_by"`
	ShowRemarks                    bool   `form:"show_remarks"`
	ShowOpeningEntries             bool   `form:"show_opening_entries"`
	ShowNetValuesInPartyAccount    bool   `form:"show_net_values_in_party_account"`
	ShowInCompanyCurrency          bool   `form:"show_in_company_currency"`
	IncludeDimensions              bool   `form:"include_dimensions"`
	IncludeDefaultBookEntries      bool   `form:"include_default_book_entries"`
	AddValuesInTransactionCurrency bool   `form:"add_values_in_transaction_currency"`
}

// ToGLReportFilters converts the bound request into domain filters.
func (r GLReportRequest) ToGLReportFilters() (domain.GLReportFilters, error) {
	fromDate, err := time.Parse("2006-01-02", r.FromDate)
	if err != nil {
		return domain.GLReportFilters{}, err
	}
	toDate, err := time.Parse("2006-01-02", r.ToDate)
	if err != nil {
		return domain.GLReportFilters{}, err
	}
	return domain.GLReportFilters{
		Company:                        r.Company,
		FromDate:                       fromDate,
		ToDate:                         toDate,
		Account:                        r.Account,
		PartyType:                      domain.PartyType(r.PartyType),
		PartyName:                      r.PartyName,
		VoucherNo:                      r.VoucherNo,
		Project:                        r.Project,
		CostCenter:                     r.CostCenter,
		PresentationCurrency:           r.PresentationCurrency,
		CategorizeBy:                   domain.CategorizeBy(r.CategorizeBy),
		ShowRemarks:                    r.ShowRemarks,
		ShowOpeningEntries:             r.ShowOpeningEntries,
		ShowNetValuesInPartyAccount:    r.ShowNetValuesInPartyAccount,
		ShowInCompanyCurrency:          r.ShowInCompanyCurrency,
		IncludeDimensions:              r.IncludeDimensions,
		IncludeDefaultBookEntries:      r.IncludeDefaultBookEntries,
		AddValuesInTransactionCurrency: r.AddValuesInTransactionCurrency,
	}, nil
}

// TotalsBucketResponse is one aggregate row of the report response.
type TotalsBucketResponse struct {
	Debit                   decimal.Decimal `json:"debit"`
	Credit                  decimal.Decimal `json:"credit"`
	DebitInAccountCurrency  decimal.Decimal `json:"debitInAccountCurrency"`
	CreditInAccountCurrency decimal.Decimal `json:"creditInAccountCurrency"`
}

// GLReportResponse is the grouped general-ledger report payload.
type GLReportResponse struct {
	Opening TotalsBucketResponse `json:"opening"`
	Total   TotalsBucketResponse `json:"total"`
	Closing TotalsBucketResponse `json:"closing"`
	Entries []domain.GLRow       `json:"entries"`
}

func toTotalsBucketResponse(b domain.TotalsBucket) TotalsBucketResponse {
	return TotalsBucketResponse{
		Debit:                   b.Debit,
		Credit:                  b.Credit,
		DebitInAccountCurrency:  b.DebitInAccountCurrency,
		CreditInAccountCurrency: b.CreditInAccountCurrency,
	}
}

// ToGLReportResponse converts a grouped report into its response DTO.
func ToGLReportResponse(report *domain.GLReport) GLReportResponse {
	return GLReportResponse{
		Opening: toTotalsBucketResponse(report.Totals.Opening),
		Total:   toTotalsBucketResponse(report.Totals.Total),
		Closing: toTotalsBucketResponse(report.Totals.Closing),
		Entries: report.Entries,
	}
}
