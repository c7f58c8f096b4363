package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/core/services"
)

// --- Test Suite ---
type GroupingTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockPaymentVoucherReader
	mockAccountRepo *MockAccountReader
	service         portssvc.LedgerReportSvcFacade
}

func (suite *GroupingTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockPaymentVoucherReader)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.service = services.NewLedgerReportService(
		new(MockLedgerReader),
		suite.mockVoucherRepo,
		new(MockPartyNameReader),
		new(MockCompanyReader),
		suite.mockAccountRepo,
		services.NewCurrencyService(new(MockExchangeRateReader)),
	)
}

func groupingFilters() domain.GLReportFilters {
	return domain.GLReportFilters{
		Company:  "Test Company",
		FromDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func reportRow(voucherNo, account, party string, day int, debit, credit int64) domain.GLRow {
	return domain.GLRow{LedgerLine: domain.LedgerLine{
		VoucherType:             domain.JournalEntryVoucher,
		VoucherNo:               voucherNo,
		PostingDate:             time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Account:                 account,
		Party:                   party,
		Debit:                   decimal.NewFromInt(debit),
		Credit:                  decimal.NewFromInt(credit),
		DebitInAccountCurrency:  decimal.NewFromInt(debit),
		CreditInAccountCurrency: decimal.NewFromInt(credit),
	}}
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_VoucherGroupingAndBuckets() {
	ctx := context.Background()
	filters := groupingFilters()

	opening := reportRow("JE-OLD", "Payable - TC", "", 1, 0, 500)
	opening.PostingDate = time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	future := reportRow("JE-FUT", "Payable - TC", "", 1, 0, 42)
	future.PostingDate = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	rows := []domain.GLRow{
		opening,
		reportRow("JE-001", "Expense - TC", "", 10, 900, 0),
		reportRow("JE-001", "Payable - TC", "", 10, 0, 900),
		reportRow("JE-002", "Expense - TC", "", 12, 100, 0),
		reportRow("JE-002", "Payable - TC", "", 12, 0, 100),
		future,
	}

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, rows)

	suite.Require().NoError(err)
	suite.Len(report.Entries, 4, "out-of-window rows never appear in entries")

	suite.True(report.Totals.Opening.Credit.Equal(decimal.NewFromInt(500)))
	suite.True(report.Totals.Total.Debit.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Totals.Total.Credit.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Totals.Closing.Credit.Equal(decimal.NewFromInt(1500)))

	// One group per voucher plus the opening voucher's group.
	suite.Require().Len(report.Groups, 3)
	suite.Equal("JE-OLD", report.Groups[0].Key)
	suite.Equal("JE-001", report.Groups[1].Key)
	suite.Len(report.Groups[1].Rows, 2)
	suite.True(report.Groups[1].Total.Debit.Equal(decimal.NewFromInt(900)))
	suite.Equal("JE-002", report.Groups[2].Key)
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_GroupsByParty() {
	ctx := context.Background()
	filters := groupingFilters()
	filters.CategorizeBy = domain.CategorizeByParty

	rows := []domain.GLRow{
		reportRow("JE-001", "Payable - TC", "SUP-01", 10, 300, 0),
		reportRow("JE-002", "Payable - TC", "SUP-02", 11, 0, 300),
		reportRow("JE-003", "Payable - TC", "SUP-01", 12, 200, 0),
		reportRow("JE-004", "Expense - TC", "", 12, 0, 200),
	}

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, rows)

	suite.Require().NoError(err)
	suite.Require().Len(report.Groups, 3)
	suite.Equal("SUP-01", report.Groups[0].Key)
	suite.True(report.Groups[0].Total.Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal("SUP-02", report.Groups[1].Key)
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_ConsolidatesVoucherRows() {
	ctx := context.Background()
	filters := groupingFilters()
	filters.CategorizeBy = domain.CategorizeByVoucherConsolidated
	filters.IgnoreImmutableLedger = true

	first := reportRow("JE-001", "Payable - TC", "SUP-01", 10, 0, 600)
	first.AgainstVoucher = "PINV-001"
	second := reportRow("JE-001", "Payable - TC", "SUP-01", 10, 0, 300)
	second.AgainstVoucher = "PINV-002"
	balance := reportRow("JE-001", "Expense - TC", "", 10, 900, 0)

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, []domain.GLRow{first, second, balance})

	suite.Require().NoError(err)
	suite.Require().Len(report.Entries, 2, "same-key rows must merge into one entry")

	merged := report.Entries[0]
	suite.True(merged.Credit.Equal(decimal.NewFromInt(900)), "consolidated amounts sum, got %s", merged.Credit)
	suite.Equal("PINV-001, PINV-002", merged.AgainstVoucher)
	suite.True(report.Totals.Total.Credit.Equal(decimal.NewFromInt(900)))
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_ImmutableLedgerKeepsRowsDistinct() {
	ctx := context.Background()
	filters := groupingFilters()
	filters.CategorizeBy = domain.CategorizeByVoucherConsolidated

	first := reportRow("JE-001", "Payable - TC", "SUP-01", 10, 0, 600)
	first.Creation = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	second := reportRow("JE-001", "Payable - TC", "SUP-01", 10, 0, 300)
	second.Creation = time.Date(2024, 3, 10, 9, 5, 0, 0, time.UTC)
	balance := reportRow("JE-001", "Expense - TC", "", 10, 900, 0)

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, []domain.GLRow{first, second, balance})

	suite.Require().NoError(err)
	suite.Len(report.Entries, 3, "distinct creation timestamps must not merge")
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_WithholdingVoucherBypassesConsolidation() {
	ctx := context.Background()
	filters := groupingFilters()
	filters.CategorizeBy = domain.CategorizeByVoucherConsolidated

	rows := []domain.GLRow{
		reportRow("JE-001", "Expense - TC", "", 10, 900, 0),
		{LedgerLine: domain.LedgerLine{
			VoucherType: domain.PaymentEntry,
			VoucherNo:   "PE-0042",
			PostingDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			Account:     "Payable - TC",
			Debit:       decimal.NewFromInt(500),
		}},
		{LedgerLine: domain.LedgerLine{
			VoucherType: domain.PaymentEntry,
			VoucherNo:   "PE-0042",
			PostingDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			Account:     "Payable - TC",
			Debit:       decimal.NewFromInt(400),
		}},
	}

	suite.mockVoucherRepo.On("FindPaymentVoucherByNo", ctx, "PE-0042").
		Return(&domain.PaymentVoucher{VoucherNo: "PE-0042", ApplyTaxWithholdingAmount: true}, nil).Once()

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, rows)

	suite.Require().NoError(err)
	suite.Len(report.Entries, 3, "withholding voucher rows pass through unmerged")
	suite.True(report.Totals.Total.Debit.Equal(decimal.NewFromInt(1800)))
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_NetValuesInPartyAccount() {
	ctx := context.Background()
	filters := groupingFilters()
	filters.CategorizeBy = domain.CategorizeByAccount
	filters.ShowNetValuesInPartyAccount = true

	suite.mockAccountRepo.On("FindAccountByID", ctx, "Payable - TC").
		Return(&domain.Account{AccountID: "Payable - TC", AccountType: domain.AccountPayable}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "Expense - TC").
		Return(&domain.Account{AccountID: "Expense - TC", AccountType: domain.AccountExpense}, nil).Once()

	rows := []domain.GLRow{
		reportRow("JE-001", "Payable - TC", "SUP-01", 10, 1000, 0),
		reportRow("JE-002", "Payable - TC", "SUP-01", 12, 0, 300),
		reportRow("JE-003", "Expense - TC", "", 12, 0, 700),
	}

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, rows)

	suite.Require().NoError(err)
	suite.Require().Len(report.Groups, 2)

	payable := report.Groups[0]
	suite.Equal("Payable - TC", payable.Key)
	suite.True(payable.Total.Debit.Equal(decimal.NewFromInt(700)), "payable group nets to a single side")
	suite.True(payable.Total.Credit.IsZero())

	expense := report.Groups[1]
	suite.True(expense.Total.Credit.Equal(decimal.NewFromInt(700)), "non-party accounts keep gross sides")
}

func (suite *GroupingTestSuite) TestGetAccountwiseGLE_OpeningEntriesToggle() {
	ctx := context.Background()
	filters := groupingFilters()

	openingRow := reportRow("JE-OPEN", "Payable - TC", "", 5, 0, 250)
	openingRow.IsOpening = true

	report, err := suite.service.GetAccountwiseGLE(ctx, filters, nil, []domain.GLRow{openingRow})
	suite.Require().NoError(err)
	suite.True(report.Totals.Opening.Credit.Equal(decimal.NewFromInt(250)), "opening-flagged rows fold into the opening bucket by default")
	suite.Empty(report.Entries)

	filters.ShowOpeningEntries = true
	report, err = suite.service.GetAccountwiseGLE(ctx, filters, nil, []domain.GLRow{openingRow})
	suite.Require().NoError(err)
	suite.True(report.Totals.Opening.Credit.IsZero())
	suite.True(report.Totals.Total.Credit.Equal(decimal.NewFromInt(250)))
	suite.Len(report.Entries, 1)
}

func TestGroupingTestSuite(t *testing.T) {
	suite.Run(t, new(GroupingTestSuite))
}
