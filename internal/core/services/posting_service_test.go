package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/core/services"
)

// --- Mock PaymentVoucherReader ---
type MockPaymentVoucherReader struct {
	mock.Mock
}

var _ portsrepo.PaymentVoucherReader = (*MockPaymentVoucherReader)(nil)

func (m *MockPaymentVoucherReader) FindPaymentVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error) {
	args := m.Called(ctx, voucherNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentVoucher), args.Error(1)
}

// --- Mock CostCenterAllocationReader ---
type MockCostCenterAllocationReader struct {
	mock.Mock
}

var _ portsrepo.CostCenterAllocationReader = (*MockCostCenterAllocationReader)(nil)

func (m *MockCostCenterAllocationReader) AllocationsFor(ctx context.Context, costCenter string, postingDate time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, costCenter, postingDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo    *MockPaymentVoucherReader
	mockAllocationRepo *MockCostCenterAllocationReader
	service            portssvc.GLPostProcessorSvc
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockPaymentVoucherReader)
	suite.mockAllocationRepo = new(MockCostCenterAllocationReader)
	suite.service = services.NewGLPostProcessor(suite.mockVoucherRepo, suite.mockAllocationRepo)
}

func journalLine(voucherNo, account string, debit, credit int64) domain.LedgerLine {
	return domain.LedgerLine{
		VoucherType:             domain.JournalEntryVoucher,
		VoucherNo:               voucherNo,
		PostingDate:             time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Account:                 account,
		Debit:                   decimal.NewFromInt(debit),
		Credit:                  decimal.NewFromInt(credit),
		DebitInAccountCurrency:  decimal.NewFromInt(debit),
		CreditInAccountCurrency: decimal.NewFromInt(credit),
	}
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_EmptyInput() {
	ctx := context.Background()

	out, err := suite.service.ProcessGLMap(ctx, nil, true, 2, false)

	suite.Require().NoError(err)
	suite.Empty(out)
	suite.NotNil(out)
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_MergesSimilarLines() {
	ctx := context.Background()
	lines := []domain.LedgerLine{
		journalLine("JE-001", "Expense - TC", 100, 0),
		journalLine("JE-001", "Expense - TC", 50, 0),
		journalLine("JE-001", "Payable - TC", 0, 150),
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, true, 2, false)

	suite.Require().NoError(err)
	suite.Require().Len(out, 2)
	suite.Equal("Expense - TC", out[0].Account)
	suite.True(out[0].Debit.Equal(decimal.NewFromInt(150)), "merged debit should sum, got %s", out[0].Debit)
	suite.Equal("Payable - TC", out[1].Account)
	suite.True(out[1].Credit.Equal(decimal.NewFromInt(150)))
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_MergeDisabledKeepsLines() {
	ctx := context.Background()
	lines := []domain.LedgerLine{
		journalLine("JE-002", "Expense - TC", 100, 0),
		journalLine("JE-002", "Expense - TC", 50, 0),
		journalLine("JE-002", "Payable - TC", 0, 150),
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, false, 2, false)

	suite.Require().NoError(err)
	suite.Len(out, 3)
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_MergeDropsZeroZeroLines() {
	ctx := context.Background()
	lines := []domain.LedgerLine{
		journalLine("JE-003", "Expense - TC", 100, 0),
		journalLine("JE-003", "Expense - TC", -100, 0),
		journalLine("JE-003", "Payable - TC", 0, 40),
		journalLine("JE-003", "Payable - TC", 0, -40),
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, true, 2, false)

	suite.Require().NoError(err)
	suite.Empty(out, "fully cancelled lines should be dropped")
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_WithholdingVoucherSkipsMerge() {
	ctx := context.Background()
	voucherNo := "PE-0042"
	suite.mockVoucherRepo.On("FindPaymentVoucherByNo", ctx, voucherNo).
		Return(&domain.PaymentVoucher{
			VoucherNo:                 voucherNo,
			ApplyTaxWithholdingAmount: true,
		}, nil).Once()

	lines := []domain.LedgerLine{
		{VoucherType: domain.PaymentEntry, VoucherNo: voucherNo, Account: "Payable - TC", Debit: decimal.NewFromInt(500)},
		{VoucherType: domain.PaymentEntry, VoucherNo: voucherNo, Account: "Payable - TC", Debit: decimal.NewFromInt(500)},
		{VoucherType: domain.PaymentEntry, VoucherNo: voucherNo, Account: "Bank - TC", Credit: decimal.NewFromInt(900)},
		{VoucherType: domain.PaymentEntry, VoucherNo: voucherNo, Account: "04-04-003 - Withholding Taxes - TC", Credit: decimal.NewFromInt(100)},
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, true, 2, false)

	suite.Require().NoError(err)
	suite.Len(out, 4, "withholding vouchers must keep their lines unmerged")
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_PaymentVoucherLookupFailureIsFatal() {
	ctx := context.Background()
	voucherNo := "PE-MISSING"
	suite.mockVoucherRepo.On("FindPaymentVoucherByNo", ctx, voucherNo).
		Return(nil, apperrors.ErrNotFound).Once()

	lines := []domain.LedgerLine{
		{VoucherType: domain.PaymentEntry, VoucherNo: voucherNo, Account: "Bank - TC", Debit: decimal.NewFromInt(100)},
		{VoucherType: domain.PaymentEntry, VoucherNo: voucherNo, Account: "Payable - TC", Credit: decimal.NewFromInt(100)},
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, true, 2, false)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_NegativeAmountsFlipSides() {
	ctx := context.Background()
	lines := []domain.LedgerLine{
		journalLine("JE-004", "Expense - TC", -100, 0),
		journalLine("JE-004", "Payable - TC", 0, -100),
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, false, 2, false)

	suite.Require().NoError(err)
	suite.Require().Len(out, 2)
	suite.True(out[0].Debit.IsZero())
	suite.True(out[0].Credit.Equal(decimal.NewFromInt(100)))
	suite.True(out[0].CreditInAccountCurrency.Equal(decimal.NewFromInt(100)))
	suite.True(out[1].Credit.IsZero())
	suite.True(out[1].Debit.Equal(decimal.NewFromInt(100)))
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_UnbalancedVoucherRejected() {
	ctx := context.Background()
	lines := []domain.LedgerLine{
		journalLine("JE-005", "Expense - TC", 100, 0),
		journalLine("JE-005", "Payable - TC", 0, 90),
	}

	out, err := suite.service.ProcessGLMap(ctx, lines, false, 2, false)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.Contains(err.Error(), "does not balance")
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_CostCenterDistribution() {
	ctx := context.Background()
	postingDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	line := journalLine("JE-006", "Expense - TC", 100, 0)
	line.CostCenter = "Main - TC"
	balance := journalLine("JE-006", "Payable - TC", 0, 100)

	// 33% / 67% split: the last target absorbs the rounding remainder.
	suite.mockAllocationRepo.On("AllocationsFor", ctx, "Main - TC", postingDate).
		Return(map[string]decimal.Decimal{
			"Branch A - TC": decimal.NewFromInt(33),
			"Branch B - TC": decimal.NewFromInt(67),
		}, nil).Once()

	out, err := suite.service.ProcessGLMap(ctx, []domain.LedgerLine{line, balance}, false, 2, false)

	suite.Require().NoError(err)
	suite.Require().Len(out, 3)
	suite.Equal("Branch A - TC", out[0].CostCenter)
	suite.True(out[0].Debit.Equal(decimal.NewFromInt(33)))
	suite.Equal("Branch B - TC", out[1].CostCenter)
	suite.True(out[1].Debit.Equal(decimal.NewFromInt(67)))

	debit, credit := domain.SumDebitCredit(out)
	suite.True(debit.Equal(credit), "distribution must preserve balance: debit %s credit %s", debit, credit)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_CostCenterDistributionRemainder() {
	ctx := context.Background()
	postingDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	line := journalLine("JE-007", "Expense - TC", 0, 0)
	line.Debit = decimal.RequireFromString("100.01")
	line.DebitInAccountCurrency = line.Debit
	line.CostCenter = "Main - TC"
	balance := journalLine("JE-007", "Payable - TC", 0, 0)
	balance.Credit = decimal.RequireFromString("100.01")
	balance.CreditInAccountCurrency = balance.Credit

	suite.mockAllocationRepo.On("AllocationsFor", ctx, "Main - TC", postingDate).
		Return(map[string]decimal.Decimal{
			"Branch A - TC": decimal.RequireFromString("33.33"),
			"Branch B - TC": decimal.RequireFromString("33.33"),
			"Branch C - TC": decimal.RequireFromString("33.34"),
		}, nil).Once()

	out, err := suite.service.ProcessGLMap(ctx, []domain.LedgerLine{line, balance}, false, 2, false)

	suite.Require().NoError(err)
	suite.Require().Len(out, 4)

	total := decimal.Zero
	for _, split := range out[:3] {
		total = total.Add(split.Debit)
	}
	suite.True(total.Equal(decimal.RequireFromString("100.01")), "splits must sum to the original amount, got %s", total)

	debit, credit := domain.SumDebitCredit(out)
	suite.True(debit.Equal(credit))
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_NoAllocationRuleKeepsCostCenter() {
	ctx := context.Background()
	postingDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	line := journalLine("JE-008", "Expense - TC", 100, 0)
	line.CostCenter = "Main - TC"
	balance := journalLine("JE-008", "Payable - TC", 0, 100)

	suite.mockAllocationRepo.On("AllocationsFor", ctx, "Main - TC", postingDate).
		Return(map[string]decimal.Decimal{}, nil).Once()

	out, err := suite.service.ProcessGLMap(ctx, []domain.LedgerLine{line, balance}, false, 2, false)

	suite.Require().NoError(err)
	suite.Require().Len(out, 2)
	suite.Equal("Main - TC", out[0].CostCenter)
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_RepostToleratesAllocationFailure() {
	ctx := context.Background()
	postingDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	line := journalLine("JE-009", "Expense - TC", 100, 0)
	line.CostCenter = "Retired - TC"
	balance := journalLine("JE-009", "Payable - TC", 0, 100)

	suite.mockAllocationRepo.On("AllocationsFor", ctx, "Retired - TC", postingDate).
		Return(nil, apperrors.ErrInternal).Once()

	out, err := suite.service.ProcessGLMap(ctx, []domain.LedgerLine{line, balance}, false, 2, true)

	suite.Require().NoError(err)
	suite.Require().Len(out, 2)
	suite.Equal("Retired - TC", out[0].CostCenter)
}

func (suite *PostingServiceTestSuite) TestProcessGLMap_PeriodClosingSkipsDistribution() {
	ctx := context.Background()

	line := journalLine("PCV-001", "Expense - TC", 100, 0)
	line.VoucherType = domain.PeriodClosingVoucher
	line.CostCenter = "Main - TC"
	balance := journalLine("PCV-001", "Retained Earnings - TC", 0, 100)
	balance.VoucherType = domain.PeriodClosingVoucher

	// No AllocationsFor expectation: period closing vouchers must never
	// consult allocation rules.
	out, err := suite.service.ProcessGLMap(ctx, []domain.LedgerLine{line, balance}, false, 2, false)

	suite.Require().NoError(err)
	suite.Len(out, 2)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
