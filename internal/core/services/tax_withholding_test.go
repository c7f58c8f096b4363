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

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock CompanyReader ---
type MockCompanyReader struct {
	mock.Mock
}

var _ portsrepo.CompanyReader = (*MockCompanyReader)(nil)

func (m *MockCompanyReader) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// --- Test Suite ---
type TaxWithholdingTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountReader
	mockCompanyRepo *MockCompanyReader
	service         portssvc.TaxLineGeneratorSvc
}

func (suite *TaxWithholdingTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockCompanyRepo = new(MockCompanyReader)
	suite.service = services.NewTaxLineGenerator(suite.mockAccountRepo, suite.mockCompanyRepo)
}

func (suite *TaxWithholdingTestSuite) expectCompany() {
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, "Test Company").
		Return(&domain.Company{CompanyID: "Test Company", Abbr: "TC", DefaultCurrency: "TZS"}, nil).Once()
}

func withholdingVoucher() *domain.PaymentVoucher {
	return &domain.PaymentVoucher{
		VoucherNo:                 "PE-0100",
		Company:                   "Test Company",
		PaymentType:               domain.PaymentPay,
		ApplyTaxWithholdingAmount: true,
		PartyType:                 domain.PartySupplier,
		Party:                     "SUP-01",
		PaidFrom:                  "Bank - TC",
		PaidTo:                    "Payable - TC",
		PostingDate:               time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Taxes: []domain.TaxLine{
			{
				AccountHead:   "04-04-003 - Withholding Taxes - TC",
				TaxAmount:     decimal.NewFromInt(100),
				BaseTaxAmount: decimal.NewFromInt(100),
				AddDeductTax:  domain.TaxDeduct,
			},
		},
	}
}

func (suite *TaxWithholdingTestSuite) TestAddTaxGLEntries_NoTaxesPassthrough() {
	ctx := context.Background()
	voucher := &domain.PaymentVoucher{VoucherNo: "PE-0001", Company: "Test Company"}
	principal := []domain.LedgerLine{{Account: "Payable - TC", Debit: decimal.NewFromInt(100)}}

	out, err := suite.service.AddTaxGLEntries(ctx, voucher, principal)

	suite.Require().NoError(err)
	suite.Len(out, 1)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "FindCompanyByID")
}

func (suite *TaxWithholdingTestSuite) TestAddTaxGLEntries_WithholdingReversalBeforeTax() {
	ctx := context.Background()
	suite.expectCompany()
	voucher := withholdingVoucher()

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "04-04-003 - Withholding Taxes - TC").
		Return(&domain.Account{AccountID: "04-04-003 - Withholding Taxes - TC", AccountType: domain.AccountTax, Currency: "TZS"}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "Payable - TC").
		Return(&domain.Account{AccountID: "Payable - TC", AccountType: domain.AccountPayable, Currency: "TZS"}, nil).Once()

	principal := []domain.LedgerLine{
		{Account: "Payable - TC", Debit: decimal.NewFromInt(1000)},
		{Account: "Bank - TC", Credit: decimal.NewFromInt(1000)},
	}

	out, err := suite.service.AddTaxGLEntries(ctx, voucher, principal)

	suite.Require().NoError(err)
	suite.Require().Len(out, 4)

	// The reversal against the first principal account precedes the tax line.
	reversal := out[2]
	suite.Equal("Payable - TC", reversal.Account)
	suite.True(reversal.Debit.Equal(decimal.NewFromInt(100)), "pay/deduct reversal posts on the debit side")
	suite.Equal(domain.PartySupplier, reversal.PartyType, "payable reversal carries the supplier party")
	suite.Equal("SUP-01", reversal.Party)
	suite.True(reversal.PostNetValue)

	taxLine := out[3]
	suite.Equal("04-04-003 - Withholding Taxes - TC", taxLine.Account)
	suite.True(taxLine.Credit.Equal(decimal.NewFromInt(100)))
	suite.Empty(taxLine.Party, "tax account lines stay untagged")

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *TaxWithholdingTestSuite) TestAddTaxGLEntries_WithholdingWithoutPrincipalLines() {
	ctx := context.Background()
	suite.expectCompany()
	voucher := withholdingVoucher()

	out, err := suite.service.AddTaxGLEntries(ctx, voucher, nil)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaxWithholdingTestSuite) TestAddTaxGLEntries_CurrencyMismatchRejected() {
	ctx := context.Background()
	suite.expectCompany()
	voucher := withholdingVoucher()

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "04-04-003 - Withholding Taxes - TC").
		Return(&domain.Account{AccountID: "04-04-003 - Withholding Taxes - TC", AccountType: domain.AccountTax, Currency: "USD"}, nil).Once()

	principal := []domain.LedgerLine{{Account: "Payable - TC", Debit: decimal.NewFromInt(1000)}}

	out, err := suite.service.AddTaxGLEntries(ctx, voucher, principal)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, apperrors.ErrCurrencyMismatch)
}

func (suite *TaxWithholdingTestSuite) TestAddTaxGLEntries_RegularTaxWithReversal() {
	ctx := context.Background()
	suite.expectCompany()
	voucher := &domain.PaymentVoucher{
		VoucherNo:   "PE-0200",
		Company:     "Test Company",
		PaymentType: domain.PaymentPay,
		Party:       "SUP-02",
		PaidFrom:    "Bank - TC",
		PostingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Taxes: []domain.TaxLine{
			{
				AccountHead:   "VAT - TC",
				TaxAmount:     decimal.NewFromInt(180),
				BaseTaxAmount: decimal.NewFromInt(180),
				AddDeductTax:  domain.TaxAdd,
			},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "VAT - TC").
		Return(&domain.Account{AccountID: "VAT - TC", AccountType: domain.AccountTax, Currency: "TZS"}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "Bank - TC").
		Return(&domain.Account{AccountID: "Bank - TC", AccountType: domain.AccountBank, Currency: "TZS"}, nil).Once()

	principal := []domain.LedgerLine{{Account: "Payable - TC", Debit: decimal.NewFromInt(1000)}}

	out, err := suite.service.AddTaxGLEntries(ctx, voucher, principal)

	suite.Require().NoError(err)
	suite.Require().Len(out, 3)

	taxLine := out[1]
	suite.Equal("VAT - TC", taxLine.Account)
	suite.True(taxLine.Debit.Equal(decimal.NewFromInt(180)), "pay/add taxes post on the debit side")

	reversal := out[2]
	suite.Equal("Bank - TC", reversal.Account, "reversal lands on the paid-from account when no tax payment account is set")
	suite.True(reversal.Credit.Equal(decimal.NewFromInt(180)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TaxWithholdingTestSuite) TestAddTaxGLEntries_IncludedInPaidAmountSkipsReversal() {
	ctx := context.Background()
	suite.expectCompany()
	voucher := &domain.PaymentVoucher{
		VoucherNo:   "PE-0201",
		Company:     "Test Company",
		PaymentType: domain.PaymentReceive,
		Party:       "CUST-01",
		PaidTo:      "Bank - TC",
		PostingDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Taxes: []domain.TaxLine{
			{
				AccountHead:          "VAT - TC",
				TaxAmount:            decimal.NewFromInt(50),
				BaseTaxAmount:        decimal.NewFromInt(50),
				AddDeductTax:         domain.TaxAdd,
				IncludedInPaidAmount: true,
			},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "VAT - TC").
		Return(&domain.Account{AccountID: "VAT - TC", AccountType: domain.AccountTax, Currency: "TZS"}, nil).Once()

	principal := []domain.LedgerLine{{Account: "Receivable - TC", Credit: decimal.NewFromInt(1050)}}

	out, err := suite.service.AddTaxGLEntries(ctx, voucher, principal)

	suite.Require().NoError(err)
	suite.Require().Len(out, 2, "included-in-paid-amount taxes emit no reversal")
	suite.True(out[1].Credit.Equal(decimal.NewFromInt(50)), "receive/add taxes post on the credit side")
}

func TestTaxWithholdingTestSuite(t *testing.T) {
	suite.Run(t, new(TaxWithholdingTestSuite))
}
