package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/core/services"
)

// --- Mock ExchangeRateReader ---
type MockExchangeRateReader struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateReader = (*MockExchangeRateReader)(nil)

func (m *MockExchangeRateReader) FindRateAsOf(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, asOf)
	if args.Get(0) == nil {
		return decimal.Decimal{}, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateReader
	service      portssvc.CurrencyConverterSvc
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateReader)
	suite.service = services.NewCurrencyService(suite.mockRateRepo)
}

func (suite *CurrencyServiceTestSuite) TestConvert_ZeroAmountPassthrough() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	out, err := suite.service.Convert(ctx, decimal.Zero, "TZS", "USD", asOf)

	suite.Require().NoError(err)
	suite.True(out.IsZero())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateAsOf")
}

func (suite *CurrencyServiceTestSuite) TestConvert_SameCurrencyPassthrough() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(2500)

	out, err := suite.service.Convert(ctx, amount, "TZS", "TZS", asOf)

	suite.Require().NoError(err)
	suite.True(out.Equal(amount))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateAsOf")
}

func (suite *CurrencyServiceTestSuite) TestConvert_AppliesRate() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("FindRateAsOf", ctx, "TZS", "USD", asOf).
		Return(decimal.RequireFromString("0.0004"), nil).Once()

	out, err := suite.service.Convert(ctx, decimal.NewFromInt(250000), "TZS", "USD", asOf)

	suite.Require().NoError(err)
	suite.True(out.Equal(decimal.NewFromInt(100)), "expected 100, got %s", out)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestConvert_MissingRateFails() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("FindRateAsOf", ctx, "TZS", "EUR", asOf).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "TZS", "EUR", asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
