package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/core/services"
	"github.com/smartclaims/claimsledger/internal/dto"
)

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockPartyRepository) FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockPartyRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockPartyRepository) FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockPartyRepository) GetPartyNameMap(ctx context.Context) (domain.PartyNameMap, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PartyNameMap), args.Error(1)
}

// --- Test Suite ---
type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo *MockPartyRepository
	service       portssvc.PartySvcFacade
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo)
}

func (suite *PartyServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCustomerRequest{
		CompanyID: "Acme Mining Ltd",
		Territory: "Tanzania",
	}

	suite.mockPartyRepo.On("FindCustomerByName", ctx, "Acme Mining Ltd").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerName == "Acme Mining Ltd" &&
			c.Territory == "Tanzania" &&
			c.CustomerID != "" &&
			c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.Equal("Acme Mining Ltd", customer.CustomerName)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateCustomer_MissingIDRejected() {
	ctx := context.Background()

	customer, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SaveCustomer")
}

func (suite *PartyServiceTestSuite) TestCreateCustomer_DuplicateRejected() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{CompanyID: "Acme Mining Ltd"}

	suite.mockPartyRepo.On("FindCustomerByName", ctx, "Acme Mining Ltd").
		Return(&domain.Customer{CustomerName: "Acme Mining Ltd"}, nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SaveCustomer")
}

func (suite *PartyServiceTestSuite) TestCreateProvider_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateProviderRequest{
		ProviderID:    "SUP-01",
		SupplierGroup: "Hospital",
		Country:       "Tanzania",
	}

	suite.mockPartyRepo.On("FindSupplierByName", ctx, "SUP-01").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("SaveSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.SupplierName == "SUP-01" &&
			s.ProviderID == "SUP-01" &&
			s.SupplierGroup == "Hospital"
	})).Return(nil).Once()

	supplier, err := suite.service.CreateProvider(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(supplier)
	suite.Equal("SUP-01", supplier.SupplierName)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateProvider_DuplicateRejected() {
	ctx := context.Background()

	suite.mockPartyRepo.On("FindSupplierByName", ctx, "SUP-01").
		Return(&domain.Supplier{SupplierName: "SUP-01"}, nil).Once()

	supplier, err := suite.service.CreateProvider(ctx, dto.CreateProviderRequest{ProviderID: "SUP-01"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(supplier)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PartyServiceTestSuite) TestCreateProvider_RepoErrorPropagates() {
	ctx := context.Background()

	suite.mockPartyRepo.On("FindSupplierByName", ctx, "SUP-01").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPartyRepo.On("SaveSupplier", ctx, mock.AnythingOfType("domain.Supplier")).
		Return(apperrors.ErrInternal).Once()

	supplier, err := suite.service.CreateProvider(ctx, dto.CreateProviderRequest{ProviderID: "SUP-01"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(supplier)
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
