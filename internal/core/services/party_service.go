package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/dto"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// partyService creates customers (insured companies) and providers
// (suppliers). Natural keys are the caller-supplied identifiers; duplicates
// are rejected before any write.
type partyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
}

// NewPartyService creates the party registry service.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateCustomer implements portssvc.PartySvcFacade.
func (s *partyService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CompanyID == "" {
		return nil, fmt.Errorf("%w: customer ID is required", apperrors.ErrValidation)
	}

	existing, err := s.partyRepo.FindCustomerByName(ctx, req.CompanyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing customer: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: customer '%s' already exists", apperrors.ErrDuplicate, req.CompanyID)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		CustomerName: req.CompanyID,
		Territory:    req.Territory,
		CustomerType: req.CustomerType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_name", customer.CustomerName))
	return &customer, nil
}

// CreateProvider implements portssvc.PartySvcFacade.
func (s *partyService) CreateProvider(ctx context.Context, req dto.CreateProviderRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: provider ID is required", apperrors.ErrValidation)
	}

	existing, err := s.partyRepo.FindSupplierByName(ctx, req.ProviderID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing provider: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: provider '%s' already exists", apperrors.ErrDuplicate, req.ProviderID)
	}

	now := time.Now()
	supplier := domain.Supplier{
		SupplierID:    uuid.NewString(),
		SupplierName:  req.ProviderID,
		ProviderID:    req.ProviderID,
		SupplierGroup: req.SupplierGroup,
		Country:       req.Country,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	logger.Info("Provider created", slog.String("supplier_name", supplier.SupplierName))
	return &supplier, nil
}
