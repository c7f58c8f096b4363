package repositories

import (
	"context"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// CustomerRepository defines persistence for insured companies.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomerByName looks a customer up by its natural key (customer_name).
	FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error)
}

// SupplierRepository defines persistence for care providers.
type SupplierRepository interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error

	// FindSupplierByName looks a supplier up by its natural key (supplier_name).
	FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error)
}

// PartyNameReader builds the party-type-keyed display-name lookup used to
// annotate report rows. Built once per report call.
type PartyNameReader interface {
	GetPartyNameMap(ctx context.Context) (domain.PartyNameMap, error)
}

// PartyRepositoryFacade combines all party-related repository interfaces.
type PartyRepositoryFacade interface {
	CustomerRepository
	SupplierRepository
	PartyNameReader
}
