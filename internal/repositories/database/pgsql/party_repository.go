package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customers, suppliers and
// the party display-name lookup.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// SaveCustomer inserts a customer. Unique violations on customer_name map to
// the duplicate error so handlers answer 409.
func (r *PgxPartyRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, customer_name, territory, customer_type,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.CustomerName,
		nullableString(customer.Territory),
		nullableString(customer.CustomerType),
		customer.CreatedAt,
		customer.CreatedBy,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: customer '%s'", apperrors.ErrDuplicate, customer.CustomerName)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerName, err)
	}
	return nil
}

// FindCustomerByName retrieves a customer by its natural key.
func (r *PgxPartyRepository) FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, customer_name, territory, customer_type,
			created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_name = $1;
	`
	var customer domain.Customer
	var territory, customerType *string
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&customer.CustomerID,
		&customer.CustomerName,
		&territory,
		&customerType,
		&customer.CreatedAt,
		&customer.CreatedBy,
		&customer.LastUpdatedAt,
		&customer.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", name, err)
	}
	customer.Territory = derefString(territory)
	customer.CustomerType = derefString(customerType)
	return &customer, nil
}

// SaveSupplier inserts a supplier.
func (r *PgxPartyRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
		INSERT INTO suppliers (supplier_id, supplier_name, provider_id, supplier_group, country,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		supplier.SupplierID,
		supplier.SupplierName,
		supplier.ProviderID,
		nullableString(supplier.SupplierGroup),
		nullableString(supplier.Country),
		supplier.CreatedAt,
		supplier.CreatedBy,
		supplier.LastUpdatedAt,
		supplier.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: supplier '%s'", apperrors.ErrDuplicate, supplier.SupplierName)
		}
		return fmt.Errorf("failed to save supplier %s: %w", supplier.SupplierName, err)
	}
	return nil
}

// FindSupplierByName retrieves a supplier by its natural key.
func (r *PgxPartyRepository) FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, supplier_name, provider_id, supplier_group, country,
			created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		WHERE supplier_name = $1;
	`
	var supplier domain.Supplier
	var supplierGroup, country *string
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&supplier.SupplierID,
		&supplier.SupplierName,
		&supplier.ProviderID,
		&supplierGroup,
		&country,
		&supplier.CreatedAt,
		&supplier.CreatedBy,
		&supplier.LastUpdatedAt,
		&supplier.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier %s: %w", name, err)
	}
	supplier.SupplierGroup = derefString(supplierGroup)
	supplier.Country = derefString(country)
	return &supplier, nil
}

// GetPartyNameMap builds the party-type-keyed display-name lookup from the
// customer, supplier and employee registries.
func (r *PgxPartyRepository) GetPartyNameMap(ctx context.Context) (domain.PartyNameMap, error) {
	partyMap := domain.PartyNameMap{
		domain.PartyCustomer: map[string]string{},
		domain.PartySupplier: map[string]string{},
		domain.PartyEmployee: map[string]string{},
	}

	queries := []struct {
		partyType domain.PartyType
		query     string
	}{
		{domain.PartyCustomer, `SELECT customer_name, customer_name FROM customers`},
		{domain.PartySupplier, `SELECT supplier_name, supplier_name FROM suppliers`},
		{domain.PartyEmployee, `SELECT employee_id, employee_name FROM employees`},
	}
	for _, q := range queries {
		rows, err := r.Pool.Query(ctx, q.query)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s names: %w", q.partyType, err)
		}
		for rows.Next() {
			var id, name string
			if err := rows.Scan(&id, &name); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan %s name: %w", q.partyType, err)
			}
			partyMap[q.partyType][id] = name
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s names: %w", q.partyType, err)
		}
	}
	return partyMap, nil
}
