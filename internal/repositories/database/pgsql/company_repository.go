package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company, account and
// cost-center-allocation configuration. All reads, no writes: the chart of
// accounts is seeded by migrations.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// FindCompanyByID retrieves the per-company posting configuration.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, abbr, default_currency, default_finance_book,
			exchange_gain_loss_account, cost_center
		FROM companies
		WHERE company_id = $1;
	`
	var company domain.Company
	var financeBook, gainLossAccount, costCenter *string
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&company.CompanyID,
		&company.Abbr,
		&company.DefaultCurrency,
		&financeBook,
		&gainLossAccount,
		&costCenter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	company.DefaultFinanceBook = derefString(financeBook)
	company.ExchangeGainLossAccount = derefString(gainLossAccount)
	company.CostCenter = derefString(costCenter)
	return &company, nil
}

// FindAccountByID retrieves a chart-of-accounts entry.
func (r *PgxCompanyRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, account_name, company, account_type, currency,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1;
	`
	var account domain.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&account.AccountID,
		&account.AccountName,
		&account.Company,
		&account.AccountType,
		&account.Currency,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return &account, nil
}

// AllocationsFor returns the active allocation percentages for a cost center
// as of a posting date. An empty map means no allocation rule applies.
func (r *PgxCompanyRepository) AllocationsFor(ctx context.Context, costCenter string, postingDate time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT target_cost_center, percentage
		FROM cost_center_allocations
		WHERE main_cost_center = $1 AND valid_from <= $2
		ORDER BY target_cost_center;
	`
	rows, err := r.Pool.Query(ctx, query, costCenter, postingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for cost center %s: %w", costCenter, err)
	}
	defer rows.Close()

	allocations := make(map[string]decimal.Decimal)
	for rows.Next() {
		var target string
		var percentage decimal.Decimal
		if err := rows.Scan(&target, &percentage); err != nil {
			return nil, fmt.Errorf("failed to scan allocation for cost center %s: %w", costCenter, err)
		}
		allocations[target] = percentage
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read allocations for cost center %s: %w", costCenter, err)
	}
	return allocations, nil
}
