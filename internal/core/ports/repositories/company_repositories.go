package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// CompanyReader resolves per-company configuration (abbreviation, default
// finance book, currencies, gain/loss account).
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// AccountReader resolves chart-of-accounts metadata referenced during posting.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// CostCenterAllocationReader returns the active allocation percentages for a
// cost center as of a posting date. An empty map means no allocation rule.
type CostCenterAllocationReader interface {
	AllocationsFor(ctx context.Context, costCenter string, postingDate time.Time) (map[string]decimal.Decimal, error)
}

// ExchangeRateReader resolves the exchange rate of a currency pair as of a date.
type ExchangeRateReader interface {
	FindRateAsOf(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)
}

// CompanyRepositoryFacade combines company and account metadata reads.
type CompanyRepositoryFacade interface {
	CompanyReader
	AccountReader
	CostCenterAllocationReader
}
