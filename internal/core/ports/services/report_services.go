package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// CurrencyConverterSvc converts amounts between currencies as of a date.
type CurrencyConverterSvc interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)
}

// LedgerReportSvcFacade runs the general-ledger report pipeline.
type LedgerReportSvcFacade interface {
	// GetGLEntries retrieves annotated, currency-adjusted rows for a filter set
	// (fetch, withholding adjustment, optional presentation-currency conversion).
	GetGLEntries(ctx context.Context, filters domain.GLReportFilters, dimensions []string) ([]domain.GLRow, error)

	// GetAccountwiseGLE groups processed rows into opening/total/closing
	// buckets per grouping key, consolidating same-voucher rows when asked.
	GetAccountwiseGLE(ctx context.Context, filters domain.GLReportFilters, dimensions []string, rows []domain.GLRow) (*domain.GLReport, error)

	// RunReport runs GetGLEntries and the grouping/consolidation engine and
	// returns the grouped report.
	RunReport(ctx context.Context, filters domain.GLReportFilters, dimensions []string) (*domain.GLReport, error)
}
