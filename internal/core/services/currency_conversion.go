package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
)

// currencyService converts amounts using date-indexed exchange rates.
type currencyService struct {
	rateRepo portsrepo.ExchangeRateReader
}

// NewCurrencyService creates the currency conversion service.
func NewCurrencyService(rateRepo portsrepo.ExchangeRateReader) portssvc.CurrencyConverterSvc {
	return &currencyService{rateRepo: rateRepo}
}

var _ portssvc.CurrencyConverterSvc = (*currencyService)(nil)

// Convert implements portssvc.CurrencyConverterSvc. Zero amounts and
// same-currency pairs pass through without a rate lookup.
func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	if amount.IsZero() || fromCurrency == toCurrency {
		return amount, nil
	}
	rate, err := s.rateRepo.FindRateAsOf(ctx, fromCurrency, toCurrency, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve exchange rate %s->%s: %w", fromCurrency, toCurrency, err)
	}
	return amount.Mul(rate), nil
}

// convertToPresentationCurrency rewrites each row's debit/credit into the
// presentation currency. When every row already carries the presentation
// currency as its account currency (and no exchange-gain/loss override or
// company-currency request applies) the account-currency amounts are copied
// through unconverted. Zero sides stay zero.
func convertToPresentationCurrency(ctx context.Context, converter portssvc.CurrencyConverterSvc, rows []domain.GLRow, info domain.CurrencyInfo, filters domain.GLReportFilters, gainLossAccount string) ([]domain.GLRow, error) {
	gainLossOverride := filters.Account != "" && gainLossAccount != "" && filters.Account == gainLossAccount

	if !filters.ShowInCompanyCurrency && !gainLossOverride && uniformCurrency(rows, info.PresentationCurrency) {
		for i := range rows {
			rows[i].Debit = rows[i].DebitInAccountCurrency
			rows[i].Credit = rows[i].CreditInAccountCurrency
		}
		return rows, nil
	}

	for i := range rows {
		row := &rows[i]
		if !row.Debit.IsZero() {
			converted, err := converter.Convert(ctx, row.Debit, info.CompanyCurrency, info.PresentationCurrency, info.ReportDate)
			if err != nil {
				return nil, err
			}
			row.Debit = converted
		}
		if !row.Credit.IsZero() {
			converted, err := converter.Convert(ctx, row.Credit, info.CompanyCurrency, info.PresentationCurrency, info.ReportDate)
			if err != nil {
				return nil, err
			}
			row.Credit = converted
		}
	}
	return rows, nil
}

func uniformCurrency(rows []domain.GLRow, currency string) bool {
	for i := range rows {
		if rows[i].AccountCurrency != currency {
			return false
		}
	}
	return true
}
