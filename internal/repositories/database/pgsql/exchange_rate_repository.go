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
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rates.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateReader {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateReader = (*PgxExchangeRateRepository)(nil)

// FindRateAsOf retrieves the most recent rate for a currency pair on or
// before the given date.
func (r *PgxExchangeRateRepository) FindRateAsOf(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT rate
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND date_of_rate <= $3
		ORDER BY date_of_rate DESC
		LIMIT 1;
	`
	var rate decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency, asOf).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: no exchange rate for %s/%s as of %s",
				apperrors.ErrNotFound, fromCurrency, toCurrency, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to find exchange rate %s/%s: %w", fromCurrency, toCurrency, err)
	}
	return rate, nil
}
