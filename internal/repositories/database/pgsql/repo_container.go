package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool, ledgerRepo)
	partyRepo := newPgxPartyRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Ledger:   ledgerRepo,
		Voucher:  voucherRepo,
		Party:    partyRepo,
		Invoice:  invoiceRepo,
		Company:  companyRepo,
		Exchange: exchangeRateRepo,
	}
}
