package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	Ledger   LedgerRepositoryWithTx
	Voucher  VoucherRepositoryFacade
	Party    PartyRepositoryFacade
	Invoice  InvoiceRepositoryFacade
	Company  CompanyRepositoryFacade
	Exchange ExchangeRateReader
}
