package services

import (
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
)

// NewServiceContainer wires every application service onto the repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	postProcessor := NewGLPostProcessor(repos.Voucher, repos.Company)
	taxLines := NewTaxLineGenerator(repos.Company, repos.Company)
	currency := NewCurrencyService(repos.Exchange)
	ledgerReport := NewLedgerReportService(repos.Ledger, repos.Voucher, repos.Party, repos.Company, repos.Company, currency)

	return &portssvc.ServiceContainer{
		Party:         NewPartyService(repos.Party),
		Invoice:       NewInvoiceService(repos.Invoice),
		ClaimsJournal: NewClaimsJournalService(repos.Voucher, repos.Invoice, postProcessor),
		PostProcessor: postProcessor,
		TaxLines:      taxLines,
		LedgerReport:  ledgerReport,
		Currency:      currency,
	}
}
