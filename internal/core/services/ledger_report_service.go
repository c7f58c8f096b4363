package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// ledgerReportService runs the general-ledger report pipeline:
// fetch -> withholding adjustment -> currency conversion -> grouping.
//
// Supplier-party mode is canonical per the withholding contract: the base
// query excludes rows on the company withholding account and the adjustment
// pass nets each payment row by the withholding posted against its voucher.
type ledgerReportService struct {
	ledgerRepo  portsrepo.LedgerReader
	voucherRepo portsrepo.PaymentVoucherReader
	partyRepo   portsrepo.PartyNameReader
	companyRepo portsrepo.CompanyReader
	accountRepo portsrepo.AccountReader
	converter   portssvc.CurrencyConverterSvc
}

// NewLedgerReportService creates the general-ledger report service.
func NewLedgerReportService(
	ledgerRepo portsrepo.LedgerReader,
	voucherRepo portsrepo.PaymentVoucherReader,
	partyRepo portsrepo.PartyNameReader,
	companyRepo portsrepo.CompanyReader,
	accountRepo portsrepo.AccountReader,
	converter portssvc.CurrencyConverterSvc,
) portssvc.LedgerReportSvcFacade {
	return &ledgerReportService{
		ledgerRepo:  ledgerRepo,
		voucherRepo: voucherRepo,
		partyRepo:   partyRepo,
		companyRepo: companyRepo,
		accountRepo: accountRepo,
		converter:   converter,
	}
}

var _ portssvc.LedgerReportSvcFacade = (*ledgerReportService)(nil)

// GetGLEntries implements portssvc.LedgerReportSvcFacade.
func (s *ledgerReportService) GetGLEntries(ctx context.Context, filters domain.GLReportFilters, dimensions []string) ([]domain.GLRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, filters.Company)
	if err != nil {
		logger.Error("Failed to resolve company metadata for GL report",
			slog.String("company", filters.Company), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve company %s: %w", filters.Company, err)
	}

	if filters.IncludeDefaultBookEntries {
		filters.CompanyFinanceBook = company.DefaultFinanceBook
	}

	withholdingAccount := company.WithholdingAccount()

	rows, err := s.ledgerRepo.GetGLEntries(ctx, filters, dimensions, withholdingAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}

	partyNames, err := s.partyRepo.GetPartyNameMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build party name map: %w", err)
	}
	for i := range rows {
		if rows[i].PartyType != "" && rows[i].Party != "" {
			rows[i].PartyName = partyNames.NameFor(rows[i].PartyType, rows[i].Party)
		}
	}

	switch retrievalMode(filters) {
	case supplierPartyRetrieval:
		rows, err = applyWithholdingAdjustment(ctx, s.voucherRepo, s.ledgerRepo, rows, withholdingAccount, supplierPartyMode)
	case singleAccountRetrieval:
		rows, err = applyWithholdingAdjustment(ctx, s.voucherRepo, s.ledgerRepo, rows, withholdingAccount, singleAccountMode)
	}
	if err != nil {
		return nil, err
	}

	if filters.PresentationCurrency != "" {
		info := domain.CurrencyInfo{
			PresentationCurrency: filters.PresentationCurrency,
			CompanyCurrency:      company.DefaultCurrency,
			ReportDate:           filters.ToDate,
		}
		rows, err = convertToPresentationCurrency(ctx, s.converter, rows, info, filters, company.ExchangeGainLossAccount)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("GL entries retrieved", slog.Int("row_count", len(rows)), slog.String("company", filters.Company))
	return rows, nil
}

// RunReport implements portssvc.LedgerReportSvcFacade.
func (s *ledgerReportService) RunReport(ctx context.Context, filters domain.GLReportFilters, dimensions []string) (*domain.GLReport, error) {
	rows, err := s.GetGLEntries(ctx, filters, dimensions)
	if err != nil {
		return nil, err
	}
	return s.GetAccountwiseGLE(ctx, filters, dimensions, rows)
}

// retrieval modes of the query engine; mutually exclusive.
type retrieval int

const (
	defaultRetrieval retrieval = iota
	supplierPartyRetrieval
	singleAccountRetrieval
)

func retrievalMode(filters domain.GLReportFilters) retrieval {
	if filters.PartyType == domain.PartySupplier && filters.PartyName != "" {
		return supplierPartyRetrieval
	}
	if filters.Account != "" {
		return singleAccountRetrieval
	}
	return defaultRetrieval
}
