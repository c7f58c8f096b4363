package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/dto"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// claimsJournalService builds rejection, withholding and adjustment journals.
// Each claim entry resolves its purchase invoice for the payable account
// (credit_to) and the expense account of the invoice's first item; any lookup
// failure aborts the whole journal before insert.
type claimsJournalService struct {
	voucherRepo   portsrepo.JournalEntryWriter
	invoiceRepo   portsrepo.PurchaseInvoiceRepository
	postProcessor portssvc.GLPostProcessorSvc
}

// NewClaimsJournalService creates the claims journal service.
func NewClaimsJournalService(
	voucherRepo portsrepo.JournalEntryWriter,
	invoiceRepo portsrepo.PurchaseInvoiceRepository,
	postProcessor portssvc.GLPostProcessorSvc,
) portssvc.ClaimsJournalSvcFacade {
	return &claimsJournalService{
		voucherRepo:   voucherRepo,
		invoiceRepo:   invoiceRepo,
		postProcessor: postProcessor,
	}
}

var _ portssvc.ClaimsJournalSvcFacade = (*claimsJournalService)(nil)

// CreateClaimsJournal implements portssvc.ClaimsJournalSvcFacade.
func (s *claimsJournalService) CreateClaimsJournal(ctx context.Context, req dto.CreateClaimsJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalType := domain.ClaimsJournalType(req.VoucherType)
	switch journalType {
	case domain.RejectionJournal, domain.WithholdingJournal, domain.AdjustmentJournal:
	default:
		return nil, fmt.Errorf("%w: unknown voucher type '%s'", apperrors.ErrValidation, req.VoucherType)
	}
	if req.Company == "" {
		return nil, fmt.Errorf("%w: company is required", apperrors.ErrValidation)
	}
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: at least one entry is required", apperrors.ErrValidation)
	}

	postingDate := time.Now()
	if req.PostingDate != nil {
		postingDate = *req.PostingDate
	}

	var journalLines []domain.JournalEntryLine
	for _, claim := range req.Entries {
		if claim.ProviderID == "" || claim.InvoiceNumber == "" {
			return nil, fmt.Errorf("%w: provider ID and invoice number are required on every entry", apperrors.ErrValidation)
		}

		invoice, err := s.invoiceRepo.FindPurchaseInvoiceByID(ctx, claim.InvoiceNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: purchase invoice '%s' not found", apperrors.ErrNotFound, claim.InvoiceNumber)
			}
			return nil, fmt.Errorf("failed to load purchase invoice %s: %w", claim.InvoiceNumber, err)
		}
		if invoice.CreditTo == "" {
			return nil, fmt.Errorf("%w: purchase invoice '%s' has no payable account", apperrors.ErrValidation, claim.InvoiceNumber)
		}
		if len(invoice.Items) == 0 || invoice.Items[0].ExpenseAccount == "" {
			return nil, fmt.Errorf("%w: purchase invoice '%s' has no expense account", apperrors.ErrValidation, claim.InvoiceNumber)
		}

		journalLines = append(journalLines,
			domain.JournalEntryLine{
				Account:   invoice.CreditTo,
				PartyType: domain.PartySupplier,
				Party:     claim.ProviderID,
				Debit:     claim.Debit,
				Reference: claim.InvoiceNumber,
			},
			domain.JournalEntryLine{
				Account:   invoice.Items[0].ExpenseAccount,
				Credit:    claim.Credit,
				Reference: claim.InvoiceNumber,
			},
		)
	}

	now := time.Now()
	entry := domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		Company:        req.Company,
		JournalType:    journalType,
		PostingDate:    postingDate,
		Remark:         req.Remark,
		Lines:          journalLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if !entry.TotalDebit().Equal(entry.TotalCredit()) {
		return nil, fmt.Errorf("%w: journal does not balance (debit %s, credit %s)",
			apperrors.ErrValidation, entry.TotalDebit(), entry.TotalCredit())
	}

	ledgerLines, err := s.postProcessor.ProcessGLMap(ctx, s.toLedgerLines(&entry), true, moneyPrecision, false)
	if err != nil {
		return nil, fmt.Errorf("failed to process journal ledger lines: %w", err)
	}

	if err := s.voucherRepo.SaveJournalEntry(ctx, entry, ledgerLines); err != nil {
		return nil, fmt.Errorf("failed to save claims journal: %w", err)
	}

	logger.Info("Claims journal created",
		slog.String("journal_id", entry.JournalEntryID),
		slog.String("journal_type", string(entry.JournalType)),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// toLedgerLines maps the journal's account rows to proposed ledger lines.
func (s *claimsJournalService) toLedgerLines(entry *domain.JournalEntry) []domain.LedgerLine {
	lines := make([]domain.LedgerLine, 0, len(entry.Lines))
	for _, jl := range entry.Lines {
		line := domain.LedgerLine{
			VoucherType:            domain.JournalEntryVoucher,
			VoucherNo:              entry.JournalEntryID,
			PostingDate:            entry.PostingDate,
			Company:                entry.Company,
			Account:                jl.Account,
			PartyType:              jl.PartyType,
			Party:                  jl.Party,
			Debit:                  jl.Debit,
			Credit:                 jl.Credit,
			DebitInAccountCurrency: jl.Debit,
			CreditInAccountCurrency: jl.Credit,
			Remarks:                entry.Remark,
			Creation:               entry.CreatedAt,
		}
		if jl.Reference != "" {
			line.AgainstVoucherType = domain.PurchaseInvoiceType
			line.AgainstVoucher = jl.Reference
		}
		lines = append(lines, line)
	}
	return lines
}
