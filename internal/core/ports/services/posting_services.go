package services

import (
	"context"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	"github.com/smartclaims/claimsledger/internal/dto"
)

// GLPostProcessorSvc finalizes a voucher's proposed ledger lines before they
// are persisted. Implementations branch on voucher inspection (withholding
// payment vouchers skip merging); selection is explicit, never a global hook.
type GLPostProcessorSvc interface {
	// ProcessGLMap applies cost-center distribution, optional similar-line
	// merging and debit/credit sign normalization to one voucher's lines.
	ProcessGLMap(ctx context.Context, lines []domain.LedgerLine, mergeEntries bool, precision int32, fromRepost bool) ([]domain.LedgerLine, error)
}

// TaxLineGeneratorSvc emits the tax ledger lines of a payment voucher.
type TaxLineGeneratorSvc interface {
	// AddTaxGLEntries appends the tax (and reversal) lines for the voucher's
	// tax rows to the already-built principal lines and returns the extended
	// slice. Returns apperrors.ErrCurrencyMismatch when a tax account's
	// currency differs from the company currency.
	AddTaxGLEntries(ctx context.Context, voucher *domain.PaymentVoucher, lines []domain.LedgerLine) ([]domain.LedgerLine, error)
}

// ClaimsJournalSvcFacade creates claims journal entries (rejection,
// withholding, adjustment) with balanced ledger lines.
type ClaimsJournalSvcFacade interface {
	CreateClaimsJournal(ctx context.Context, req dto.CreateClaimsJournalRequest, creatorUserID string) (*domain.JournalEntry, error)
}
