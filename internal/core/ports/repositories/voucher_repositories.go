package repositories

import (
	"context"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// PaymentVoucherReader loads payment vouchers referenced by ledger lines.
type PaymentVoucherReader interface {
	// FindPaymentVoucherByNo retrieves a payment voucher by voucher number.
	// Returns apperrors.ErrNotFound when absent.
	FindPaymentVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error)
}

// JournalEntryWriter persists claims journal entries and their ledger lines.
type JournalEntryWriter interface {
	// SaveJournalEntry inserts the journal and its processed ledger lines
	// atomically. No partial voucher survives a failure.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) error
}

// VoucherRepositoryFacade combines voucher read and write operations.
type VoucherRepositoryFacade interface {
	PaymentVoucherReader
	JournalEntryWriter
}
