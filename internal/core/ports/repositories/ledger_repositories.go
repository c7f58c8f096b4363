package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// LedgerReader defines read operations against the ledger-line store.
type LedgerReader interface {
	// GetGLEntries retrieves ledger rows for a report filter set in the
	// deterministic order the filters select. Supplier-party mode excludes
	// the given withholding account's rows and the degenerate payment-entry
	// self-referencing party/against rows.
	GetGLEntries(ctx context.Context, filters domain.GLReportFilters, dimensions []string, withholdingAccount string) ([]domain.GLRow, error)

	// GetWithholdingLines retrieves the lines a payment voucher posted to the
	// withholding account.
	GetWithholdingLines(ctx context.Context, voucherNo string, withholdingAccount string) ([]domain.LedgerLine, error)
}

// LedgerWriter defines write operations for ledger lines.
type LedgerWriter interface {
	// InsertLines persists processed ledger lines within the given transaction.
	InsertLines(ctx context.Context, tx pgx.Tx, lines []domain.LedgerLine) error
}

// LedgerRepositoryFacade combines ledger read and write operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
