package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

type PgxVoucherRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerWriter
}

// newPgxVoucherRepository creates a new repository for payment vouchers and
// claims journal entries. Journal inserts write their ledger lines through
// ledgerRepo inside the same transaction.
func newPgxVoucherRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerWriter) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// FindPaymentVoucherByNo retrieves a payment voucher and its tax rows.
func (r *PgxVoucherRepository) FindPaymentVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error) {
	query := `
		SELECT voucher_no, company, payment_type, apply_tax_withholding_amount,
			party_type, party, paid_from, paid_to, paid_amount, cost_center,
			source_exchange_rate, target_exchange_rate, transaction_exchange_rate,
			tax_payment_account, posting_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM payment_vouchers
		WHERE voucher_no = $1;
	`
	var voucher domain.PaymentVoucher
	var partyType, party, costCenter, taxPaymentAccount *string
	err := r.Pool.QueryRow(ctx, query, voucherNo).Scan(
		&voucher.VoucherNo,
		&voucher.Company,
		&voucher.PaymentType,
		&voucher.ApplyTaxWithholdingAmount,
		&partyType,
		&party,
		&voucher.PaidFrom,
		&voucher.PaidTo,
		&voucher.PaidAmount,
		&costCenter,
		&voucher.SourceExchangeRate,
		&voucher.TargetExchangeRate,
		&voucher.TransactionExchangeRate,
		&taxPaymentAccount,
		&voucher.PostingDate,
		&voucher.CreatedAt,
		&voucher.CreatedBy,
		&voucher.LastUpdatedAt,
		&voucher.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment voucher %s: %w", voucherNo, err)
	}
	voucher.PartyType = domain.PartyType(derefString(partyType))
	voucher.Party = derefString(party)
	voucher.CostCenter = derefString(costCenter)
	voucher.TaxPaymentAccount = derefString(taxPaymentAccount)

	taxes, err := r.findTaxLines(ctx, voucherNo)
	if err != nil {
		return nil, err
	}
	voucher.Taxes = taxes
	return &voucher, nil
}

func (r *PgxVoucherRepository) findTaxLines(ctx context.Context, voucherNo string) ([]domain.TaxLine, error) {
	query := `
		SELECT account_head, tax_amount, base_tax_amount, add_deduct_tax,
			included_in_paid_amount, cost_center
		FROM payment_voucher_taxes
		WHERE voucher_no = $1
		ORDER BY idx;
	`
	rows, err := r.Pool.Query(ctx, query, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax lines for voucher %s: %w", voucherNo, err)
	}
	defer rows.Close()

	taxes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TaxLine, error) {
		var tax domain.TaxLine
		var costCenter *string
		err := row.Scan(
			&tax.AccountHead,
			&tax.TaxAmount,
			&tax.BaseTaxAmount,
			&tax.AddDeductTax,
			&tax.IncludedInPaidAmount,
			&costCenter,
		)
		tax.CostCenter = derefString(costCenter)
		return tax, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tax lines for voucher %s: %w", voucherNo, err)
	}
	return taxes, nil
}

// SaveJournalEntry inserts the journal, its account rows and its processed
// ledger lines in one transaction. No partial voucher survives a failure.
func (r *PgxVoucherRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	entryQuery := `
		INSERT INTO journal_entries (journal_entry_id, company, journal_type, posting_date, remark,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.JournalEntryID,
		entry.Company,
		string(entry.JournalType),
		entry.PostingDate,
		nullableString(entry.Remark),
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.JournalEntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (journal_entry_id, idx, account, party_type, party, debit, credit, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, line := range entry.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			entry.JournalEntryID,
			i,
			line.Account,
			nullableString(string(line.PartyType)),
			nullableString(line.Party),
			line.Debit,
			line.Credit,
			nullableString(line.Reference),
		)
		if err != nil {
			return fmt.Errorf("failed to insert journal line for %s: %w", entry.JournalEntryID, err)
		}
	}

	if err := r.ledgerRepo.InsertLines(ctx, tx, lines); err != nil {
		return fmt.Errorf("failed to insert ledger lines for journal %s: %w", entry.JournalEntryID, err)
	}

	return r.Commit(ctx, tx)
}
