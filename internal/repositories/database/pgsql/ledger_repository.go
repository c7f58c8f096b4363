package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for general-ledger lines.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const glEntryColumns = `gl_entry_id, company, voucher_type, voucher_no, posting_date, account,
		party_type, party, debit, credit,
		debit_in_account_currency, credit_in_account_currency,
		debit_in_transaction_currency, credit_in_transaction_currency,
		account_currency, transaction_currency,
		against, against_voucher_type, against_voucher,
		cost_center, project, is_opening, post_net_value, remarks, creation, dimensions`

// GetGLEntries retrieves report rows for a filter set. Supplier-party mode
// excludes the withholding account's rows and the payment entry's degenerate
// self-referencing party/against rows; both stay queryable by voucher.
func (r *PgxLedgerRepository) GetGLEntries(ctx context.Context, filters domain.GLReportFilters, dimensions []string, withholdingAccount string) ([]domain.GLRow, error) {
	var sb strings.Builder
	args := []any{filters.Company}
	sb.WriteString(`SELECT ` + glEntryColumns + ` FROM gl_entries WHERE company = $1`)

	addArg := func(clause string, value any) {
		args = append(args, value)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}

	if !filters.ToDate.IsZero() {
		addArg("posting_date <= $%d", filters.ToDate)
	}
	if filters.PartyType == domain.PartySupplier && filters.PartyName != "" {
		addArg("account != $%d", withholdingAccount)
		sb.WriteString(` AND NOT (party_type = 'Supplier' AND against = party AND voucher_type = 'Payment Entry')`)
		addArg("party = $%d", filters.PartyName)
	} else if filters.PartyType != "" && filters.PartyName != "" {
		addArg("party_type = $%d", string(filters.PartyType))
		addArg("party = $%d", filters.PartyName)
	}
	if filters.Account != "" {
		addArg("account = $%d", filters.Account)
	}
	if filters.VoucherNo != "" {
		addArg("voucher_no = $%d", filters.VoucherNo)
	}
	if filters.CostCenter != "" {
		addArg("cost_center = $%d", filters.CostCenter)
	}
	if filters.Project != "" {
		addArg("project = $%d", filters.Project)
	}
	if filters.IncludeDefaultBookEntries && filters.CompanyFinanceBook != "" {
		addArg("(finance_book = $%d OR finance_book IS NULL OR finance_book = '')", filters.CompanyFinanceBook)
	}

	sb.WriteString(orderByStatement(filters))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gl entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, scanGLRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan gl entries: %w", err)
	}
	return entries, nil
}

// orderByStatement picks the deterministic row ordering for the report mode.
func orderByStatement(filters domain.GLReportFilters) string {
	switch {
	case filters.CategorizeBy == domain.CategorizeByVoucher:
		return " ORDER BY posting_date, voucher_type, voucher_no"
	case filters.CategorizeBy == domain.CategorizeByAccount:
		return " ORDER BY account, posting_date, creation"
	case filters.IncludeDimensions:
		return " ORDER BY posting_date, creation"
	default:
		return " ORDER BY posting_date, account, creation"
	}
}

// GetWithholdingLines retrieves the lines a payment voucher posted to the
// company withholding account.
func (r *PgxLedgerRepository) GetWithholdingLines(ctx context.Context, voucherNo string, withholdingAccount string) ([]domain.LedgerLine, error) {
	query := `SELECT ` + glEntryColumns + `
		FROM gl_entries
		WHERE voucher_type = 'Payment Entry' AND voucher_no = $1 AND account = $2
		ORDER BY creation`

	rows, err := r.Pool.Query(ctx, query, voucherNo, withholdingAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to query withholding lines for voucher %s: %w", voucherNo, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, scanGLRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan withholding lines for voucher %s: %w", voucherNo, err)
	}

	lines := make([]domain.LedgerLine, len(entries))
	for i := range entries {
		lines[i] = entries[i].LedgerLine
	}
	return lines, nil
}

// InsertLines persists processed ledger lines within the given transaction.
func (r *PgxLedgerRepository) InsertLines(ctx context.Context, tx pgx.Tx, lines []domain.LedgerLine) error {
	query := `
		INSERT INTO gl_entries (` + glEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`
	for i := range lines {
		l := &lines[i]
		_, err := tx.Exec(ctx, query,
			l.GLEntryID,
			l.Company,
			string(l.VoucherType),
			l.VoucherNo,
			l.PostingDate,
			l.Account,
			nullableString(string(l.PartyType)),
			nullableString(l.Party),
			l.Debit,
			l.Credit,
			l.DebitInAccountCurrency,
			l.CreditInAccountCurrency,
			l.DebitInTransactionCurrency,
			l.CreditInTransactionCurrency,
			l.AccountCurrency,
			nullableString(l.TransactionCurrency),
			nullableString(l.Against),
			nullableString(string(l.AgainstVoucherType)),
			nullableString(l.AgainstVoucher),
			nullableString(l.CostCenter),
			nullableString(l.Project),
			l.IsOpening,
			l.PostNetValue,
			nullableString(l.Remarks),
			l.Creation,
			l.Dimensions,
		)
		if err != nil {
			return fmt.Errorf("failed to insert gl entry for voucher %s: %w", l.VoucherNo, err)
		}
	}
	return nil
}

// scanGLRow maps one gl_entries row onto the report row type.
func scanGLRow(row pgx.CollectableRow) (domain.GLRow, error) {
	var entry domain.GLRow
	var partyType, transactionCurrency, against, againstVoucherType, againstVoucher *string
	var party, costCenter, project, remarks *string

	err := row.Scan(
		&entry.GLEntryID,
		&entry.Company,
		&entry.VoucherType,
		&entry.VoucherNo,
		&entry.PostingDate,
		&entry.Account,
		&partyType,
		&party,
		&entry.Debit,
		&entry.Credit,
		&entry.DebitInAccountCurrency,
		&entry.CreditInAccountCurrency,
		&entry.DebitInTransactionCurrency,
		&entry.CreditInTransactionCurrency,
		&entry.AccountCurrency,
		&transactionCurrency,
		&against,
		&againstVoucherType,
		&againstVoucher,
		&costCenter,
		&project,
		&entry.IsOpening,
		&entry.PostNetValue,
		&remarks,
		&entry.Creation,
		&entry.Dimensions,
	)
	if err != nil {
		return entry, err
	}

	entry.PartyType = domain.PartyType(derefString(partyType))
	entry.Party = derefString(party)
	entry.TransactionCurrency = derefString(transactionCurrency)
	entry.Against = derefString(against)
	entry.AgainstVoucherType = domain.VoucherType(derefString(againstVoucherType))
	entry.AgainstVoucher = derefString(againstVoucher)
	entry.CostCenter = derefString(costCenter)
	entry.Project = derefString(project)
	entry.Remarks = derefString(remarks)
	return entry, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
