package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for purchase invoices,
// sales invoices and credit notes.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// SavePurchaseInvoice inserts the invoice and its items in one transaction.
func (r *PgxInvoiceRepository) SavePurchaseInvoice(ctx context.Context, invoice domain.PurchaseInvoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO purchase_invoices (invoice_id, company, supplier, invoice_type, refund_id,
			posting_date, bill_no, credit_to,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		invoice.InvoiceID,
		nullableString(invoice.Company),
		invoice.Supplier,
		string(invoice.InvoiceType),
		nullableString(invoice.RefundID),
		invoice.PostingDate,
		nullableString(invoice.BillNo),
		nullableString(invoice.CreditTo),
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: purchase invoice '%s'", apperrors.ErrDuplicate, invoice.InvoiceID)
		}
		return fmt.Errorf("failed to save purchase invoice %s: %w", invoice.InvoiceID, err)
	}

	itemQuery := `
		INSERT INTO purchase_invoice_items (invoice_id, idx, item_code, qty, rate, expense_account)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, item := range invoice.Items {
		_, err = tx.Exec(ctx, itemQuery,
			invoice.InvoiceID,
			i,
			item.ItemCode,
			item.Qty,
			item.Rate,
			nullableString(item.ExpenseAccount),
		)
		if err != nil {
			return fmt.Errorf("failed to save purchase invoice item for %s: %w", invoice.InvoiceID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindPurchaseInvoiceByID retrieves an invoice and its items.
func (r *PgxInvoiceRepository) FindPurchaseInvoiceByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `
		SELECT invoice_id, company, supplier, invoice_type, refund_id,
			posting_date, bill_no, credit_to,
			created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_invoices
		WHERE invoice_id = $1;
	`
	var invoice domain.PurchaseInvoice
	var company, refundID, billNo, creditTo *string
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&invoice.InvoiceID,
		&company,
		&invoice.Supplier,
		&invoice.InvoiceType,
		&refundID,
		&invoice.PostingDate,
		&billNo,
		&creditTo,
		&invoice.CreatedAt,
		&invoice.CreatedBy,
		&invoice.LastUpdatedAt,
		&invoice.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase invoice %s: %w", invoiceID, err)
	}
	invoice.Company = derefString(company)
	invoice.RefundID = derefString(refundID)
	invoice.BillNo = derefString(billNo)
	invoice.CreditTo = derefString(creditTo)

	itemQuery := `
		SELECT item_code, qty, rate, expense_account
		FROM purchase_invoice_items
		WHERE invoice_id = $1
		ORDER BY idx;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PurchaseInvoiceItem, error) {
		var item domain.PurchaseInvoiceItem
		var expenseAccount *string
		err := row.Scan(&item.ItemCode, &item.Qty, &item.Rate, &expenseAccount)
		item.ExpenseAccount = derefString(expenseAccount)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for purchase invoice %s: %w", invoiceID, err)
	}
	invoice.Items = items
	return &invoice, nil
}

// SaveSalesInvoice inserts the invoice and its items in one transaction.
func (r *PgxInvoiceRepository) SaveSalesInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO sales_invoices (invoice_id, company, customer, invoice_number, posting_date,
			cover_period_start, cover_period_end, next_invoice_date,
			insurance_type, card_option, current_amount,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.Company,
		invoice.Customer,
		invoice.InvoiceNumber,
		invoice.PostingDate,
		invoice.CoverPeriodStart,
		invoice.CoverPeriodEnd,
		invoice.NextInvoiceDate,
		nullableString(invoice.InsuranceType),
		nullableString(invoice.CardOption),
		invoice.CurrentAmount,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: sales invoice '%s'", apperrors.ErrDuplicate, invoice.InvoiceNumber)
		}
		return fmt.Errorf("failed to save sales invoice %s: %w", invoice.InvoiceNumber, err)
	}

	itemQuery := `
		INSERT INTO sales_invoice_items (invoice_id, idx, item_code, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, item := range invoice.Items {
		_, err = tx.Exec(ctx, itemQuery,
			invoice.InvoiceID,
			i,
			item.ItemCode,
			item.Qty,
			item.Rate,
			item.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to save sales invoice item for %s: %w", invoice.InvoiceNumber, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindSalesInvoiceByNumber retrieves an invoice by its customer-facing number.
func (r *PgxInvoiceRepository) FindSalesInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.SalesInvoice, error) {
	query := `
		SELECT invoice_id, company, customer, invoice_number, posting_date,
			cover_period_start, cover_period_end, next_invoice_date,
			insurance_type, card_option, current_amount,
			created_at, created_by, last_updated_at, last_updated_by
		FROM sales_invoices
		WHERE invoice_number = $1;
	`
	var invoice domain.SalesInvoice
	var insuranceType, cardOption *string
	err := r.Pool.QueryRow(ctx, query, invoiceNumber).Scan(
		&invoice.InvoiceID,
		&invoice.Company,
		&invoice.Customer,
		&invoice.InvoiceNumber,
		&invoice.PostingDate,
		&invoice.CoverPeriodStart,
		&invoice.CoverPeriodEnd,
		&invoice.NextInvoiceDate,
		&insuranceType,
		&cardOption,
		&invoice.CurrentAmount,
		&invoice.CreatedAt,
		&invoice.CreatedBy,
		&invoice.LastUpdatedAt,
		&invoice.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sales invoice %s: %w", invoiceNumber, err)
	}
	invoice.InsuranceType = derefString(insuranceType)
	invoice.CardOption = derefString(cardOption)
	return &invoice, nil
}

// SaveCreditNote inserts a credit note.
func (r *PgxInvoiceRepository) SaveCreditNote(ctx context.Context, note domain.CreditNote) error {
	query := `
		INSERT INTO credit_notes (credit_note_id, invoice_number, insurance_type, amount, reason, posting_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		note.CreditNoteID,
		note.InvoiceNumber,
		note.InsuranceType,
		note.Amount,
		nullableString(note.Reason),
		note.PostingDate,
		note.CreatedAt,
		note.CreatedBy,
		note.LastUpdatedAt,
		note.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: credit note '%s'", apperrors.ErrDuplicate, note.CreditNoteID)
		}
		return fmt.Errorf("failed to save credit note %s: %w", note.CreditNoteID, err)
	}
	return nil
}
