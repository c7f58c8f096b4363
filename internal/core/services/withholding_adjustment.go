package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
)

// adjustmentMode selects which side of a payment row the withholding amount
// is netted from.
type adjustmentMode int

const (
	// supplierPartyMode nets the supplier-facing debit side.
	supplierPartyMode adjustmentMode = iota
	// singleAccountMode nets the bank/paid-from credit side.
	singleAccountMode
)

// applyWithholdingAdjustment subtracts the withholding total posted against a
// payment voucher from that voucher's payment rows, so reports show balances
// net of withholding. Display-only: stored ledger lines are never touched.
// Multiple withholding rows on one voucher are summed before subtracting.
func applyWithholdingAdjustment(ctx context.Context, voucherRepo portsrepo.PaymentVoucherReader, ledgerRepo portsrepo.LedgerReader, rows []domain.GLRow, withholdingAccount string, mode adjustmentMode) ([]domain.GLRow, error) {
	withheldByVoucher := make(map[string]*decimal.Decimal)

	for i := range rows {
		row := &rows[i]
		if row.VoucherType != domain.PaymentEntry || row.Account == withholdingAccount {
			continue
		}

		withheld, ok := withheldByVoucher[row.VoucherNo]
		if !ok {
			amount, err := withholdingTotal(ctx, voucherRepo, ledgerRepo, row.VoucherNo, withholdingAccount)
			if err != nil {
				return nil, err
			}
			withheld = amount
			withheldByVoucher[row.VoucherNo] = withheld
		}
		if withheld == nil || withheld.IsZero() {
			continue
		}

		switch mode {
		case supplierPartyMode:
			row.Debit = row.Debit.Sub(*withheld)
			row.DebitInAccountCurrency = row.DebitInAccountCurrency.Sub(*withheld)
		case singleAccountMode:
			row.Credit = row.Credit.Sub(*withheld)
			row.CreditInAccountCurrency = row.CreditInAccountCurrency.Sub(*withheld)
		}
	}
	return rows, nil
}

// withholdingTotal returns the net withholding amount a payment voucher posted
// to the withholding account, or nil when the voucher does not apply
// withholding.
func withholdingTotal(ctx context.Context, voucherRepo portsrepo.PaymentVoucherReader, ledgerRepo portsrepo.LedgerReader, voucherNo, withholdingAccount string) (*decimal.Decimal, error) {
	voucher, err := voucherRepo.FindPaymentVoucherByNo(ctx, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment voucher %s for withholding adjustment: %w", voucherNo, err)
	}
	if !voucher.ApplyTaxWithholdingAmount {
		return nil, nil
	}

	lines, err := ledgerRepo.GetWithholdingLines(ctx, voucherNo, withholdingAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to load withholding lines for %s: %w", voucherNo, err)
	}

	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Debit).Sub(lines[i].Credit)
	}
	return &total, nil
}
