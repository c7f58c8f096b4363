package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
)

// moneyPrecision is the paid-amount rounding precision of payment vouchers.
const moneyPrecision int32 = 2

// taxLineGenerator emits the tax ledger lines of a payment voucher. For
// withholding vouchers every tax row produces a reversal against the first
// principal account followed by the tax posting itself, so the non-withholding
// account balance stays visible before the tax posting.
type taxLineGenerator struct {
	accountRepo portsrepo.AccountReader
	companyRepo portsrepo.CompanyReader
}

// NewTaxLineGenerator creates the tax-line generation service.
func NewTaxLineGenerator(accountRepo portsrepo.AccountReader, companyRepo portsrepo.CompanyReader) portssvc.TaxLineGeneratorSvc {
	return &taxLineGenerator{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
	}
}

var _ portssvc.TaxLineGeneratorSvc = (*taxLineGenerator)(nil)

// side is a debit/credit slot selector for generated lines.
type side int

const (
	debitSide side = iota
	creditSide
)

func (s side) opposite() side {
	if s == debitSide {
		return creditSide
	}
	return debitSide
}

// orientation returns the primary posting side for a tax row given the
// voucher's payment direction.
func orientation(paymentType domain.PaymentType, addDeduct domain.AddDeductTax) side {
	if paymentType == domain.PaymentReceive {
		if addDeduct == domain.TaxAdd {
			return creditSide
		}
		return debitSide
	}
	// Pay and Internal Transfer.
	if addDeduct == domain.TaxAdd {
		return debitSide
	}
	return creditSide
}

// AddTaxGLEntries implements portssvc.TaxLineGeneratorSvc.
func (s *taxLineGenerator) AddTaxGLEntries(ctx context.Context, voucher *domain.PaymentVoucher, lines []domain.LedgerLine) ([]domain.LedgerLine, error) {
	if len(voucher.Taxes) == 0 {
		return lines, nil
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, voucher.Company)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company %s: %w", voucher.Company, err)
	}
	companyCurrency := company.DefaultCurrency

	if voucher.ApplyTaxWithholdingAmount {
		return s.addWithholdingTaxEntries(ctx, voucher, lines, companyCurrency)
	}
	return s.addRegularTaxEntries(ctx, voucher, lines, companyCurrency)
}

func (s *taxLineGenerator) addWithholdingTaxEntries(ctx context.Context, voucher *domain.PaymentVoucher, lines []domain.LedgerLine, companyCurrency string) ([]domain.LedgerLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: withholding voucher %s has no principal ledger lines", apperrors.ErrValidation, voucher.VoucherNo)
	}
	firstAccount := lines[0].Account

	for _, d := range voucher.Taxes {
		taxAccount, err := s.accountRepo.FindAccountByID(ctx, d.AccountHead)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tax account %s: %w", d.AccountHead, err)
		}
		if taxAccount.Currency != companyCurrency {
			return nil, fmt.Errorf("%w: currency for %s must be %s", apperrors.ErrCurrencyMismatch, d.AccountHead, companyCurrency)
		}

		drOrCr := orientation(voucher.PaymentType, d.AddDeductTax)
		against := voucher.Party
		if against == "" {
			against = voucher.PaidAccount()
		}

		if !d.IncludedInPaidAmount {
			reversal := newPaymentLine(voucher, firstAccount, taxAccount.Currency, against, voucher.CostCenter)
			setAmounts(&reversal, drOrCr.opposite(), d.TaxAmount, d.BaseTaxAmount, transactionAmount(d.BaseTaxAmount, voucher.TransactionExchangeRate))

			firstAcct, err := s.accountRepo.FindAccountByID(ctx, firstAccount)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve account %s: %w", firstAccount, err)
			}
			if firstAcct.AccountType == domain.AccountReceivable || firstAcct.AccountType == domain.AccountPayable {
				reversal.PartyType = domain.PartySupplier
				reversal.Party = voucher.Party
			}
			lines = append(lines, reversal)
		}

		taxLine := newPaymentLine(voucher, d.AccountHead, taxAccount.Currency, against, d.CostCenter)
		setAmounts(&taxLine, drOrCr, d.TaxAmount, d.BaseTaxAmount, transactionAmount(d.BaseTaxAmount, voucher.TransactionExchangeRate))
		lines = append(lines, taxLine)
	}
	return lines, nil
}

func (s *taxLineGenerator) addRegularTaxEntries(ctx context.Context, voucher *domain.PaymentVoucher, lines []domain.LedgerLine, companyCurrency string) ([]domain.LedgerLine, error) {
	for _, d := range voucher.Taxes {
		taxAccount, err := s.accountRepo.FindAccountByID(ctx, d.AccountHead)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tax account %s: %w", d.AccountHead, err)
		}
		if taxAccount.Currency != companyCurrency {
			return nil, fmt.Errorf("%w: currency for %s must be %s", apperrors.ErrCurrencyMismatch, d.AccountHead, companyCurrency)
		}

		drOrCr := orientation(voucher.PaymentType, d.AddDeductTax)
		against := voucher.Party
		if against == "" {
			against = voucher.PaidAccount()
		}

		taxLine := newPaymentLine(voucher, d.AccountHead, taxAccount.Currency, against, d.CostCenter)
		setAmounts(&taxLine, drOrCr, d.TaxAmount, d.BaseTaxAmount, transactionAmount(d.BaseTaxAmount, voucher.TransactionExchangeRate))
		lines = append(lines, taxLine)

		if d.IncludedInPaidAmount {
			continue
		}

		paymentAccount := voucher.TaxPaymentAccount
		if paymentAccount == "" {
			paymentAccount = voucher.PaidAccount()
		}
		payAcct, err := s.accountRepo.FindAccountByID(ctx, paymentAccount)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tax payment account %s: %w", paymentAccount, err)
		}

		baseTaxAmount := d.BaseTaxAmount
		if payAcct.Currency != companyCurrency {
			rate := voucher.SourceExchangeRate
			if voucher.PaymentType == domain.PaymentReceive {
				rate = voucher.TargetExchangeRate
			}
			if !rate.IsZero() {
				baseTaxAmount = d.TaxAmount.Div(rate).Round(moneyPrecision)
			}
		}

		reversal := newPaymentLine(voucher, paymentAccount, taxAccount.Currency, against, voucher.CostCenter)
		setAmounts(&reversal, drOrCr.opposite(), d.TaxAmount, baseTaxAmount, transactionAmount(baseTaxAmount, voucher.TransactionExchangeRate))
		lines = append(lines, reversal)
	}
	return lines, nil
}

// newPaymentLine builds a ledger line carrying the voucher's posting metadata.
// Generated tax lines always post net values.
func newPaymentLine(voucher *domain.PaymentVoucher, account, accountCurrency, against, costCenter string) domain.LedgerLine {
	return domain.LedgerLine{
		Company:         voucher.Company,
		VoucherType:     domain.PaymentEntry,
		VoucherNo:       voucher.VoucherNo,
		PostingDate:     voucher.PostingDate,
		Account:         account,
		AccountCurrency: accountCurrency,
		Against:         against,
		CostCenter:      costCenter,
		PostNetValue:    true,
	}
}

// setAmounts writes the company/account/transaction-currency amounts into the
// chosen slot of the line.
func setAmounts(line *domain.LedgerLine, slot side, amount, accountAmount, transactionAmount decimal.Decimal) {
	if slot == debitSide {
		line.Debit = amount
		line.DebitInAccountCurrency = accountAmount
		line.DebitInTransactionCurrency = transactionAmount
		return
	}
	line.Credit = amount
	line.CreditInAccountCurrency = accountAmount
	line.CreditInTransactionCurrency = transactionAmount
}

// transactionAmount converts a base amount into the transaction currency.
// A zero exchange rate yields zero rather than a division fault.
func transactionAmount(baseAmount, exchangeRate decimal.Decimal) decimal.Decimal {
	if exchangeRate.IsZero() {
		return decimal.Zero
	}
	return baseAmount.Div(exchangeRate)
}
