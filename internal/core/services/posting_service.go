package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
	portsrepo "github.com/smartclaims/claimsledger/internal/core/ports/repositories"
	portssvc "github.com/smartclaims/claimsledger/internal/core/ports/services"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// glPostProcessor finalizes a voucher's proposed ledger lines: cost-center
// distribution, similar-line merging and sign normalization. Withholding
// payment vouchers keep their lines unmerged so the withholding account's
// rows stay isolatable downstream.
type glPostProcessor struct {
	voucherRepo portsrepo.PaymentVoucherReader
	companyRepo portsrepo.CostCenterAllocationReader
}

// NewGLPostProcessor creates the default GL post-processing service.
func NewGLPostProcessor(voucherRepo portsrepo.PaymentVoucherReader, companyRepo portsrepo.CostCenterAllocationReader) portssvc.GLPostProcessorSvc {
	return &glPostProcessor{
		voucherRepo: voucherRepo,
		companyRepo: companyRepo,
	}
}

var _ portssvc.GLPostProcessorSvc = (*glPostProcessor)(nil)

// ProcessGLMap implements portssvc.GLPostProcessorSvc.
func (s *glPostProcessor) ProcessGLMap(ctx context.Context, glMap []domain.LedgerLine, mergeEntries bool, precision int32, fromRepost bool) ([]domain.LedgerLine, error) {
	if len(glMap) == 0 {
		return []domain.LedgerLine{}, nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	skipMerge := false
	head := glMap[0]
	if head.VoucherType == domain.PaymentEntry {
		voucher, err := s.voucherRepo.FindPaymentVoucherByNo(ctx, head.VoucherNo)
		if err != nil {
			// A payment entry whose voucher cannot be resolved is a broken
			// posting; never skip it silently.
			logger.Error("Failed to load payment voucher for GL processing",
				slog.String("voucher_no", head.VoucherNo), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to load payment voucher %s: %w", head.VoucherNo, err)
		}
		skipMerge = voucher.ApplyTaxWithholdingAmount
	}

	var err error
	if head.VoucherType != domain.PeriodClosingVoucher {
		glMap, err = s.distributeByCostCenterAllocation(ctx, glMap, precision, fromRepost)
		if err != nil {
			return nil, err
		}
	}

	if mergeEntries && !skipMerge {
		glMap = mergeSimilarEntries(glMap, precision)
	}

	glMap = toggleDebitCreditIfNegative(glMap)

	if debit, credit := domain.SumDebitCredit(glMap); !debit.Round(precision).Equal(credit.Round(precision)) {
		logger.Error("GL map out of balance after processing",
			slog.String("voucher_no", head.VoucherNo),
			slog.String("debit", debit.String()), slog.String("credit", credit.String()))
		return nil, fmt.Errorf("voucher %s does not balance: debit %s, credit %s", head.VoucherNo, debit, credit)
	}

	return glMap, nil
}

// distributeByCostCenterAllocation splits lines across target cost centers
// per the allocation percentages active on the posting date. The last split
// absorbs the rounding remainder so the voucher stays balanced.
func (s *glPostProcessor) distributeByCostCenterAllocation(ctx context.Context, glMap []domain.LedgerLine, precision int32, fromRepost bool) ([]domain.LedgerLine, error) {
	out := make([]domain.LedgerLine, 0, len(glMap))
	hundred := decimal.NewFromInt(100)

	for _, line := range glMap {
		if line.CostCenter == "" {
			out = append(out, line)
			continue
		}

		allocations, err := s.companyRepo.AllocationsFor(ctx, line.CostCenter, line.PostingDate)
		if err != nil {
			if fromRepost {
				// Reposts may reference allocation rules retired since the
				// original posting; keep the line on its recorded cost center.
				out = append(out, line)
				continue
			}
			return nil, fmt.Errorf("failed to resolve cost center allocation for %s: %w", line.CostCenter, err)
		}
		if len(allocations) == 0 {
			out = append(out, line)
			continue
		}

		targets := make([]string, 0, len(allocations))
		for target := range allocations {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		remDebit, remCredit := line.Debit, line.Credit
		remDebitAcc, remCreditAcc := line.DebitInAccountCurrency, line.CreditInAccountCurrency
		for i, target := range targets {
			split := line
			split.CostCenter = target
			if i == len(targets)-1 {
				split.Debit, split.Credit = remDebit, remCredit
				split.DebitInAccountCurrency, split.CreditInAccountCurrency = remDebitAcc, remCreditAcc
			} else {
				pct := allocations[target].Div(hundred)
				split.Debit = line.Debit.Mul(pct).Round(precision)
				split.Credit = line.Credit.Mul(pct).Round(precision)
				split.DebitInAccountCurrency = line.DebitInAccountCurrency.Mul(pct).Round(precision)
				split.CreditInAccountCurrency = line.CreditInAccountCurrency.Mul(pct).Round(precision)
				remDebit = remDebit.Sub(split.Debit)
				remCredit = remCredit.Sub(split.Credit)
				remDebitAcc = remDebitAcc.Sub(split.DebitInAccountCurrency)
				remCreditAcc = remCreditAcc.Sub(split.CreditInAccountCurrency)
			}
			out = append(out, split)
		}
	}
	return out, nil
}

// mergeKey is the signature under which lines of one voucher are considered
// the same posting head.
func mergeKey(line *domain.LedgerLine) string {
	parts := []string{
		line.Account,
		string(line.PartyType),
		line.Party,
		line.CostCenter,
		string(line.AgainstVoucherType),
		line.AgainstVoucher,
		line.Project,
	}
	dims := make([]string, 0, len(line.Dimensions))
	for name := range line.Dimensions {
		dims = append(dims, name)
	}
	sort.Strings(dims)
	for _, name := range dims {
		parts = append(parts, name+"="+line.Dimensions[name])
	}
	return strings.Join(parts, "|")
}

// mergeSimilarEntries sums lines sharing a merge key, keeping first-seen key
// order, and drops lines whose both sides round to zero. Re-running it on its
// own output is a fixpoint.
func mergeSimilarEntries(glMap []domain.LedgerLine, precision int32) []domain.LedgerLine {
	merged := make([]domain.LedgerLine, 0, len(glMap))
	index := make(map[string]int, len(glMap))

	for _, line := range glMap {
		key := mergeKey(&line)
		if at, ok := index[key]; ok {
			existing := &merged[at]
			existing.Debit = existing.Debit.Add(line.Debit)
			existing.Credit = existing.Credit.Add(line.Credit)
			existing.DebitInAccountCurrency = existing.DebitInAccountCurrency.Add(line.DebitInAccountCurrency)
			existing.CreditInAccountCurrency = existing.CreditInAccountCurrency.Add(line.CreditInAccountCurrency)
			existing.DebitInTransactionCurrency = existing.DebitInTransactionCurrency.Add(line.DebitInTransactionCurrency)
			existing.CreditInTransactionCurrency = existing.CreditInTransactionCurrency.Add(line.CreditInTransactionCurrency)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, line)
	}

	out := make([]domain.LedgerLine, 0, len(merged))
	for _, line := range merged {
		if line.Debit.Round(precision).IsZero() && line.Credit.Round(precision).IsZero() && !line.IsOpening {
			continue
		}
		out = append(out, line)
	}
	return out
}

// toggleDebitCreditIfNegative flips any negative amount to the opposite side
// so stored amounts are non-negative with the sign encoded by the slot.
func toggleDebitCreditIfNegative(glMap []domain.LedgerLine) []domain.LedgerLine {
	for i := range glMap {
		line := &glMap[i]
		if line.Debit.IsNegative() {
			line.Credit = line.Credit.Sub(line.Debit)
			line.Debit = decimal.Zero
		}
		if line.Credit.IsNegative() {
			line.Debit = line.Debit.Sub(line.Credit)
			line.Credit = decimal.Zero
		}
		if line.DebitInAccountCurrency.IsNegative() {
			line.CreditInAccountCurrency = line.CreditInAccountCurrency.Sub(line.DebitInAccountCurrency)
			line.DebitInAccountCurrency = decimal.Zero
		}
		if line.CreditInAccountCurrency.IsNegative() {
			line.DebitInAccountCurrency = line.DebitInAccountCurrency.Sub(line.CreditInAccountCurrency)
			line.CreditInAccountCurrency = decimal.Zero
		}
		if line.DebitInTransactionCurrency.IsNegative() {
			line.CreditInTransactionCurrency = line.CreditInTransactionCurrency.Sub(line.DebitInTransactionCurrency)
			line.DebitInTransactionCurrency = decimal.Zero
		}
		if line.CreditInTransactionCurrency.IsNegative() {
			line.DebitInTransactionCurrency = line.DebitInTransactionCurrency.Sub(line.CreditInTransactionCurrency)
			line.CreditInTransactionCurrency = decimal.Zero
		}
	}
	return glMap
}
