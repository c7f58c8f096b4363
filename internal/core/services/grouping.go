package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/apperrors"
	"github.com/smartclaims/claimsledger/internal/core/domain"
	"github.com/smartclaims/claimsledger/internal/middleware"
)

// GetAccountwiseGLE groups annotated ledger rows into opening/total/closing
// buckets, one group per key, with optional same-voucher consolidation.
//
// Key selection: "Categorize by Party" groups on party, "Categorize by
// Account" and "Categorize by Voucher (Consolidated)" group on account,
// anything else groups on voucher number.
func (s *ledgerReportService) GetAccountwiseGLE(ctx context.Context, filters domain.GLReportFilters, dimensions []string, rows []domain.GLRow) (*domain.GLReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	report := &domain.GLReport{}

	consolidated := filters.CategorizeBy == domain.CategorizeByVoucherConsolidated

	if consolidated {
		withholding, err := s.anyWithholdingVoucher(ctx, rows)
		if err != nil {
			return nil, err
		}
		// Consolidating withholding-split payment lines would hide the
		// withholding breakdown, so the rows pass through unmerged.
		if withholding {
			for i := range rows {
				report.Totals.Total.Accumulate(&rows[i])
				report.Totals.Closing.Accumulate(&rows[i])
			}
			report.Entries = rows
			logger.Debug("Consolidation bypassed for withholding payment voucher", slog.Int("row_count", len(rows)))
			return report, nil
		}
	}

	groups := make(map[string]*domain.GroupBucket)
	var groupOrder []string
	groupFor := func(key string) *domain.GroupBucket {
		if g, ok := groups[key]; ok {
			return g
		}
		g := &domain.GroupBucket{Key: key}
		groups[key] = g
		groupOrder = append(groupOrder, key)
		return g
	}

	includeCreation := !filters.IgnoreImmutableLedger
	merged := make(map[string]*domain.GLRow)
	var mergedOrder []string

	for i := range rows {
		row := &rows[i]

		if row.PostingDate.Before(filters.FromDate) || (row.IsOpening && !filters.ShowOpeningEntries) {
			report.Totals.Opening.Accumulate(row)
			report.Totals.Closing.Accumulate(row)
			if !consolidated {
				g := groupFor(groupKey(filters.CategorizeBy, row))
				g.Opening.Accumulate(row)
				g.Closing.Accumulate(row)
			}
			continue
		}

		if row.PostingDate.After(filters.ToDate) && !(row.IsOpening && filters.ShowOpeningEntries) {
			continue
		}

		if !consolidated {
			report.Totals.Total.Accumulate(row)
			report.Totals.Closing.Accumulate(row)
			g := groupFor(groupKey(filters.CategorizeBy, row))
			g.Total.Accumulate(row)
			g.Closing.Accumulate(row)
			g.Rows = append(g.Rows, *row)
			report.Entries = append(report.Entries, *row)
			continue
		}

		key := domain.ConsolidationKey(row, includeCreation, dimensions, filters.IncludeDimensions)
		if seed, ok := merged[key]; ok {
			accumulateInto(seed, row)
		} else {
			dup := *row
			merged[key] = &dup
			mergedOrder = append(mergedOrder, key)
		}
	}

	if consolidated {
		for _, key := range mergedOrder {
			entry := merged[key]
			report.Totals.Total.Accumulate(entry)
			report.Totals.Closing.Accumulate(entry)
			g := groupFor(entry.Account)
			g.Total.Accumulate(entry)
			g.Closing.Accumulate(entry)
			g.Rows = append(g.Rows, *entry)
			report.Entries = append(report.Entries, *entry)
		}
	}

	for _, key := range groupOrder {
		g := groups[key]
		if filters.ShowNetValuesInPartyAccount && s.isPartyAccountGroup(ctx, filters.CategorizeBy, key) {
			netBucket(&g.Opening)
			netBucket(&g.Total)
			netBucket(&g.Closing)
		}
		report.Groups = append(report.Groups, *g)
	}

	return report, nil
}

// groupKey returns the per-row grouping key for the selected mode.
func groupKey(mode domain.CategorizeBy, row *domain.GLRow) string {
	switch mode {
	case domain.CategorizeByParty:
		return row.Party
	case domain.CategorizeByAccount, domain.CategorizeByVoucherConsolidated:
		return row.Account
	default:
		return row.VoucherNo
	}
}

// accumulateInto merges src into the consolidated seed dst: amounts sum and
// distinct against-voucher references concatenate.
func accumulateInto(dst *domain.GLRow, src *domain.GLRow) {
	dst.Debit = dst.Debit.Add(src.Debit)
	dst.Credit = dst.Credit.Add(src.Credit)
	dst.DebitInAccountCurrency = dst.DebitInAccountCurrency.Add(src.DebitInAccountCurrency)
	dst.CreditInAccountCurrency = dst.CreditInAccountCurrency.Add(src.CreditInAccountCurrency)
	dst.DebitInTransactionCurrency = dst.DebitInTransactionCurrency.Add(src.DebitInTransactionCurrency)
	dst.CreditInTransactionCurrency = dst.CreditInTransactionCurrency.Add(src.CreditInTransactionCurrency)
	if src.AgainstVoucher != "" && src.AgainstVoucher != dst.AgainstVoucher {
		if dst.AgainstVoucher == "" {
			dst.AgainstVoucher = src.AgainstVoucher
		} else {
			dst.AgainstVoucher = dst.AgainstVoucher + ", " + src.AgainstVoucher
		}
	}
}

// netBucket collapses debit and credit into one signed side: debit when the
// net is non-negative, credit otherwise.
func netBucket(b *domain.TotalsBucket) {
	net := b.Debit.Sub(b.Credit)
	if net.IsNegative() {
		b.Debit = decimal.Zero
		b.Credit = net.Neg()
	} else {
		b.Debit = net
		b.Credit = decimal.Zero
	}
	netAC := b.DebitInAccountCurrency.Sub(b.CreditInAccountCurrency)
	if netAC.IsNegative() {
		b.DebitInAccountCurrency = decimal.Zero
		b.CreditInAccountCurrency = netAC.Neg()
	} else {
		b.DebitInAccountCurrency = netAC
		b.CreditInAccountCurrency = decimal.Zero
	}
}

// anyWithholdingVoucher reports whether any payment voucher contributing to
// the row set carries the tax-withholding flag.
func (s *ledgerReportService) anyWithholdingVoucher(ctx context.Context, rows []domain.GLRow) (bool, error) {
	seen := make(map[string]bool)
	for i := range rows {
		if rows[i].VoucherType != domain.PaymentEntry || seen[rows[i].VoucherNo] {
			continue
		}
		seen[rows[i].VoucherNo] = true
		voucher, err := s.voucherRepo.FindPaymentVoucherByNo(ctx, rows[i].VoucherNo)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return false, fmt.Errorf("failed to inspect payment voucher %s: %w", rows[i].VoucherNo, err)
		}
		if voucher.ApplyTaxWithholdingAmount {
			return true, nil
		}
	}
	return false, nil
}

// isPartyAccountGroup reports whether an account-keyed group is a
// receivable/payable account. Only account-keyed modes can net.
func (s *ledgerReportService) isPartyAccountGroup(ctx context.Context, mode domain.CategorizeBy, key string) bool {
	if mode != domain.CategorizeByAccount && mode != domain.CategorizeByVoucherConsolidated {
		return false
	}
	account, err := s.accountRepo.FindAccountByID(ctx, key)
	if err != nil {
		return false
	}
	return account.AccountType == domain.AccountReceivable || account.AccountType == domain.AccountPayable
}
