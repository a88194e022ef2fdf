package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	store *Store
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// leftString mirrors SQL LEFT(s, n).
func leftString(s string, n int) string {
	if n >= len(s) {
		return s
	}
	return s[:n]
}

func (r *reportingRepository) GetBalances(ctx context.Context, prefix string, prefixLength int, filter domain.BalanceFilter) ([]domain.AccountBalance, error) {
	rows := r.store.visibleRows(ctx)

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byAccount := make(map[string]*domain.AccountBalance)
	for _, row := range rows {
		if leftString(row.AccNo, prefixLength) != prefix {
			continue
		}
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		if filter.PointOfSaleID != nil && row.PointOfSaleID != *filter.PointOfSaleID {
			continue
		}
		b, ok := byAccount[row.AccNo]
		if !ok {
			b = &domain.AccountBalance{
				AccNo:           row.AccNo,
				Name:            r.store.accounts[row.AccNo].Name,
				Balance:         decimal.Zero,
				BalanceCurrency: decimal.Zero,
			}
			byAccount[row.AccNo] = b
		}
		b.Balance = b.Balance.Add(row.Debit).Sub(row.Credit)
		b.BalanceCurrency = b.BalanceCurrency.Add(row.DebitCurrency).Sub(row.CreditCurrency)
	}

	out := make([]domain.AccountBalance, 0, len(byAccount))
	for _, b := range byAccount {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccNo < out[j].AccNo })
	return out, nil
}
