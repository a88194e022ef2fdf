package repositories

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// ReportingRepository aggregates journal rows into balances.
type ReportingRepository interface {
	// GetBalances groups rows whose first prefixLength characters of acc_no equal prefix,
	// restricted by the filter, ordered by account code.
	GetBalances(ctx context.Context, prefix string, prefixLength int, filter domain.BalanceFilter) ([]domain.AccountBalance, error)
}
