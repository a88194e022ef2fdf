package services

import (
	"context"
	"time"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// BalanceSvcFacade defines read-only aggregation over the journal.
type BalanceSvcFacade interface {
	// GetBalances returns the net debit position of every account whose code
	// prefix of length prefixLength equals prefix. Accounts without rows are absent.
	GetBalances(ctx context.Context, prefix string, prefixLength int, filter domain.BalanceFilter) ([]domain.AccountBalance, error)

	// GetAccountHistory returns the rows of one account dated within [from, to], oldest first.
	GetAccountHistory(ctx context.Context, accNo string, from, to time.Time, pointOfSaleID *int64) ([]domain.HistoryRow, error)

	// GetAccountHistoryPage returns the same rows one page at a time.
	GetAccountHistoryPage(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error)
}
