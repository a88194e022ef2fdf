package repositories

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// AccountReader gives read access to the chart of accounts. The core never writes accounts.
type AccountReader interface {
	// FindAccountsByNumbers returns the accounts found, keyed by code. Missing codes are simply absent.
	FindAccountsByNumbers(ctx context.Context, accNos []string) (map[string]domain.Account, error)
}
