package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/platform/config"
)

// AccountMapping resolves the ledger accounts touched when an invoice closes.
// It is built once at startup and shared read-only by every request.
type AccountMapping struct {
	cash       map[domain.CurrencyCode]string
	revenue    map[domain.Category]string
	purchases  map[domain.Category]string
	safe       string
	receivable string
	payable    string
}

// NewAccountMapping builds the mapping from configuration. Every currency and
// category must have an account.
func NewAccountMapping(accounts config.LedgerAccounts) (*AccountMapping, error) {
	m := &AccountMapping{
		cash: map[domain.CurrencyCode]string{
			domain.LYD: accounts.CashLYD,
			domain.USD: accounts.CashUSD,
			domain.EUR: accounts.CashEUR,
		},
		revenue: map[domain.Category]string{
			domain.Gold:    accounts.RevenueGold,
			domain.Diamond: accounts.RevenueDiamond,
			domain.Watches: accounts.RevenueWatches,
			domain.Boxes:   accounts.RevenueBoxes,
		},
		purchases: map[domain.Category]string{
			domain.Gold:    accounts.PurchasesGold,
			domain.Diamond: accounts.PurchasesDiamond,
			domain.Watches: accounts.PurchasesWatches,
			domain.Boxes:   accounts.PurchasesBoxes,
		},
		safe:       accounts.Safe,
		receivable: accounts.Receivable,
		payable:    accounts.Payable,
	}

	for c, accNo := range m.cash {
		if accNo == "" {
			return nil, fmt.Errorf("%w: no cash account configured for %s", apperrors.ErrValidation, c)
		}
	}
	for _, c := range domain.Categories {
		if m.revenue[c] == "" || m.purchases[c] == "" {
			return nil, fmt.Errorf("%w: category %s needs revenue and purchases accounts", apperrors.ErrValidation, c)
		}
	}
	if m.safe == "" || m.receivable == "" || m.payable == "" {
		return nil, fmt.Errorf("%w: safe, receivable and payable accounts are required", apperrors.ErrValidation)
	}
	return m, nil
}

// Cash returns the point-of-sale cash account holding currency c.
func (m *AccountMapping) Cash(c domain.CurrencyCode) string { return m.cash[c] }

// Revenue returns the sales account for a category.
func (m *AccountMapping) Revenue(c domain.Category) string { return m.revenue[c] }

// Purchases returns the purchases account for a category.
func (m *AccountMapping) Purchases(c domain.Category) string { return m.purchases[c] }

// Safe returns the main safe account cash vouchers move money into.
func (m *AccountMapping) Safe() string { return m.safe }

// Receivable returns the account Chira remainders are booked to.
func (m *AccountMapping) Receivable() string { return m.receivable }

// Payable returns the account unpaid purchase remainders are booked to.
func (m *AccountMapping) Payable() string { return m.payable }

// AccountNumbers lists every distinct code the mapping refers to, sorted.
func (m *AccountMapping) AccountNumbers() []string {
	seen := map[string]struct{}{m.safe: {}, m.receivable: {}, m.payable: {}}
	for _, accNo := range m.cash {
		seen[accNo] = struct{}{}
	}
	for _, c := range domain.Categories {
		seen[m.revenue[c]] = struct{}{}
		seen[m.purchases[c]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for accNo := range seen {
		out = append(out, accNo)
	}
	sort.Strings(out)
	return out
}

// Validate checks once, at startup, that every mapped code exists in the chart of accounts.
func (m *AccountMapping) Validate(ctx context.Context, accounts portsrepo.AccountReader) error {
	want := m.AccountNumbers()
	found, err := accounts.FindAccountsByNumbers(ctx, want)
	if err != nil {
		return fmt.Errorf("failed to load mapped accounts: %w", err)
	}
	var missing []string
	for _, accNo := range want {
		if _, ok := found[accNo]; !ok {
			missing = append(missing, accNo)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("mapped accounts %v: %w", missing, apperrors.ErrAccountNotFound)
	}
	return nil
}
