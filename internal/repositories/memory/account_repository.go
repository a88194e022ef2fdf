package memory

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
)

type accountRepository struct {
	store *Store
}

var _ portsrepo.AccountReader = (*accountRepository)(nil)

func (r *accountRepository) FindAccountsByNumbers(_ context.Context, accNos []string) (map[string]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]domain.Account, len(accNos))
	for _, accNo := range accNos {
		if a, ok := r.store.accounts[accNo]; ok {
			found[accNo] = a
		}
	}
	return found, nil
}

type userRepository struct {
	store *Store
}

var _ portsrepo.UserReader = (*userRepository)(nil)

func (r *userRepository) FindUsersByIDs(_ context.Context, userIDs []string) (map[string]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	found := make(map[string]domain.User, len(userIDs))
	for _, id := range userIDs {
		if u, ok := r.store.users[id]; ok {
			found[id] = u
		}
	}
	return found, nil
}

// DefaultChart is the chart of accounts the service starts with when it runs
// without a database. It mirrors the seed migration.
func DefaultChart() []domain.Account {
	return []domain.Account{
		{AccNo: "1", Name: "Assets", Type: domain.Asset},
		{AccNo: "11", Name: "Cash", Type: domain.Asset},
		{AccNo: "1101", Name: "Point of sale cash", Type: domain.Asset},
		{AccNo: "110101", Name: "Cash drawer LYD", Type: domain.Asset},
		{AccNo: "110102", Name: "Cash drawer USD", Type: domain.Asset},
		{AccNo: "110103", Name: "Cash drawer EUR", Type: domain.Asset},
		{AccNo: "1102", Name: "Safes", Type: domain.Asset},
		{AccNo: "110201", Name: "Main safe", Type: domain.Asset},
		{AccNo: "12", Name: "Receivables", Type: domain.Asset},
		{AccNo: "1201", Name: "Customers", Type: domain.Asset},
		{AccNo: "120101", Name: "Chira receivables", Type: domain.Asset},
		{AccNo: "2", Name: "Liabilities", Type: domain.Liability},
		{AccNo: "21", Name: "Payables", Type: domain.Liability},
		{AccNo: "2101", Name: "Suppliers", Type: domain.Liability},
		{AccNo: "210101", Name: "Supplier payables", Type: domain.Liability},
		{AccNo: "4", Name: "Revenue", Type: domain.Revenue},
		{AccNo: "41", Name: "Sales", Type: domain.Revenue},
		{AccNo: "4101", Name: "Sales by category", Type: domain.Revenue},
		{AccNo: "410101", Name: "Gold sales", Type: domain.Revenue},
		{AccNo: "410102", Name: "Diamond sales", Type: domain.Revenue},
		{AccNo: "410103", Name: "Watch sales", Type: domain.Revenue},
		{AccNo: "410104", Name: "Box sales", Type: domain.Revenue},
		{AccNo: "4102", Name: "Other revenue", Type: domain.Revenue},
		{AccNo: "5", Name: "Expenses", Type: domain.Expense},
		{AccNo: "51", Name: "Purchases", Type: domain.Expense},
		{AccNo: "5101", Name: "Purchases by category", Type: domain.Expense},
		{AccNo: "510101", Name: "Gold purchases", Type: domain.Expense},
		{AccNo: "510102", Name: "Diamond purchases", Type: domain.Expense},
		{AccNo: "510103", Name: "Watch purchases", Type: domain.Expense},
		{AccNo: "510104", Name: "Box purchases", Type: domain.Expense},
		{AccNo: "52", Name: "Operating expenses", Type: domain.Expense},
		{AccNo: "5201", Name: "Rent", Type: domain.Expense},
		{AccNo: "5202", Name: "Salaries", Type: domain.Expense},
	}
}
