// Package memory keeps the ledger in process memory. It backs the service
// when no database is configured and doubles as the fixture for service tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
)

// Store holds every table. mu guards the committed data. Every write runs in
// a transaction; txMu admits one at a time and its writes stay in a txState
// carried by the context until they are published under mu on commit.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	accounts map[string]domain.Account
	users    map[string]domain.User
	rows     []domain.JournalRow
	invoices map[string]domain.Invoice
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		users:    make(map[string]domain.User),
		invoices: make(map[string]domain.Invoice),
	}
}

// SeedAccounts loads chart-of-accounts entries. Existing codes are replaced.
func (s *Store) SeedAccounts(accounts ...domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range accounts {
		s.accounts[a.AccNo] = a
	}
}

// SeedUsers loads users for display-name lookups.
func (s *Store) SeedUsers(users ...domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.UserID] = u
	}
}

// Rows returns a copy of every journal row in insertion order.
func (s *Store) Rows() []domain.JournalRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.JournalRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// txKey marks a context that already runs inside a transaction of a store.
type txKey struct{}

// txState holds the uncommitted writes of one transaction.
type txState struct {
	store    *Store
	rows     []domain.JournalRow
	invoices map[string]domain.Invoice
}

// txFrom returns the transaction of s carried by ctx, or nil.
func (s *Store) txFrom(ctx context.Context) *txState {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && tx.store == s {
		return tx
	}
	return nil
}

// visibleRows returns the committed rows followed by the rows ctx's
// transaction has appended so far.
func (s *Store) visibleRows(ctx context.Context) []domain.JournalRow {
	tx := s.txFrom(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.rows)
	if tx != nil {
		n += len(tx.rows)
	}
	out := make([]domain.JournalRow, 0, n)
	out = append(out, s.rows...)
	if tx != nil {
		out = append(out, tx.rows...)
	}
	return out
}

// visibleInvoice looks an invoice up in ctx's transaction first, then in the
// committed data.
func (s *Store) visibleInvoice(ctx context.Context, invoiceID string) (domain.Invoice, bool) {
	if tx := s.txFrom(ctx); tx != nil {
		if inv, ok := tx.invoices[invoiceID]; ok {
			return inv, true
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[invoiceID]
	return inv, ok
}

func (s *Store) commit(tx *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, tx.rows...)
	for id, inv := range tx.invoices {
		s.invoices[id] = inv
	}
}

// RunInTransaction runs fn atomically. Nested calls join the outer transaction.
// Readers outside the transaction see none of its writes until fn returns nil.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txState{store: s, invoices: make(map[string]domain.Invoice)}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	s.commit(tx)
	return nil
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     store,
		AccountRepo:   &accountRepository{store: store},
		UserRepo:      &userRepository{store: store},
		JournalRepo:   &journalRepository{store: store},
		ReportingRepo: &reportingRepository{store: store},
		InvoiceRepo:   &invoiceRepository{store: store},
	}
}
