package services

import (
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, locker portsrepo.InvoiceLocker, mapping *AccountMapping) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.TxManager, repos.AccountRepo, repos.JournalRepo)
	container.Balance = NewReportingService(repos.ReportingRepo, repos.JournalRepo, repos.AccountRepo, WithUserDirectory(repos.UserRepo))

	// Settlement posts through the ledger service so invoice-close postings get the same checks.
	container.Settlement = NewSettlementService(repos.TxManager, repos.InvoiceRepo, locker, container.Ledger, mapping)

	return container
}
