package pgsql

import (
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := newBaseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:     &txManager{BaseRepository: base},
		AccountRepo:   newPgxAccountRepository(base),
		UserRepo:      newPgxUserRepository(base),
		JournalRepo:   newPgxJournalRepository(base),
		ReportingRepo: newReportingRepository(base),
		InvoiceRepo:   newPgxInvoiceRepository(base),
	}
}
