package pgsql

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/models"
	"github.com/SscSPs/jewelry_ledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountReader {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountReader
var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

// FindAccountsByNumbers retrieves multiple accounts by their codes.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, accNos []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accNos))
	if len(accNos) == 0 {
		return accounts, nil
	}

	query, args, err := r.builder.
		Select("acc_no", "name", "account_type").
		From("accounts").
		Where(squirrel.Eq{"acc_no": accNos}).
		ToSql()
	if err != nil {
		return nil, wrapQueryError("failed to build account query", err)
	}

	var rows []models.Account
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, query, args...); err != nil {
		return nil, wrapQueryError("failed to query accounts", err)
	}
	for _, m := range rows {
		accounts[m.AccNo] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}
