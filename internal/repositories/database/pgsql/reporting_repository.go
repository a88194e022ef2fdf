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

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(base BaseRepository) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: base}
}

// GetBalances sums debit minus credit per account over the rows whose code
// prefix matches. Rows of accounts missing from the chart still count; their name is empty.
func (r *reportingRepository) GetBalances(ctx context.Context, prefix string, prefixLength int, filter domain.BalanceFilter) ([]domain.AccountBalance, error) {
	sb := r.builder.
		Select(
			"j.acc_no",
			"COALESCE(a.name, '') AS name",
			"COALESCE(SUM(j.debit - j.credit), 0) AS balance",
			"COALESCE(SUM(j.debit_currency - j.credit_currency), 0) AS balance_currency",
		).
		From(journalRowsTable + " j").
		LeftJoin("accounts a ON a.acc_no = j.acc_no").
		Where(squirrel.Expr("LEFT(j.acc_no, ?) = ?", prefixLength, prefix)).
		GroupBy("j.acc_no", "a.name").
		OrderBy("j.acc_no")

	if filter.UserID != nil {
		sb = sb.Where(squirrel.Eq{"j.user_id": *filter.UserID})
	}
	if filter.PointOfSaleID != nil {
		sb = sb.Where(squirrel.Eq{"j.point_of_sale_id": *filter.PointOfSaleID})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, wrapQueryError("failed to build balance query", err)
	}

	var rows []models.AccountBalance
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, query, args...); err != nil {
		return nil, wrapQueryError("failed to aggregate balances", err)
	}

	balances := make([]domain.AccountBalance, len(rows))
	for i, m := range rows {
		balances[i] = mapping.ToDomainAccountBalance(m)
	}
	return balances, nil
}
