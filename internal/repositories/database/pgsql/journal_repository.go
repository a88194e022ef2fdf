package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/models"
	"github.com/SscSPs/jewelry_ledger/internal/utils/mapping"
)

const (
	journalRowsTable = "journal_rows"

	// pgForeignKeyViolation is raised when a row references an account missing from the chart.
	pgForeignKeyViolation = "23503"
)

var journalRowColumns = []string{
	"row_id", "posting_id", "acc_no", "entry_date",
	"debit", "credit", "debit_currency", "credit_currency",
	"currency_code", "rate", "source", "reference",
	"user_id", "point_of_sale_id", "created_at",
}

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal rows.
func newPgxJournalRepository(base BaseRepository) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: base}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// AppendPosting inserts both rows of a posting in one batch. Outside a
// transaction the batch still runs as a single implicit transaction.
func (r *PgxJournalRepository) AppendPosting(ctx context.Context, rows []domain.JournalRow) error {
	if len(rows) != 2 {
		return apperrors.NewAppError(500, fmt.Sprintf("a posting has two rows, got %d", len(rows)), nil)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		m := mapping.ToModelJournalRow(row)
		query, args, err := r.builder.Insert(journalRowsTable).
			Columns(journalRowColumns...).
			Values(
				m.RowID, m.PostingID, m.AccNo, m.EntryDate,
				m.Debit, m.Credit, m.DebitCurrency, m.CreditCurrency,
				m.CurrencyCode, m.Rate, m.Source, m.Reference,
				m.UserID, m.PointOfSaleID, m.CreatedAt,
			).
			ToSql()
		if err != nil {
			return wrapQueryError("failed to build journal row insert", err)
		}
		batch.Queue(query, args...)
	}

	br := r.querier(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("posting %s: %w", rows[0].PostingID, apperrors.ErrAccountNotFound)
		}
		return wrapQueryError("failed to insert posting "+rows[0].PostingID, err)
	}
	return nil
}

// FindRowsByPostingID retrieves both rows of a posting, debit leg first.
func (r *PgxJournalRepository) FindRowsByPostingID(ctx context.Context, postingID string) ([]domain.JournalRow, error) {
	query, args, err := r.builder.
		Select(journalRowColumns...).
		From(journalRowsTable).
		Where(squirrel.Eq{"posting_id": postingID}).
		OrderBy("debit DESC").
		ToSql()
	if err != nil {
		return nil, wrapQueryError("failed to build posting query", err)
	}

	var rows []models.JournalRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, query, args...); err != nil {
		return nil, wrapQueryError("failed to query posting "+postingID, err)
	}
	return mapping.ToDomainJournalRows(rows), nil
}

// ListAccountRows retrieves the rows of one account in history order.
func (r *PgxJournalRepository) ListAccountRows(ctx context.Context, q domain.HistoryQuery, after *domain.HistoryCursor, limit int) ([]domain.JournalRow, error) {
	sb := r.builder.
		Select(journalRowColumns...).
		From(journalRowsTable).
		Where(squirrel.Eq{"acc_no": q.AccNo}).
		Where(squirrel.GtOrEq{"entry_date": q.From}).
		Where(squirrel.LtOrEq{"entry_date": q.To}).
		OrderBy("entry_date ASC", "created_at ASC", "row_id ASC")

	if q.PointOfSaleID != nil {
		sb = sb.Where(squirrel.Eq{"point_of_sale_id": *q.PointOfSaleID})
	}
	if after != nil {
		sb = sb.Where(squirrel.Expr("(entry_date, created_at, row_id) > (?, ?, ?)", after.Date, after.CreatedAt, after.RowID))
	}
	if limit > 0 {
		sb = sb.Limit(uint64(limit))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, wrapQueryError("failed to build history query", err)
	}

	var rows []models.JournalRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, query, args...); err != nil {
		return nil, wrapQueryError("failed to query history of account "+q.AccNo, err)
	}
	return mapping.ToDomainJournalRows(rows), nil
}
