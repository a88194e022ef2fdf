package pgsql

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

var tracer = otel.Tracer("jewelry_ledger/pgsql")

// txKey is the context key for the active transaction.
type txKey struct{}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

func newBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{
		Pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// querier returns the transaction carried by ctx, or the pool outside a transaction.
func (r *BaseRepository) querier(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// inTransaction reports whether ctx carries a transaction.
func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}

// txManager runs units of work in a database transaction.
type txManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*txManager)(nil)

// RunInTransaction executes fn within a transaction. A transaction already
// carried by ctx is reused, so nested calls commit or roll back together.
func (m *txManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "pgsql.transaction", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	tx, err := m.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		span.RecordError(err)
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		// The caller's context may be cancelled; the rollback still has to reach the server.
		if rbErr := tx.Rollback(context.Background()); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction",
				slog.String("error", rbErr.Error()),
				slog.String("original_error", err.Error()))
		}
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// wrapQueryError converts driver errors into application errors.
func wrapQueryError(msg string, err error) error {
	return apperrors.NewAppError(500, msg, err)
}
