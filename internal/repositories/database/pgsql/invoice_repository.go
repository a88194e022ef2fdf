package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/models"
	"github.com/SscSPs/jewelry_ledger/internal/utils/mapping"
)

const (
	invoicesTable = "invoices"

	pgUniqueViolation = "23505"

	// invoiceNumberLockKey is the advisory lock serialising invoice number assignment.
	invoiceNumberLockKey int64 = 0x4a4c_494e_5631 // "JLINV1"
)

var invoiceColumns = []string{
	"invoice_id", "invoice_number", "direction", "point_of_sale_id",
	"total_lyd", "total_usd", "total_usd_lyd", "total_eur", "total_eur_lyd",
	"paid_lyd", "paid_usd", "paid_usd_lyd", "paid_eur", "paid_eur_lyd",
	"is_closed", "is_gift", "is_chira", "receivable", "closed_at", "closed_by",
	"version", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice settlement state.
func newPgxInvoiceRepository(base BaseRepository) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: base}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// CreateInvoice inserts a new invoice.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query, args, err := r.builder.Insert(invoicesTable).
		Columns(invoiceColumns...).
		Values(
			m.InvoiceID, m.InvoiceNumber, m.Direction, m.PointOfSaleID,
			m.TotalLyd, m.TotalUsd, m.TotalUsdLyd, m.TotalEur, m.TotalEurLyd,
			m.PaidLyd, m.PaidUsd, m.PaidUsdLyd, m.PaidEur, m.PaidEurLyd,
			m.IsClosed, m.IsGift, m.IsChira, m.Receivable, m.ClosedAt, m.ClosedBy,
			m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).
		ToSql()
	if err != nil {
		return wrapQueryError("failed to build invoice insert", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		return wrapQueryError("failed to insert invoice "+invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceID, false)
}

// FindInvoiceForUpdate retrieves an invoice and locks its row until the transaction ends.
func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if !inTransaction(ctx) {
		return nil, apperrors.NewAppError(500, "FindInvoiceForUpdate requires a transaction", nil)
	}
	return r.findInvoice(ctx, invoiceID, true)
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, invoiceID string, forUpdate bool) (*domain.Invoice, error) {
	sb := r.builder.
		Select(invoiceColumns...).
		From(invoicesTable).
		Where(squirrel.Eq{"invoice_id": invoiceID})
	if forUpdate {
		sb = sb.Suffix("FOR UPDATE")
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, wrapQueryError("failed to build invoice query", err)
	}

	var m models.Invoice
	if err := pgxscan.Get(ctx, r.querier(ctx), &m, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID)
		}
		return nil, wrapQueryError("failed to query invoice "+invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// UpdateInvoice stores the invoice if nobody changed it since expectedVersion was read.
// A number already assigned is never overwritten.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	m := mapping.ToModelInvoice(invoice)
	query, args, err := r.builder.Update(invoicesTable).
		Set("invoice_number", squirrel.Expr("COALESCE(invoice_number, ?)", m.InvoiceNumber)).
		Set("total_lyd", m.TotalLyd).
		Set("total_usd", m.TotalUsd).
		Set("total_usd_lyd", m.TotalUsdLyd).
		Set("total_eur", m.TotalEur).
		Set("total_eur_lyd", m.TotalEurLyd).
		Set("paid_lyd", m.PaidLyd).
		Set("paid_usd", m.PaidUsd).
		Set("paid_usd_lyd", m.PaidUsdLyd).
		Set("paid_eur", m.PaidEur).
		Set("paid_eur_lyd", m.PaidEurLyd).
		Set("is_closed", m.IsClosed).
		Set("receivable", m.Receivable).
		Set("closed_at", m.ClosedAt).
		Set("closed_by", m.ClosedBy).
		Set("version", expectedVersion+1).
		Set("last_updated_at", m.LastUpdatedAt).
		Set("last_updated_by", m.LastUpdatedBy).
		Where(squirrel.Eq{"invoice_id": m.InvoiceID, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return wrapQueryError("failed to build invoice update", err)
	}

	tag, err := r.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return wrapQueryError("failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s is no longer at version %d: %w", m.InvoiceID, expectedVersion, apperrors.ErrConcurrentModification)
	}
	return nil
}

// NextInvoiceNumber takes the numbering advisory lock for the rest of the
// transaction and returns one above the highest number in use.
func (r *PgxInvoiceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	if !inTransaction(ctx) {
		return 0, apperrors.NewAppError(500, "NextInvoiceNumber requires a transaction", nil)
	}
	q := r.querier(ctx)
	if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", invoiceNumberLockKey); err != nil {
		return 0, wrapQueryError("failed to take invoice number lock", err)
	}

	var next int64
	if err := q.QueryRow(ctx, "SELECT COALESCE(MAX(invoice_number), 0) + 1 FROM "+invoicesTable).Scan(&next); err != nil {
		return 0, wrapQueryError("failed to read highest invoice number", err)
	}
	return next, nil
}
