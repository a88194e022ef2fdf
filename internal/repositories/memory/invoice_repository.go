package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
)

type invoiceRepository struct {
	store *Store
}

var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

func (r *invoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice) error {
	return r.store.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, exists := r.store.visibleInvoice(ctx, invoice.InvoiceID); exists {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		r.store.txFrom(ctx).invoices[invoice.InvoiceID] = invoice.Clone()
		return nil
	})
}

func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, ok := r.store.visibleInvoice(ctx, invoiceID)
	if !ok {
		return nil, apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	out := inv.Clone()
	return &out, nil
}

// FindInvoiceForUpdate needs no row lock: transactions are already serialised by the store.
func (r *invoiceRepository) FindInvoiceForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, invoiceID)
}

func (r *invoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	return r.store.RunInTransaction(ctx, func(ctx context.Context) error {
		stored, ok := r.store.visibleInvoice(ctx, invoice.InvoiceID)
		if !ok {
			return apperrors.NewNotFoundError("invoice " + invoice.InvoiceID)
		}
		if stored.Version != expectedVersion {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrConcurrentModification)
		}
		if stored.InvoiceNumber != nil && (invoice.InvoiceNumber == nil || *invoice.InvoiceNumber != *stored.InvoiceNumber) {
			return apperrors.NewAppError(500, "invoice number is immutable once assigned", nil)
		}
		updated := invoice.Clone()
		updated.Version = expectedVersion + 1
		r.store.txFrom(ctx).invoices[invoice.InvoiceID] = updated
		return nil
	})
}

func (r *invoiceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	visible := make(map[string]*int64)
	r.store.mu.RLock()
	for id, inv := range r.store.invoices {
		visible[id] = inv.InvoiceNumber
	}
	r.store.mu.RUnlock()
	if tx := r.store.txFrom(ctx); tx != nil {
		for id, inv := range tx.invoices {
			visible[id] = inv.InvoiceNumber
		}
	}

	existing := make([]int64, 0, len(visible))
	for _, number := range visible {
		if number != nil {
			existing = append(existing, *number)
		}
	}
	return domain.NewInvoiceNumber(existing), nil
}
