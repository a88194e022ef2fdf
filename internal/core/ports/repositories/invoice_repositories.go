package repositories

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices. Mutations are expected to run inside a transaction.
type InvoiceWriter interface {
	CreateInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceForUpdate loads the invoice and locks its row until the transaction ends.
	FindInvoiceForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoice stores the invoice when its stored version still equals expectedVersion,
	// bumping the version. Otherwise it returns apperrors.ErrConcurrentModification.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error

	// NextInvoiceNumber returns the next sequential number while holding the number lock
	// for the rest of the transaction.
	NextInvoiceNumber(ctx context.Context) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceLocker serialises mutations of one invoice across processes.
type InvoiceLocker interface {
	// Lock blocks until the invoice lock is held or fails with apperrors.ErrConcurrentModification.
	// The returned func releases the lock.
	Lock(ctx context.Context, invoiceID string) (release func(), err error)
}
