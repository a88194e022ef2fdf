package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically.
// Nested calls reuse the transaction already carried by ctx, so a posting
// made while closing an invoice commits or rolls back with the invoice.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
