package services

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// InvoiceReaderSvc defines read operations on invoices
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetRemaining(ctx context.Context, invoiceID string) (*domain.Remaining, error)
}

// InvoiceWriterSvc defines the invoice payment state machine
type InvoiceWriterSvc interface {
	OpenInvoice(ctx context.Context, req domain.OpenInvoiceRequest) (*domain.Invoice, error)
	UpdateTotals(ctx context.Context, invoiceID string, totals domain.Legs, expectedVersion *int64, actor domain.Actor) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID string, payment domain.Payment, actor domain.Actor) (*domain.Invoice, error)
	CloseInvoice(ctx context.Context, invoiceID string, options domain.CloseOptions, actor domain.Actor) (*domain.CloseResult, error)
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
