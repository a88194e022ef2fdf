package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Post(ctx context.Context, req domain.PostingRequest) (*domain.PostingResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockLedgerService) RecordExpense(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockLedgerService) RecordRevenue(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockLedgerService) RecordSupplierSettlement(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockLedgerService) GetPosting(ctx context.Context, postingID string) ([]domain.JournalRow, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalRow), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSettlementService) GetRemaining(ctx context.Context, invoiceID string) (*domain.Remaining, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remaining), args.Error(1)
}

func (m *MockSettlementService) OpenInvoice(ctx context.Context, req domain.OpenInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSettlementService) UpdateTotals(ctx context.Context, invoiceID string, totals domain.Legs, expectedVersion *int64, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, totals, expectedVersion, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSettlementService) RecordPayment(ctx context.Context, invoiceID string, payment domain.Payment, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, payment, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockSettlementService) CloseInvoice(ctx context.Context, invoiceID string, options domain.CloseOptions, actor domain.Actor) (*domain.CloseResult, error) {
	args := m.Called(ctx, invoiceID, options, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetBalances(ctx context.Context, prefix string, prefixLength int, filter domain.BalanceFilter) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, prefix, prefixLength, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceService) GetAccountHistory(ctx context.Context, accNo string, from, to time.Time, pointOfSaleID *int64) ([]domain.HistoryRow, error) {
	args := m.Called(ctx, accNo, from, to, pointOfSaleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRow), args.Error(1)
}

func (m *MockBalanceService) GetAccountHistoryPage(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryPage), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)
