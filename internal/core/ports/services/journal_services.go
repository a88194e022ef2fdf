package services

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// LedgerPoster records balanced postings.
type LedgerPoster interface {
	// Post validates the request and appends one debit and one credit row atomically.
	Post(ctx context.Context, req domain.PostingRequest) (*domain.PostingResult, error)
}

// SourceEntryRecorder translates expense, revenue and supplier settlement entries into postings.
type SourceEntryRecorder interface {
	RecordExpense(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error)
	RecordRevenue(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error)
	RecordSupplierSettlement(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error)
}

// PostingReader reads back postings.
type PostingReader interface {
	GetPosting(ctx context.Context, postingID string) ([]domain.JournalRow, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerPoster
	SourceEntryRecorder
	PostingReader
}
