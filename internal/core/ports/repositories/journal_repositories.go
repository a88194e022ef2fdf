package repositories

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// JournalWriter appends postings. There is no update or delete.
type JournalWriter interface {
	// AppendPosting writes both rows of a posting atomically.
	AppendPosting(ctx context.Context, rows []domain.JournalRow) error
}

// JournalReader defines read operations for journal rows
type JournalReader interface {
	// FindRowsByPostingID returns the rows of one posting, debit leg first.
	FindRowsByPostingID(ctx context.Context, postingID string) ([]domain.JournalRow, error)

	// ListAccountRows returns rows of query.AccNo dated within [query.From, query.To],
	// ordered by date, creation time and row id, starting after the cursor when one is given.
	// A non-positive limit returns every matching row.
	ListAccountRows(ctx context.Context, query domain.HistoryQuery, after *domain.HistoryCursor, limit int) ([]domain.JournalRow, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
