package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
)

type journalRepository struct {
	store *Store
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

// AppendPosting adds both rows in one transaction, so readers never see a single leg.
func (r *journalRepository) AppendPosting(ctx context.Context, rows []domain.JournalRow) error {
	if len(rows) != 2 {
		return apperrors.NewAppError(500, fmt.Sprintf("posting must have two rows, got %d", len(rows)), nil)
	}
	return r.store.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := r.store.txFrom(ctx)
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
		for _, row := range rows {
			if _, ok := r.store.accounts[row.AccNo]; !ok {
				return fmt.Errorf("account %s: %w", row.AccNo, apperrors.ErrAccountNotFound)
			}
		}
		tx.rows = append(tx.rows, rows...)
		return nil
	})
}

func (r *journalRepository) FindRowsByPostingID(ctx context.Context, postingID string) ([]domain.JournalRow, error) {
	var out []domain.JournalRow
	for _, row := range r.store.visibleRows(ctx) {
		if row.PostingID == postingID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsDebit() && !out[j].IsDebit() })
	return out, nil
}

func (r *journalRepository) ListAccountRows(ctx context.Context, query domain.HistoryQuery, after *domain.HistoryCursor, limit int) ([]domain.JournalRow, error) {
	var out []domain.JournalRow
	for _, row := range r.store.visibleRows(ctx) {
		if row.AccNo != query.AccNo || row.Date.Before(query.From) || row.Date.After(query.To) {
			continue
		}
		if query.PointOfSaleID != nil && row.PointOfSaleID != *query.PointOfSaleID {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return historyLess(out[i], out[j]) })

	if after != nil {
		start := sort.Search(len(out), func(i int) bool {
			return historyLess(domain.JournalRow{Date: after.Date, CreatedAt: after.CreatedAt, RowID: after.RowID}, out[i])
		})
		out = out[start:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// historyLess orders rows by date, creation time and row id.
func historyLess(a, b domain.JournalRow) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.RowID < b.RowID
}
