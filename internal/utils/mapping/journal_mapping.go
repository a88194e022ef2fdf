package mapping

import (
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/SscSPs/jewelry_ledger/internal/models"
)

// ToModelJournalRow converts a domain JournalRow to a model JournalRow
func ToModelJournalRow(d domain.JournalRow) models.JournalRow {
	return models.JournalRow{
		RowID:          d.RowID,
		PostingID:      d.PostingID,
		AccNo:          d.AccNo,
		EntryDate:      d.Date,
		Debit:          d.Debit,
		Credit:         d.Credit,
		DebitCurrency:  d.DebitCurrency,
		CreditCurrency: d.CreditCurrency,
		CurrencyCode:   string(d.CurrencyCode),
		Rate:           d.Rate,
		Source:         string(d.Source),
		Reference:      d.Reference,
		UserID:         d.UserID,
		PointOfSaleID:  d.PointOfSaleID,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalRow converts a model JournalRow to a domain JournalRow.
// Dates come back from the driver in the session time zone and are normalised to UTC.
func ToDomainJournalRow(m models.JournalRow) domain.JournalRow {
	return domain.JournalRow{
		RowID:          m.RowID,
		PostingID:      m.PostingID,
		AccNo:          m.AccNo,
		Date:           domain.DateOnly(m.EntryDate),
		Debit:          m.Debit,
		Credit:         m.Credit,
		DebitCurrency:  m.DebitCurrency,
		CreditCurrency: m.CreditCurrency,
		CurrencyCode:   domain.CurrencyCode(m.CurrencyCode),
		Rate:           m.Rate,
		Source:         domain.Source(m.Source),
		Reference:      m.Reference,
		UserID:         m.UserID,
		PointOfSaleID:  m.PointOfSaleID,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

// ToDomainJournalRows converts a slice of model JournalRows
func ToDomainJournalRows(ms []models.JournalRow) []domain.JournalRow {
	out := make([]domain.JournalRow, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalRow(m)
	}
	return out
}

// ToDomainAccountBalance converts an aggregated balance row
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		AccNo:           m.AccNo,
		Name:            m.Name,
		Balance:         m.Balance,
		BalanceCurrency: m.BalanceCurrency,
	}
}
