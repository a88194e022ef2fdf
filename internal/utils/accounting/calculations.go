package accounting

import (
	"fmt"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// ValidatePostingBalance checks that rows form one balanced posting: exactly
// one debit and one credit leg sharing a posting id, with equal base amounts
// and equal foreign amounts.
func ValidatePostingBalance(rows []domain.JournalRow) error {
	if len(rows) != 2 {
		return fmt.Errorf("posting must have exactly two rows, got %d", len(rows))
	}

	var debit, credit *domain.JournalRow
	for i := range rows {
		row := &rows[i]
		if row.Debit.IsNegative() || row.Credit.IsNegative() {
			return fmt.Errorf("row %s has a negative amount", row.RowID)
		}
		switch {
		case row.Debit.IsPositive() && row.Credit.IsZero():
			debit = row
		case row.Credit.IsPositive() && row.Debit.IsZero():
			credit = row
		default:
			return fmt.Errorf("row %s must carry exactly one of debit or credit", row.RowID)
		}
	}
	if debit == nil || credit == nil {
		return fmt.Errorf("posting needs one debit and one credit row")
	}
	if debit.PostingID != credit.PostingID {
		return fmt.Errorf("rows belong to different postings: %s and %s", debit.PostingID, credit.PostingID)
	}
	if !debit.Debit.Equal(credit.Credit) {
		return fmt.Errorf("posting does not balance: debit %s, credit %s", debit.Debit, credit.Credit)
	}
	if !debit.DebitCurrency.Equal(credit.CreditCurrency) {
		return fmt.Errorf("foreign legs do not balance: debit %s, credit %s", debit.DebitCurrency, credit.CreditCurrency)
	}
	return nil
}
