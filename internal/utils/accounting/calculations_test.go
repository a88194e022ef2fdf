package accounting

import (
	"testing"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pair(debit, credit, debitFx, creditFx string) []domain.JournalRow {
	return []domain.JournalRow{
		{RowID: "r1", PostingID: "p1", AccNo: "110101", Debit: d(debit), DebitCurrency: d(debitFx)},
		{RowID: "r2", PostingID: "p1", AccNo: "4101", Credit: d(credit), CreditCurrency: d(creditFx)},
	}
}

func TestValidatePostingBalance(t *testing.T) {
	assert.NoError(t, ValidatePostingBalance(pair("400", "400", "100", "100")))
	assert.NoError(t, ValidatePostingBalance(pair("600", "600", "0", "0")))

	assert.Error(t, ValidatePostingBalance(pair("400", "399", "0", "0")), "base legs differ")
	assert.Error(t, ValidatePostingBalance(pair("400", "400", "100", "90")), "foreign legs differ")

	rows := pair("400", "400", "0", "0")
	rows[1].PostingID = "p2"
	assert.Error(t, ValidatePostingBalance(rows), "different posting ids")

	rows = pair("400", "400", "0", "0")
	rows[0].Credit = decimal.NewFromInt(1)
	assert.Error(t, ValidatePostingBalance(rows), "a row with both sides set")

	assert.Error(t, ValidatePostingBalance(rows[:1]), "single row")
}
