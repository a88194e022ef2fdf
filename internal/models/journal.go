package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalRow is one leg of a posting as stored in journal_rows.
type JournalRow struct {
	RowID          string          `db:"row_id"`
	PostingID      string          `db:"posting_id"`
	AccNo          string          `db:"acc_no"`
	EntryDate      time.Time       `db:"entry_date"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	DebitCurrency  decimal.Decimal `db:"debit_currency"`
	CreditCurrency decimal.Decimal `db:"credit_currency"`
	CurrencyCode   string          `db:"currency_code"`
	Rate           decimal.Decimal `db:"rate"`
	Source         string          `db:"source"`
	Reference      string          `db:"reference"`
	UserID         string          `db:"user_id"`
	PointOfSaleID  int64           `db:"point_of_sale_id"`
	CreatedAt      time.Time       `db:"created_at"`
}

// AccountBalance is one row of the balance aggregation query.
type AccountBalance struct {
	AccNo           string          `db:"acc_no"`
	Name            string          `db:"name"`
	Balance         decimal.Decimal `db:"balance"`
	BalanceCurrency decimal.Decimal `db:"balance_currency"`
}
