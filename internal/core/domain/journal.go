package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source tags the business event a posting was generated from.
type Source string

const (
	SourceExpense      Source = "EXPENSE"
	SourceRevenue      Source = "REVENUE"
	SourceSettlement   Source = "SETTLEMENT"
	SourceInvoiceClose Source = "INVOICE_CLOSE"
)

// Valid reports whether s is a known source tag.
func (s Source) Valid() bool {
	switch s {
	case SourceExpense, SourceRevenue, SourceSettlement, SourceInvoiceClose:
		return true
	}
	return false
}

// JournalRow is one leg of a posting. Debit and Credit are base (LYD) amounts
// and exactly one of them is nonzero. DebitCurrency and CreditCurrency carry
// the foreign amount in CurrencyCode, or zero for LYD-only postings.
// Rows are append-only.
type JournalRow struct {
	RowID          string          `json:"rowId"`
	PostingID      string          `json:"postingId"`
	AccNo          string          `json:"accNo"`
	Date           time.Time       `json:"date"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	DebitCurrency  decimal.Decimal `json:"debitCurrency"`
	CreditCurrency decimal.Decimal `json:"creditCurrency"`
	CurrencyCode   CurrencyCode    `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	Source         Source          `json:"source"`
	Reference      string          `json:"reference"`
	UserID         string          `json:"userId"`
	PointOfSaleID  int64           `json:"pointOfSaleId"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// IsDebit reports whether the row is the debit leg of its posting.
func (r JournalRow) IsDebit() bool {
	return r.Debit.IsPositive()
}

// PostingRequest asks the ledger to record one balanced pair of rows.
// AmountForeign is set only when the money moved in USD or EUR.
type PostingRequest struct {
	DebitAccount  string
	CreditAccount string
	AmountBase    decimal.Decimal
	AmountForeign *decimal.Decimal
	Currency      CurrencyCode
	Rate          decimal.Decimal
	Source        Source
	Reference     string
	Date          time.Time
	Actor         Actor
}

// PostingResult identifies the rows written for a posting.
type PostingResult struct {
	PostingID   string `json:"postingId"`
	DebitRowID  string `json:"debitRowId"`
	CreditRowID string `json:"creditRowId"`
}

// SourceEntry is a cash movement captured by the expense, revenue or
// supplier settlement screens. Account is the counter account of the cash
// account (the expense, the revenue or the supplier). For USD and EUR entries
// either BaseAmount or NominalRate must be supplied.
type SourceEntry struct {
	Date        time.Time
	Account     string
	CashAccount string
	Currency    CurrencyCode
	Amount      decimal.Decimal
	BaseAmount  *decimal.Decimal
	NominalRate *decimal.Decimal
	Reference   string
	Actor       Actor
}
