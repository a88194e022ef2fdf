package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the net position of one account. Positive is net debit.
type AccountBalance struct {
	AccNo           string          `json:"accNo"`
	Name            string          `json:"name"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceCurrency decimal.Decimal `json:"balanceCurrency"`
}

// BalanceFilter narrows GetBalances to rows posted by a user and/or at a point of sale.
type BalanceFilter struct {
	UserID        *string
	PointOfSaleID *int64
}

// HistoryRow is a journal row enriched for display.
type HistoryRow struct {
	JournalRow
	AccountName string `json:"accountName"`
	UserName    string `json:"userName"`
}

// HistoryQuery selects the rows of one account between two dates, inclusive.
type HistoryQuery struct {
	AccNo         string
	From          time.Time
	To            time.Time
	PointOfSaleID *int64
	Limit         int
	NextToken     *string
}

// HistoryCursor is the position after which a history page starts.
type HistoryCursor struct {
	Date      time.Time
	CreatedAt time.Time
	RowID     string
}

// HistoryPage is one page of an account history read.
type HistoryPage struct {
	Rows      []HistoryRow `json:"rows"`
	NextToken *string      `json:"nextToken,omitempty"`
}
