package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// BalancesQuery holds the query parameters of the balances report.
type BalancesQuery struct {
	Prefix string `form:"prefix" binding:"max=32"`
	Length *int   `form:"length" binding:"omitempty,min=0,max=32"`
	User   string `form:"user" binding:"max=64"`
	Pos    *int64 `form:"pos" binding:"omitempty,min=1"`
}

// PrefixLength defaults to the length of the prefix itself.
func (q BalancesQuery) PrefixLength() int {
	if q.Length != nil {
		return *q.Length
	}
	return len(q.Prefix)
}

// Filter returns the user and point-of-sale restriction.
func (q BalancesQuery) Filter() domain.BalanceFilter {
	var f domain.BalanceFilter
	if q.User != "" {
		user := q.User
		f.UserID = &user
	}
	f.PointOfSaleID = q.Pos
	return f
}

// AccountBalanceResponse is the net position of one account. Positive is net debit.
type AccountBalanceResponse struct {
	AccNo           string          `json:"accNo"`
	Name            string          `json:"name"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceCurrency decimal.Decimal `json:"balanceCurrency"`
}

// BalancesResponse is the balances report.
type BalancesResponse struct {
	Prefix       string                   `json:"prefix"`
	PrefixLength int                      `json:"prefixLength"`
	Balances     []AccountBalanceResponse `json:"balances"`
}

// ToBalancesResponse converts domain balances to BalancesResponse DTO.
func ToBalancesResponse(prefix string, length int, balances []domain.AccountBalance) BalancesResponse {
	out := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = AccountBalanceResponse{
			AccNo:           b.AccNo,
			Name:            b.Name,
			Balance:         b.Balance,
			BalanceCurrency: b.BalanceCurrency,
		}
	}
	return BalancesResponse{Prefix: prefix, PrefixLength: length, Balances: out}
}

// HistoryQuery holds the query parameters of an account history read.
type HistoryQuery struct {
	From      string `form:"from" binding:"required,datetime=2006-01-02"`
	To        string `form:"to" binding:"required,datetime=2006-01-02"`
	Pos       *int64 `form:"pos" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	NextToken string `form:"nextToken"`
}

// ToDomain converts the query for account accNo.
func (q HistoryQuery) ToDomain(accNo string) domain.HistoryQuery {
	out := domain.HistoryQuery{
		AccNo:         accNo,
		From:          parseDate(q.From),
		To:            parseDate(q.To),
		PointOfSaleID: q.Pos,
		Limit:         q.Limit,
	}
	if q.NextToken != "" {
		token := q.NextToken
		out.NextToken = &token
	}
	return out
}

// HistoryRowResponse is a journal row with display names.
type HistoryRowResponse struct {
	JournalRowResponse
	AccountName string `json:"accountName"`
	UserName    string `json:"userName"`
}

// HistoryPageResponse is one page of an account history.
type HistoryPageResponse struct {
	AccNo     string               `json:"accNo"`
	Rows      []HistoryRowResponse `json:"rows"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToHistoryPageResponse converts a domain.HistoryPage to HistoryPageResponse DTO.
func ToHistoryPageResponse(accNo string, page domain.HistoryPage) HistoryPageResponse {
	rows := make([]HistoryRowResponse, len(page.Rows))
	for i, r := range page.Rows {
		rows[i] = HistoryRowResponse{
			JournalRowResponse: ToJournalRowResponse(r.JournalRow),
			AccountName:        r.AccountName,
			UserName:           r.UserName,
		}
	}
	return HistoryPageResponse{AccNo: accNo, Rows: rows, NextToken: page.NextToken}
}
