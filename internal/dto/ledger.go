package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// DateLayout is the wire format of business dates.
const DateLayout = "2006-01-02"

// CreatePostingRequest is the body of a manual posting.
type CreatePostingRequest struct {
	DebitAccount  string           `json:"debitAccount" binding:"required,max=32"`
	CreditAccount string           `json:"creditAccount" binding:"required,max=32,nefield=DebitAccount"`
	AmountBase    decimal.Decimal  `json:"amountBase"`
	AmountForeign *decimal.Decimal `json:"amountForeign,omitempty"`
	Currency      string           `json:"currency,omitempty" binding:"omitempty,currency"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	Source        string           `json:"source" binding:"required,oneof=EXPENSE REVENUE SETTLEMENT"`
	Reference     string           `json:"reference,omitempty" binding:"max=255"`
	Date          string           `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// ToDomain converts the request into a posting request for actor.
func (r CreatePostingRequest) ToDomain(actor domain.Actor) domain.PostingRequest {
	req := domain.PostingRequest{
		DebitAccount:  r.DebitAccount,
		CreditAccount: r.CreditAccount,
		AmountBase:    r.AmountBase,
		AmountForeign: r.AmountForeign,
		Currency:      domain.LYD,
		Rate:          decimal.NewFromInt(1),
		Source:        domain.Source(r.Source),
		Reference:     r.Reference,
		Date:          parseDate(r.Date),
		Actor:         actor,
	}
	if r.Currency != "" {
		req.Currency, _ = domain.ParseCurrency(r.Currency)
	}
	if r.Rate != nil {
		req.Rate = *r.Rate
	}
	return req
}

// SourceEntryRequest is the body of an expense, revenue or supplier settlement entry.
// Foreign entries carry either the LYD amount paid or a nominal rate.
type SourceEntryRequest struct {
	Date        string           `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Account     string           `json:"account" binding:"required,max=32"`
	CashAccount string           `json:"cashAccount" binding:"required,max=32,nefield=Account"`
	Currency    string           `json:"currency" binding:"required,currency"`
	Amount      decimal.Decimal  `json:"amount"`
	BaseAmount  *decimal.Decimal `json:"baseAmount,omitempty"`
	NominalRate *decimal.Decimal `json:"nominalRate,omitempty"`
	Reference   string           `json:"reference,omitempty" binding:"max=255"`
}

// ToDomain converts the request into a source entry for actor.
func (r SourceEntryRequest) ToDomain(actor domain.Actor) domain.SourceEntry {
	currency, _ := domain.ParseCurrency(r.Currency)
	return domain.SourceEntry{
		Date:        parseDate(r.Date),
		Account:     r.Account,
		CashAccount: r.CashAccount,
		Currency:    currency,
		Amount:      r.Amount,
		BaseAmount:  r.BaseAmount,
		NominalRate: r.NominalRate,
		Reference:   r.Reference,
		Actor:       actor,
	}
}

// PostingResponse identifies the rows written for a posting.
type PostingResponse struct {
	PostingID   string `json:"postingId"`
	DebitRowID  string `json:"debitRowId"`
	CreditRowID string `json:"creditRowId"`
}

// ToPostingResponse converts a domain.PostingResult to PostingResponse DTO.
func ToPostingResponse(r domain.PostingResult) PostingResponse {
	return PostingResponse{
		PostingID:   r.PostingID,
		DebitRowID:  r.DebitRowID,
		CreditRowID: r.CreditRowID,
	}
}

// JournalRowResponse defines the data returned for a journal row.
type JournalRowResponse struct {
	RowID          string          `json:"rowId"`
	PostingID      string          `json:"postingId"`
	AccNo          string          `json:"accNo"`
	Date           string          `json:"date"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	DebitCurrency  decimal.Decimal `json:"debitCurrency"`
	CreditCurrency decimal.Decimal `json:"creditCurrency"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
	Reference      string          `json:"reference"`
	UserID         string          `json:"userId"`
	PointOfSaleID  int64           `json:"pointOfSaleId"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToJournalRowResponse converts a domain.JournalRow to JournalRowResponse DTO.
func ToJournalRowResponse(r domain.JournalRow) JournalRowResponse {
	return JournalRowResponse{
		RowID:          r.RowID,
		PostingID:      r.PostingID,
		AccNo:          r.AccNo,
		Date:           r.Date.Format(DateLayout),
		Debit:          r.Debit,
		Credit:         r.Credit,
		DebitCurrency:  r.DebitCurrency,
		CreditCurrency: r.CreditCurrency,
		CurrencyCode:   string(r.CurrencyCode),
		Rate:           r.Rate,
		Source:         string(r.Source),
		Reference:      r.Reference,
		UserID:         r.UserID,
		PointOfSaleID:  r.PointOfSaleID,
		CreatedAt:      r.CreatedAt,
	}
}

// ToJournalRowResponses converts a slice of domain.JournalRow.
func ToJournalRowResponses(rows []domain.JournalRow) []JournalRowResponse {
	out := make([]JournalRowResponse, len(rows))
	for i, r := range rows {
		out[i] = ToJournalRowResponse(r)
	}
	return out
}

// parseDate reads a date already checked by the datetime binding. Empty means today.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(DateLayout, s)
	return t
}
