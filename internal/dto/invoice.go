package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// LegRequest is one currency share of an invoice total. BaseEquivalent is
// ignored for LYD and required for USD and EUR.
type LegRequest struct {
	Currency       string          `json:"currency" binding:"required,currency"`
	Amount         decimal.Decimal `json:"amount"`
	BaseEquivalent decimal.Decimal `json:"baseEquivalent"`
}

func toDomainLegs(legs []LegRequest) domain.Legs {
	out := make(domain.Legs, len(legs))
	for i, l := range legs {
		c, _ := domain.ParseCurrency(l.Currency)
		out[i] = domain.CurrencyLeg{Currency: c, Amount: l.Amount, BaseEquivalent: l.BaseEquivalent}
	}
	return out
}

// OpenInvoiceRequest is the body for opening an invoice.
type OpenInvoiceRequest struct {
	Direction string       `json:"direction" binding:"required,oneof=SALE PURCHASE"`
	Totals    []LegRequest `json:"totals" binding:"max=3,dive"`
	IsGift    bool         `json:"isGift"`
	IsChira   bool         `json:"isChira"`
}

// ToDomain converts the request for actor.
func (r OpenInvoiceRequest) ToDomain(actor domain.Actor) domain.OpenInvoiceRequest {
	return domain.OpenInvoiceRequest{
		Direction: domain.InvoiceDirection(r.Direction),
		Totals:    toDomainLegs(r.Totals),
		IsGift:    r.IsGift,
		IsChira:   r.IsChira,
		Actor:     actor,
	}
}

// UpdateTotalsRequest replaces the totals of an open invoice.
type UpdateTotalsRequest struct {
	Totals          []LegRequest `json:"totals" binding:"required,max=3,dive"`
	ExpectedVersion *int64       `json:"expectedVersion,omitempty" binding:"omitempty,min=1"`
}

// TotalsToDomain returns the requested totals as domain legs.
func (r UpdateTotalsRequest) TotalsToDomain() domain.Legs {
	return toDomainLegs(r.Totals)
}

// RecordPaymentRequest is one payment entry. UsdLyd and EurLyd are the LYD
// equivalents of the foreign amounts handed over.
type RecordPaymentRequest struct {
	Lyd             decimal.Decimal `json:"lyd"`
	Usd             decimal.Decimal `json:"usd"`
	UsdLyd          decimal.Decimal `json:"usdLyd"`
	Eur             decimal.Decimal `json:"eur"`
	EurLyd          decimal.Decimal `json:"eurLyd"`
	ExpectedVersion *int64          `json:"expectedVersion,omitempty" binding:"omitempty,min=1"`
}

// ToDomain converts the request into a domain payment.
func (r RecordPaymentRequest) ToDomain() domain.Payment {
	return domain.Payment{
		LYD:             r.Lyd,
		USD:             r.Usd,
		USDLyd:          r.UsdLyd,
		EUR:             r.Eur,
		EURLyd:          r.EurLyd,
		ExpectedVersion: r.ExpectedVersion,
	}
}

// CloseInvoiceRequest closes an invoice. ResolvedType is the item category
// the postings are booked against.
type CloseInvoiceRequest struct {
	MakeCashVoucher bool   `json:"makeCashVoucher"`
	ResolvedType    string `json:"resolvedType" binding:"required,category"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty" binding:"omitempty,min=1"`
}

// ToDomain converts the request into close options.
func (r CloseInvoiceRequest) ToDomain() domain.CloseOptions {
	category, _ := domain.ParseCategory(r.ResolvedType)
	return domain.CloseOptions{
		MakeCashVoucher: r.MakeCashVoucher,
		ResolvedType:    category,
		ExpectedVersion: r.ExpectedVersion,
	}
}

// LegResponse is one currency leg of an invoice.
type LegResponse struct {
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	BaseEquivalent decimal.Decimal `json:"baseEquivalent"`
}

func toLegResponses(legs domain.Legs) []LegResponse {
	out := make([]LegResponse, len(legs))
	for i, l := range legs {
		out[i] = LegResponse{Currency: string(l.Currency), Amount: l.Amount, BaseEquivalent: l.BaseEquivalent}
	}
	return out
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceId"`
	InvoiceNumber *int64          `json:"invoiceNumber,omitempty"`
	Direction     string          `json:"direction"`
	PointOfSaleID int64           `json:"pointOfSaleId"`
	Totals        []LegResponse   `json:"totals"`
	Paid          []LegResponse   `json:"paid"`
	IsClosed      bool            `json:"isClosed"`
	IsGift        bool            `json:"isGift"`
	IsChira       bool            `json:"isChira"`
	Receivable    decimal.Decimal `json:"receivable"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
	ClosedBy      *string         `json:"closedBy,omitempty"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Direction:     string(inv.Direction),
		PointOfSaleID: inv.PointOfSaleID,
		Totals:        toLegResponses(inv.Totals),
		Paid:          toLegResponses(inv.Paid),
		IsClosed:      inv.IsClosed,
		IsGift:        inv.IsGift,
		IsChira:       inv.IsChira,
		Receivable:    inv.Receivable,
		ClosedAt:      inv.ClosedAt,
		ClosedBy:      inv.ClosedBy,
		Version:       inv.Version,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		LastUpdatedAt: inv.LastUpdatedAt,
		LastUpdatedBy: inv.LastUpdatedBy,
	}
}

// RemainingResponse reports what is still owed on an invoice, in LYD.
type RemainingResponse struct {
	InvoiceID    string          `json:"invoiceId"`
	TotalLyd     decimal.Decimal `json:"totalLyd"`
	PaidLyd      decimal.Decimal `json:"paidLyd"`
	RemainingLyd decimal.Decimal `json:"remainingLyd"`
	State        string          `json:"state"`
}

// ToRemainingResponse converts a domain.Remaining to RemainingResponse DTO.
func ToRemainingResponse(r domain.Remaining) RemainingResponse {
	return RemainingResponse{
		InvoiceID:    r.InvoiceID,
		TotalLyd:     r.TotalLyd,
		PaidLyd:      r.PaidLyd,
		RemainingLyd: r.RemainingLyd,
		State:        string(r.State),
	}
}

// CloseInvoiceResponse reports the closed invoice and the postings it produced.
type CloseInvoiceResponse struct {
	Invoice  InvoiceResponse   `json:"invoice"`
	Postings []PostingResponse `json:"postings"`
}

// ToCloseInvoiceResponse converts a domain.CloseResult to CloseInvoiceResponse DTO.
func ToCloseInvoiceResponse(r domain.CloseResult) CloseInvoiceResponse {
	postings := make([]PostingResponse, len(r.Postings))
	for i, p := range r.Postings {
		postings[i] = ToPostingResponse(p)
	}
	return CloseInvoiceResponse{Invoice: ToInvoiceResponse(r.Invoice), Postings: postings}
}
