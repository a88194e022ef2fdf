package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDirection says whether the shop sold or bought the goods.
type InvoiceDirection string

const (
	Sale     InvoiceDirection = "SALE"
	Purchase InvoiceDirection = "PURCHASE"
)

// Valid reports whether d is a known direction.
func (d InvoiceDirection) Valid() bool {
	return d == Sale || d == Purchase
}

// InvoiceState is derived from the paid legs, the remainder and IsClosed.
type InvoiceState string

const (
	StateOpen                InvoiceState = "OPEN"
	StatePartiallyPaid       InvoiceState = "PARTIALLY_PAID"
	StateClosedFullyPaid     InvoiceState = "CLOSED_FULLY_PAID"
	StateClosedWithRemainder InvoiceState = "CLOSED_WITH_REMAINDER"
)

// Invoice is the settlement projection of a sale or purchase.
// Totals and Paid hold one leg per currency. Once IsClosed is set nothing
// but reads may touch the invoice.
type Invoice struct {
	InvoiceID     string           `json:"invoiceId"`
	InvoiceNumber *int64           `json:"invoiceNumber,omitempty"`
	Direction     InvoiceDirection `json:"direction"`
	PointOfSaleID int64            `json:"pointOfSaleId"`
	Totals        Legs             `json:"totals"`
	Paid          Legs             `json:"paid"`
	IsClosed      bool             `json:"isClosed"`
	IsGift        bool             `json:"isGift"`
	IsChira       bool             `json:"isChira"`
	Receivable    decimal.Decimal  `json:"receivable"`
	ClosedAt      *time.Time       `json:"closedAt,omitempty"`
	ClosedBy      *string          `json:"closedBy,omitempty"`
	Version       int64            `json:"version"`
	AuditFields
}

// AllowsRemainder reports whether the invoice may close while not fully paid.
func (i Invoice) AllowsRemainder() bool {
	return i.IsGift || i.IsChira
}

// State derives the lifecycle state given the invoice's remaining LYD
// balance and the settlement tolerance.
func (i Invoice) State(remaining, tolerance decimal.Decimal) InvoiceState {
	if i.IsClosed {
		if remaining.GreaterThan(tolerance) {
			return StateClosedWithRemainder
		}
		return StateClosedFullyPaid
	}
	if i.Paid.AllZero() {
		return StateOpen
	}
	return StatePartiallyPaid
}

// Clone returns a copy that shares no slices or pointers with i.
func (i Invoice) Clone() Invoice {
	out := i
	out.Totals = i.Totals.Clone()
	out.Paid = i.Paid.Clone()
	if i.InvoiceNumber != nil {
		n := *i.InvoiceNumber
		out.InvoiceNumber = &n
	}
	if i.ClosedAt != nil {
		t := *i.ClosedAt
		out.ClosedAt = &t
	}
	if i.ClosedBy != nil {
		s := *i.ClosedBy
		out.ClosedBy = &s
	}
	return out
}

// NewInvoiceNumber returns the next sequential invoice number: one above the
// highest existing number, or 1 when none exist.
func NewInvoiceNumber(existing []int64) int64 {
	var highest int64
	for _, n := range existing {
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

// Payment is one payment entry against an invoice. USDLyd and EURLyd are the
// LYD equivalents of the foreign amounts handed over.
type Payment struct {
	LYD             decimal.Decimal
	USD             decimal.Decimal
	USDLyd          decimal.Decimal
	EUR             decimal.Decimal
	EURLyd          decimal.Decimal
	ExpectedVersion *int64
}

// Legs converts the payment into ordered currency legs.
func (p Payment) Legs() Legs {
	return Legs{
		{Currency: LYD, Amount: p.LYD, BaseEquivalent: p.LYD},
		{Currency: USD, Amount: p.USD, BaseEquivalent: p.USDLyd},
		{Currency: EUR, Amount: p.EUR, BaseEquivalent: p.EURLyd},
	}
}

// CloseOptions controls the postings generated when an invoice closes.
type CloseOptions struct {
	MakeCashVoucher bool
	ResolvedType    Category
	ExpectedVersion *int64
}

// OpenInvoiceRequest starts a new invoice.
type OpenInvoiceRequest struct {
	Direction InvoiceDirection
	Totals    Legs
	IsGift    bool
	IsChira   bool
	Actor     Actor
}

// Remaining summarises what is still owed on an invoice, in LYD.
type Remaining struct {
	InvoiceID    string          `json:"invoiceId"`
	TotalLyd     decimal.Decimal `json:"totalLyd"`
	PaidLyd      decimal.Decimal `json:"paidLyd"`
	RemainingLyd decimal.Decimal `json:"remainingLyd"`
	State        InvoiceState    `json:"state"`
}

// CloseResult reports what closing an invoice produced.
type CloseResult struct {
	Invoice  Invoice         `json:"invoice"`
	Postings []PostingResult `json:"postings"`
}
