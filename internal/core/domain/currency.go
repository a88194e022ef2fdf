package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyCode is one of the three currencies the shop trades in.
type CurrencyCode string

const (
	// LYD is the base currency; every balance is reported in it.
	LYD CurrencyCode = "LYD"
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
)

// Currencies lists the supported codes in leg order.
var Currencies = []CurrencyCode{LYD, USD, EUR}

// IsBase reports whether c is the base currency.
func (c CurrencyCode) IsBase() bool { return c == LYD }

// Valid reports whether c is a supported currency.
func (c CurrencyCode) Valid() bool {
	switch c {
	case LYD, USD, EUR:
		return true
	}
	return false
}

// ParseCurrency resolves a currency code, ignoring case and surrounding blanks.
func ParseCurrency(s string) (CurrencyCode, error) {
	c := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// CurrencyLeg is one currency's share of an invoice total or payment.
// BaseEquivalent is the LYD value of Amount; for the LYD leg both are equal.
type CurrencyLeg struct {
	Currency       CurrencyCode    `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	BaseEquivalent decimal.Decimal `json:"baseEquivalent"`
}

// IsZero reports whether nothing was recorded on the leg.
func (l CurrencyLeg) IsZero() bool {
	return l.Amount.IsZero() && l.BaseEquivalent.IsZero()
}

// Legs is an ordered list of currency legs, one per supported currency.
type Legs []CurrencyLeg

// NewLegs returns zeroed legs in LYD, USD, EUR order.
func NewLegs() Legs {
	legs := make(Legs, len(Currencies))
	for i, c := range Currencies {
		legs[i] = CurrencyLeg{Currency: c}
	}
	return legs
}

// Leg returns the leg for c, or a zero leg if absent.
func (l Legs) Leg(c CurrencyCode) CurrencyLeg {
	for _, leg := range l {
		if leg.Currency == c {
			return leg
		}
	}
	return CurrencyLeg{Currency: c}
}

// Add returns a copy of l with other added leg by leg.
func (l Legs) Add(other Legs) Legs {
	out := NewLegs()
	for i := range out {
		a, b := l.Leg(out[i].Currency), other.Leg(out[i].Currency)
		out[i].Amount = a.Amount.Add(b.Amount)
		out[i].BaseEquivalent = a.BaseEquivalent.Add(b.BaseEquivalent)
	}
	return out
}

// AllZero reports whether every leg is empty.
func (l Legs) AllZero() bool {
	for _, leg := range l {
		if !leg.IsZero() {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (l Legs) Clone() Legs {
	if l == nil {
		return nil
	}
	out := make(Legs, len(l))
	copy(out, l)
	return out
}
