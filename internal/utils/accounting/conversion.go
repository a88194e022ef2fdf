package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementTolerance is the slack allowed when comparing LYD equivalents.
var SettlementTolerance = decimal.RequireFromString("0.01")

// Precision returns the number of decimal places kept for amounts in c.
// LYD is kept in whole units, USD and EUR in cents.
func Precision(c domain.CurrencyCode) int32 {
	if c.IsBase() {
		return 0
	}
	return 2
}

// Round rounds amount half away from zero to the precision of c.
func Round(c domain.CurrencyCode, amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Precision(c))
}

// ToBase converts a foreign amount into whole LYD at rate.
func ToBase(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate %s: %w", rate, apperrors.ErrInvalidRate)
	}
	return Round(domain.LYD, amount.Mul(rate)), nil
}

// DeriveRate returns base/foreign when both amounts are strictly positive.
func DeriveRate(foreign, base decimal.Decimal) (decimal.Decimal, error) {
	if !foreign.IsPositive() || !base.IsPositive() {
		return decimal.Zero, fmt.Errorf("foreign %s, base %s: %w", foreign, base, apperrors.ErrRateUndetermined)
	}
	return base.Div(foreign), nil
}

// DeriveRateOr behaves like DeriveRate but falls back to the caller supplied
// nominal rate when the rate is undetermined. A nil fallback keeps the error.
func DeriveRateOr(foreign, base decimal.Decimal, fallback *decimal.Decimal) (decimal.Decimal, error) {
	rate, err := DeriveRate(foreign, base)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrRateUndetermined) || fallback == nil {
		return decimal.Zero, err
	}
	if !fallback.IsPositive() {
		return decimal.Zero, fmt.Errorf("nominal rate %s: %w", fallback, apperrors.ErrInvalidRate)
	}
	return *fallback, nil
}

// SumBase adds the LYD equivalents of legs, rounding each leg to whole LYD
// before the addition.
func SumBase(legs domain.Legs) decimal.Decimal {
	total := decimal.Zero
	for _, leg := range legs {
		total = total.Add(Round(domain.LYD, leg.BaseEquivalent))
	}
	return total
}

// Remaining returns max(0, SumBase(totals) - SumBase(paid)).
func Remaining(totals, paid domain.Legs) decimal.Decimal {
	remaining := SumBase(totals).Sub(SumBase(paid))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
