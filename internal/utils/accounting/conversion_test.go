package accounting

import (
	"testing"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	tests := []struct {
		currency domain.CurrencyCode
		in       string
		want     string
	}{
		{domain.LYD, "100.4", "100"},
		{domain.LYD, "100.5", "101"},
		{domain.LYD, "-2.5", "-3"},
		{domain.USD, "10.005", "10.01"},
		{domain.USD, "10.004", "10"},
		{domain.EUR, "0.125", "0.13"},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency)+"_"+tt.in, func(t *testing.T) {
			assert.True(t, d(tt.want).Equal(Round(tt.currency, d(tt.in))), "got %s", Round(tt.currency, d(tt.in)))
		})
	}
}

func TestToBase(t *testing.T) {
	got, err := ToBase(d("100"), d("4.85"))
	require.NoError(t, err)
	assert.True(t, d("485").Equal(got))

	got, err = ToBase(d("10.10"), d("4.85"))
	require.NoError(t, err)
	assert.True(t, d("49").Equal(got), "48.985 rounds to 49, got %s", got)

	_, err = ToBase(d("100"), decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)
}

func TestDeriveRate(t *testing.T) {
	rate, err := DeriveRate(d("100"), d("400"))
	require.NoError(t, err)
	assert.True(t, d("4").Equal(rate))

	_, err = DeriveRate(decimal.Zero, d("400"))
	assert.ErrorIs(t, err, apperrors.ErrRateUndetermined)

	_, err = DeriveRate(d("100"), decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrRateUndetermined)
}

func TestDeriveRateOr(t *testing.T) {
	nominal := d("5")

	rate, err := DeriveRateOr(d("100"), d("480"), &nominal)
	require.NoError(t, err)
	assert.True(t, d("4.8").Equal(rate), "derived rate wins over the nominal one")

	rate, err = DeriveRateOr(d("100"), decimal.Zero, &nominal)
	require.NoError(t, err)
	assert.True(t, nominal.Equal(rate))

	_, err = DeriveRateOr(d("100"), decimal.Zero, nil)
	assert.ErrorIs(t, err, apperrors.ErrRateUndetermined)

	bad := decimal.Zero
	_, err = DeriveRateOr(d("100"), decimal.Zero, &bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)
}

// Per-leg rounding before summation can differ from rounding the combined
// total; these golden values pin the per-leg behaviour.
func TestSumBase_RoundsEachLegFirst(t *testing.T) {
	legs := domain.Legs{
		{Currency: domain.LYD, Amount: d("100.4"), BaseEquivalent: d("100.4")},
		{Currency: domain.USD, Amount: d("10"), BaseEquivalent: d("48.4")},
		{Currency: domain.EUR, Amount: d("10"), BaseEquivalent: d("52.4")},
	}

	assert.True(t, d("200").Equal(SumBase(legs)), "got %s", SumBase(legs))
	assert.True(t, d("201").Equal(Round(domain.LYD, d("201.2"))), "round-once would give 201")
}

func TestRemaining(t *testing.T) {
	totals := domain.Legs{{Currency: domain.LYD, Amount: d("1000"), BaseEquivalent: d("1000")}}

	paid := domain.Payment{LYD: d("600")}.Legs()
	assert.True(t, d("400").Equal(Remaining(totals, paid)))

	paid = paid.Add(domain.Payment{USD: d("100"), USDLyd: d("450")}.Legs())
	assert.True(t, Remaining(totals, paid).IsZero(), "remaining never goes negative")
}
