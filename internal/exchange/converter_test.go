package exchange

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// stubSource returns a fixed rate or error and counts calls.
type stubSource struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (s *stubSource) Rate(_ context.Context, _, _ string) (decimal.Decimal, error) {
	s.calls++
	return s.rate, s.err
}

func TestConvertSameCurrencySkipsSource(t *testing.T) {
	source := &stubSource{err: errors.New("should not be called")}
	converter := NewConverter(source)

	result, err := converter.Convert(context.Background(), decimal.NewFromInt(50), "USD", "usd")
	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, result.Rate.Equal(decimal.NewFromInt(1)))
	assert.Zero(t, source.calls)
}

func TestConvertUsesLiveRate(t *testing.T) {
	source := &stubSource{rate: decimal.RequireFromString("25000")}
	converter := NewConverter(source)

	result, err := converter.Convert(context.Background(), decimal.NewFromInt(20), "USD", "VND")
	require.NoError(t, err)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(500000)), "amount = %s", result.Amount)
}

func TestConvertFallsBackToTable(t *testing.T) {
	source := &stubSource{err: errors.New("api down")}
	converter := NewConverter(source)

	result, err := converter.Convert(context.Background(), decimal.NewFromInt(20), "USD", "VND")
	require.NoError(t, err)
	assert.True(t, result.Rate.Equal(decimal.NewFromInt(25500)))
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(510000)), "20 USD at the fallback rate")
}

func TestConvertReciprocalFallback(t *testing.T) {
	source := &stubSource{err: errors.New("api down")}
	converter := NewConverter(source)

	// EUR->USD exists directly; USD->JPY does not, GBP pairs neither.
	result, err := converter.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, result.Rate.Equal(decimal.RequireFromString("1.09")))

	// VND->USD is present explicitly in the table.
	result, err = converter.Convert(context.Background(), decimal.NewFromInt(510000), "VND", "USD")
	require.NoError(t, err)
	assert.True(t, result.Rate.Equal(decimal.RequireFromString("0.0000392")))
}

func TestConvertNoRateAnywhere(t *testing.T) {
	source := &stubSource{err: errors.New("api down")}
	converter := NewConverter(source)

	_, err := converter.Convert(context.Background(), decimal.NewFromInt(5), "GBP", "JPY")
	var noRate *ErrNoRate
	require.ErrorAs(t, err, &noRate)
	assert.Equal(t, "GBP", noRate.From)
	assert.Equal(t, "JPY", noRate.To)
}

func TestConvertRoundTripWithinTolerance(t *testing.T) {
	source := &stubSource{err: errors.New("api down")}
	converter := NewConverter(source)
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 10_000_000).Draw(t, "cents")
		amount := decimal.New(cents, -2)

		there, err := converter.Convert(ctx, amount, "USD", "VND")
		if err != nil {
			t.Fatalf("USD->VND: %v", err)
		}
		back, err := converter.Convert(ctx, there.Amount, "VND", "USD")
		if err != nil {
			t.Fatalf("VND->USD: %v", err)
		}

		// The table's VND_USD entry is not the exact reciprocal of
		// USD_VND, so allow the table's own precision.
		diff := back.Amount.Sub(amount).Abs()
		tolerance := amount.Mul(decimal.RequireFromString("0.001"))
		if diff.GreaterThan(tolerance) {
			t.Fatalf("round trip drifted: %s -> %s -> %s", amount, there.Amount, back.Amount)
		}
	})
}

func TestConversionNote(t *testing.T) {
	t.Run("normal rate shows original amount", func(t *testing.T) {
		note := ConversionNote(decimal.NewFromInt(20), "USD", decimal.NewFromInt(25500), "VND")
		assert.Equal(t, " (from $20.00)", note)
	})

	t.Run("tiny rate shows inverse form", func(t *testing.T) {
		note := ConversionNote(
			decimal.NewFromInt(510000), "VND",
			decimal.RequireFromString("0.0000392"), "USD",
		)
		assert.Equal(t, " (from 510.000 ₫ @ 1 USD = 25510 VND)", note)
	})
}
